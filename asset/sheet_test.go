package asset

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetSrc = "ab12\ncd34\nef\n"

func TestSplitSheet(t *testing.T) {
	sheet, err := SplitSheet([]byte(sheetSrc), 2, 2, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 4, sheet.Len())

	tests := []struct {
		index int
		want  string
	}{
		{0, "ab\ncd\n"},
		{1, "12\n34\n"},
		{2, "ef\n  \n"},
		{3, "  \n  \n"},
	}
	for _, tc := range tests {
		got, ok := sheet.SpriteAt(tc.index)
		require.True(t, ok, "tile %d", tc.index)
		assert.Equal(t, tc.want, string(got), "tile %d", tc.index)
	}

	_, ok := sheet.SpriteAt(4)
	assert.False(t, ok)
	_, ok = sheet.SpriteAt(-1)
	assert.False(t, ok)
}

func TestSplitSheetLimitsGrid(t *testing.T) {
	sheet, err := SplitSheet([]byte(sheetSrc), 2, 2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.Len())
}

func TestSplitSheetRejectsBadGeometry(t *testing.T) {
	_, err := SplitSheet([]byte(sheetSrc), 0, 2, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTile)
}

func TestSheetRegister(t *testing.T) {
	sheet, err := SplitSheet([]byte(sheetSrc), 2, 2, 2, 1)
	require.NoError(t, err)

	store := NewStore(fstest.MapFS{})
	assert.Equal(t, 2, sheet.Register(store, 100))

	tile, err := store.LoadOrGet(101, "tiles.txt#1")
	require.NoError(t, err, "registered tiles are served from cache")
	assert.Equal(t, "12\n34\n", string(tile))
}
