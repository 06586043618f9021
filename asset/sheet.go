package asset

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrInvalidTile = errors.New("invalid tile geometry")

// Sheet is a text sprite sheet cut into equally sized tiles
// Tiles are indexed row-major starting at zero
type Sheet struct {
	tiles [][]byte
}

// SplitSheet cuts data into tileW x tileH tiles, reading at most columns x rows tiles
// Lines shorter than the sheet width are padded with spaces; partial tiles at the
// right and bottom edges are kept and padded the same way
func SplitSheet(data []byte, tileW, tileH, columns, rows int) (*Sheet, error) {
	if tileW <= 0 || tileH <= 0 || columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%dx%d tiles, %dx%d grid: %w", tileW, tileH, columns, rows, ErrInvalidTile)
	}

	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	w := 0
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, "\r")
		w = max(w, len(lines[i]))
	}
	h := len(lines)

	finalW := min(columns*tileW, w)
	finalH := min(rows*tileH, h)

	sheet := &Sheet{}
	for y := 0; y < finalH; y += tileH {
		for x := 0; x < finalW; x += tileW {
			sheet.tiles = append(sheet.tiles, cutTile(lines, x, y, tileW, tileH))
		}
	}
	return sheet, nil
}

func cutTile(lines [][]byte, x, y, w, h int) []byte {
	var buf bytes.Buffer
	for row := y; row < y+h; row++ {
		var line []byte
		if row < len(lines) {
			line = lines[row]
		}
		for col := x; col < x+w; col++ {
			if col < len(line) {
				buf.WriteByte(line[col])
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Len returns the number of tiles
func (s *Sheet) Len() int {
	return len(s.tiles)
}

// SpriteAt returns tile i
func (s *Sheet) SpriteAt(i int) ([]byte, bool) {
	if i < 0 || i >= len(s.tiles) {
		return nil, false
	}
	return s.tiles[i], true
}

// Register caches every tile in store under baseID+index
// Returns the number of tiles newly cached
func (s *Sheet) Register(store *Store, baseID uint32) int {
	n := 0
	for i, tile := range s.tiles {
		if store.Put(baseID+uint32(i), tile) {
			n++
		}
	}
	return n
}
