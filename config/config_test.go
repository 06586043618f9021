package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/buji/component"
	"github.com/lixenwraith/buji/engine"
)

func TestDefaultFile(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	cfg, err := f.EngineConfig(engine.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, engine.Config{
		WindowTitle:  "Tower Defense Game",
		WindowWidth:  800,
		WindowHeight: 400,
		TargetFPS:    30,
		Background:   engine.RGB{R: 100, G: 100, B: 150},
	}, cfg)

	require.Len(t, f.Actors, 3)
	assert.Equal(t, "Legolas", f.Actors[0].Name)
	assert.Equal(t, "player", f.Actors[0].Kind)
	assert.False(t, f.Debug())
	assert.False(t, f.AudioEnabled())
	assert.Equal(t, 0.5, f.AudioVolume(1))
}

func TestParsePartialKeepsBase(t *testing.T) {
	f, err := Parse([]byte(`window { title = "only title" }`), "partial.hcl", nil)
	require.NoError(t, err)

	cfg, err := f.EngineConfig(engine.DefaultConfig())
	require.NoError(t, err)

	want := engine.DefaultConfig()
	want.WindowTitle = "only title"
	assert.Equal(t, want, cfg)
	assert.Equal(t, "logs", f.LogDir("logs"))
	assert.Equal(t, 1.0, f.AudioVolume(1))
}

func TestParseExplicitZeroFPS(t *testing.T) {
	f, err := Parse([]byte(`target_fps = 0`), "zero.hcl", nil)
	require.NoError(t, err)

	b := engine.NewBuilder().Renderer(&engine.HeadlessRenderer{}).Actor(engine.ActorFuncs{}, engine.ActorContext{})
	require.NoError(t, f.Apply(b))

	_, err = b.Build()
	assert.ErrorIs(t, err, engine.ErrInvalidFPS)
}

func TestParseEnvAndFunctions(t *testing.T) {
	src := `
window {
  title = upper(env.BUJI_TITLE)
  width = max(320, 100)
}
log {
  debug = true
  dir   = env.BUJI_LOGS
}
`
	f, err := Parse([]byte(src), "env.hcl", map[string]string{"BUJI_TITLE": "siege", "BUJI_LOGS": "/tmp/buji"})
	require.NoError(t, err)

	assert.Equal(t, "SIEGE", f.Window.Title)
	assert.Equal(t, uint32(320), f.Window.Width)
	assert.True(t, f.Debug())
	assert.Equal(t, "/tmp/buji", f.LogDir("logs"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `window {`, "failed to parse"},
		{"unknown attribute", `fps = 30`, "failed to decode"},
		{"missing env", `background = env.NOPE`, "failed to decode"},
		{"actor without kind", `actor "a" { x = 1 }`, "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl", nil)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, engine.RGB{R: 255, G: 128, B: 0}, c)

	_, err = ParseColor("orange")
	assert.ErrorIs(t, err, ErrInvalidColor)

	f := &File{Background: "nope"}
	_, err = f.EngineConfig(engine.DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestActorContexts(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	ctxs := f.ActorContexts()
	require.Len(t, ctxs, 3)

	assert.Equal(t, component.NewPosition(200, 0), ctxs[0].Position)
	assert.Equal(t, component.Scale(2), ctxs[0].Scale)
	assert.Equal(t, component.AssetRef{ID: 1, Path: "hero.txt"}, ctxs[0].Asset)
	assert.Equal(t, component.AssetRef{ID: 2, Path: "tile.txt"}, ctxs[1].Asset)
	assert.Equal(t, ctxs[1].Asset, ctxs[2].Asset)

	bare := (&ActorBlock{Kind: "tower", Rotation: 90}).Context(0)
	assert.Equal(t, component.DefaultScale, bare.Scale)
	assert.True(t, bare.Asset.IsZero())
	assert.InDelta(t, 90, bare.Rotation.Degrees(), 1e-4)
}

func TestLoadAutoPriority(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	f, src, err := LoadAuto("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
	assert.Len(t, f.Actors, 3)

	require.NoError(t, os.WriteFile(DefaultPath, []byte(`target_fps = 90`), 0o644))
	f, src, err = LoadAuto("")
	require.NoError(t, err)
	assert.Equal(t, SourceDefault, src)
	assert.Equal(t, uint32(90), *f.TargetFPS)

	custom := filepath.Join(dir, "custom.hcl")
	require.NoError(t, os.WriteFile(custom, []byte(`target_fps = 15`), 0o644))
	f, src, err = LoadAuto(custom)
	require.NoError(t, err)
	assert.Equal(t, SourcePath, src)
	assert.Equal(t, uint32(15), *f.TargetFPS)

	_, _, err = LoadAuto(filepath.Join(dir, "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
