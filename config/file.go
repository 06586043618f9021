package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/buji/component"
	"github.com/lixenwraith/buji/engine"
)

var ErrInvalidColor = errors.New("invalid color")

// File is the decoded shape of a buji.hcl
type File struct {
	Window     *WindowBlock  `hcl:"window,block"`
	TargetFPS  *uint32       `hcl:"target_fps,optional"`
	Background string        `hcl:"background,optional"`
	Log        *LogBlock     `hcl:"log,block"`
	Audio      *AudioBlock   `hcl:"audio,block"`
	Actors     []*ActorBlock `hcl:"actor,block"`
}

// WindowBlock sets the surface title and size, missing fields keep the base value
type WindowBlock struct {
	Title  string `hcl:"title,optional"`
	Width  uint32 `hcl:"width,optional"`
	Height uint32 `hcl:"height,optional"`
}

// LogBlock controls the debug file log
type LogBlock struct {
	Debug bool   `hcl:"debug,optional"`
	Dir   string `hcl:"dir,optional"`
}

// AudioBlock controls the cue player
type AudioBlock struct {
	Enabled    bool     `hcl:"enabled,optional"`
	Volume     *float64 `hcl:"volume,optional"`
	StartSound string   `hcl:"start_sound,optional"`
}

// ActorBlock places one actor, Kind selects the behavior
type ActorBlock struct {
	Name     string  `hcl:"name,label"`
	Kind     string  `hcl:"kind"`
	X        int32   `hcl:"x,optional"`
	Y        int32   `hcl:"y,optional"`
	Scale    float32 `hcl:"scale,optional"`
	Rotation float32 `hcl:"rotation,optional"`
	Sprite   string  `hcl:"sprite,optional"`
}

// EngineConfig overlays the file on base
// Background accepts any hex form go-colorful parses, e.g. "#6464ff"
func (f *File) EngineConfig(base engine.Config) (engine.Config, error) {
	cfg := base
	if w := f.Window; w != nil {
		if w.Title != "" {
			cfg.WindowTitle = w.Title
		}
		if w.Width != 0 {
			cfg.WindowWidth = w.Width
		}
		if w.Height != 0 {
			cfg.WindowHeight = w.Height
		}
	}
	if f.TargetFPS != nil {
		cfg.TargetFPS = *f.TargetFPS
	}
	if f.Background != "" {
		bg, err := ParseColor(f.Background)
		if err != nil {
			return base, err
		}
		cfg.Background = bg
	}
	return cfg, nil
}

// Apply copies the file's engine options onto b
func (f *File) Apply(b *engine.Builder) error {
	cfg, err := f.EngineConfig(engine.DefaultConfig())
	if err != nil {
		return err
	}
	b.Config(cfg)
	return nil
}

// ParseColor converts a hex color string to an engine color
func ParseColor(s string) (engine.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return engine.RGB{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	r, g, b := c.RGB255()
	return engine.RGB{R: r, G: g, B: b}, nil
}

// Context returns the actor's initial context drawing its sprite under asset id
func (a *ActorBlock) Context(id uint32) engine.ActorContext {
	ctx := engine.NewActorContext(component.NewPosition(a.X, a.Y), component.AssetRef{ID: id, Path: a.Sprite})
	if a.Scale != 0 {
		ctx.Scale = component.Scale(a.Scale)
	}
	ctx.Rotation = component.RotationFromDegrees(a.Rotation)
	return ctx
}

// ActorContexts returns one context per actor block
// Asset ids follow the first appearance of each sprite path, so actors sharing a sprite share its cache entry
func (f *File) ActorContexts() []engine.ActorContext {
	ids := make(map[string]uint32)
	ctxs := make([]engine.ActorContext, 0, len(f.Actors))
	for _, a := range f.Actors {
		id, ok := ids[a.Sprite]
		if !ok && a.Sprite != "" {
			id = uint32(len(ids) + 1)
			ids[a.Sprite] = id
		}
		ctxs = append(ctxs, a.Context(id))
	}
	return ctxs
}

// Debug reports whether the file asks for debug logging
func (f *File) Debug() bool {
	return f.Log != nil && f.Log.Debug
}

// LogDir returns the configured log directory or def
func (f *File) LogDir(def string) string {
	if f.Log == nil || f.Log.Dir == "" {
		return def
	}
	return f.Log.Dir
}

// AudioEnabled reports whether cues should be played
func (f *File) AudioEnabled() bool {
	return f.Audio != nil && f.Audio.Enabled
}

// AudioVolume returns the configured volume or def
func (f *File) AudioVolume(def float64) float64 {
	if f.Audio == nil || f.Audio.Volume == nil {
		return def
	}
	return *f.Audio.Volume
}
