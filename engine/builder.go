package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/buji/logging"
	"github.com/lixenwraith/buji/status"
)

// Defaults applied by NewBuilder
const (
	DefaultWindowTitle  = "Anonymous"
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultFPS          = 60
)

var (
	ErrNoRenderer    = errors.New("renderer is required")
	ErrNoActors      = errors.New("at least one actor is required")
	ErrNilActor      = errors.New("actor is nil")
	ErrInvalidWindow = errors.New("window dimensions must be greater than zero")
)

// RGB is an opaque 24-bit color
type RGB struct {
	R, G, B uint8
}

// Config holds the recognized construction options
type Config struct {
	WindowTitle  string
	WindowWidth  uint32
	WindowHeight uint32
	TargetFPS    uint32
	Background   RGB
}

// DefaultConfig returns "Anonymous", 800x600, 60 FPS on black
func DefaultConfig() Config {
	return Config{
		WindowTitle:  DefaultWindowTitle,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		TargetFPS:    DefaultFPS,
	}
}

// Validate reports every configuration error joined together
func (c Config) Validate() error {
	var errs []error
	if c.TargetFPS == 0 {
		errs = append(errs, ErrInvalidFPS)
	}
	if c.WindowWidth == 0 || c.WindowHeight == 0 {
		errs = append(errs, fmt.Errorf("%dx%d: %w", c.WindowWidth, c.WindowHeight, ErrInvalidWindow))
	}
	return errors.Join(errs...)
}

type pendingActor struct {
	actor Actor
	ctx   ActorContext
}

// Builder collects engine options and validates them once in Build
type Builder struct {
	cfg Config

	renderer Renderer
	input    Input
	assets   AssetLoader
	logger   logging.Logger
	clock    TimeProvider
	sleep    Sleeper
	metrics  *status.Registry

	onPreExit    func(*World)
	onTransition func(from, to State)

	actors []pendingActor
}

// NewBuilder starts from DefaultConfig
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Window sets the surface title and size
func (b *Builder) Window(title string, width, height uint32) *Builder {
	b.cfg.WindowTitle = title
	b.cfg.WindowWidth = width
	b.cfg.WindowHeight = height
	return b
}

// FPS sets the target frame rate
func (b *Builder) FPS(fps uint32) *Builder {
	b.cfg.TargetFPS = fps
	return b
}

// Background sets the clear color
func (b *Builder) Background(r, g, bl uint8) *Builder {
	b.cfg.Background = RGB{R: r, G: g, B: bl}
	return b
}

// Config replaces all recognized options at once
func (b *Builder) Config(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// Renderer sets the presentation surface, required
func (b *Builder) Renderer(r Renderer) *Builder {
	b.renderer = r
	return b
}

// Input sets the quit signal source
func (b *Builder) Input(in Input) *Builder {
	b.input = in
	return b
}

// Assets sets the store used for engine-drawn sprites
func (b *Builder) Assets(a AssetLoader) *Builder {
	b.assets = a
	return b
}

// Logger sets the log sink, logging.Nop when unset
func (b *Builder) Logger(l logging.Logger) *Builder {
	b.logger = l
	return b
}

// Clock overrides the pacer's time source
func (b *Builder) Clock(c TimeProvider) *Builder {
	b.clock = c
	return b
}

// Sleeper overrides the pacer's sleep function
func (b *Builder) Sleeper(s Sleeper) *Builder {
	b.sleep = s
	return b
}

// Metrics sets the registry the engine writes into
func (b *Builder) Metrics(reg *status.Registry) *Builder {
	b.metrics = reg
	return b
}

// OnPreExit registers the teardown hook run during the PreExit tick
func (b *Builder) OnPreExit(fn func(*World)) *Builder {
	b.onPreExit = fn
	return b
}

// OnTransition registers an observer called on every state change
func (b *Builder) OnTransition(fn func(from, to State)) *Builder {
	b.onTransition = fn
	return b
}

// Actor queues an actor for registration at Build
func (b *Builder) Actor(a Actor, ctx ActorContext) *Builder {
	b.actors = append(b.actors, pendingActor{actor: a, ctx: ctx})
	return b
}

// Build validates the options and creates the engine
// Every problem found is reported, joined into one error
func (b *Builder) Build() (*Engine, error) {
	var errs []error
	if err := b.cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if b.renderer == nil {
		errs = append(errs, ErrNoRenderer)
	}
	if len(b.actors) == 0 {
		errs = append(errs, ErrNoActors)
	}
	for i, pa := range b.actors {
		if pa.actor == nil {
			errs = append(errs, fmt.Errorf("actor %d: %w", i, ErrNilActor))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("engine config: %w", errors.Join(errs...))
	}

	pacer, err := NewPacer(b.cfg.TargetFPS, b.clock, b.sleep)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	world := NewWorld()
	for _, pa := range b.actors {
		world.AddActor(pa.actor, pa.ctx)
	}

	logger := b.logger
	if logger == nil {
		logger = logging.Nop{}
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	return newEngine(engineParams{
		cfg:          b.cfg,
		world:        world,
		pacer:        pacer,
		renderer:     b.renderer,
		input:        b.input,
		assets:       b.assets,
		logger:       logger,
		metrics:      metrics,
		onPreExit:    b.onPreExit,
		onTransition: b.onTransition,
	}), nil
}
