package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/buji/logging"
	"github.com/lixenwraith/buji/status"
)

var (
	ErrRendererInit = errors.New("renderer init failed")
	ErrPresent      = errors.New("present failed")
	ErrAlreadyRun   = errors.New("engine already run")
)

// Engine runs the fixed-cadence update/draw loop over a World
// The loop is single-threaded; the only blocking point is the pacer's sleep
type Engine struct {
	cfg   Config
	world *World
	pacer *Pacer

	renderer Renderer
	input    Input
	assets   AssetLoader
	logger   logging.Logger

	onPreExit    func(*World)
	onTransition func(from, to State)

	machine *StateMachine
	ran     bool

	// Cached metric pointers
	metrics        *status.Registry
	statTicks      *atomic.Int64
	statOverruns   *atomic.Int64
	statSpriteErrs *atomic.Int64
	statFrameMs    *status.AtomicFloat
	statState      *status.AtomicString
	statRunID      *status.AtomicString
}

type engineParams struct {
	cfg          Config
	world        *World
	pacer        *Pacer
	renderer     Renderer
	input        Input
	assets       AssetLoader
	logger       logging.Logger
	metrics      *status.Registry
	onPreExit    func(*World)
	onTransition func(from, to State)
}

func newEngine(p engineParams) *Engine {
	return &Engine{
		cfg:            p.cfg,
		world:          p.world,
		pacer:          p.pacer,
		renderer:       p.renderer,
		input:          p.input,
		assets:         p.assets,
		logger:         p.logger,
		onPreExit:      p.onPreExit,
		onTransition:   p.onTransition,
		machine:        NewStateMachine(),
		metrics:        p.metrics,
		statTicks:      p.metrics.Counters.Get(status.EngineTicks),
		statOverruns:   p.metrics.Counters.Get(status.EngineOverruns),
		statSpriteErrs: p.metrics.Counters.Get(status.EngineSpriteErrors),
		statFrameMs:    p.metrics.Gauges.Get(status.EngineFrameMs),
		statState:      p.metrics.Labels.Get(status.EngineState),
		statRunID:      p.metrics.Labels.Get(status.EngineRunID),
	}
}

// World returns the actor registry; actors may be added before Run
func (e *Engine) World() *World {
	return e.world
}

// Config returns the validated construction options
func (e *Engine) Config() Config {
	return e.cfg
}

// Metrics returns the registry the engine writes into
func (e *Engine) Metrics() *status.Registry {
	return e.metrics
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	return e.machine.State()
}

// Visits returns how many times the current run entered s
func (e *Engine) Visits(s State) int {
	return e.machine.Visits(s)
}

// Run executes the loop until Exit
// Renderer init failure is returned before any frame executes; a Present failure aborts the loop
// Cancelling ctx acts as a quit signal, observed at the top of the next tick
// An engine runs at most once
func (e *Engine) Run(ctx context.Context) error {
	if e.ran {
		return ErrAlreadyRun
	}
	e.ran = true

	runID := uuid.NewString()
	e.statRunID.Store(runID)
	log := logging.WithRun(e.logger, runID)

	if err := e.renderer.Init(e.cfg); err != nil {
		logging.Logf(log, logging.LevelError, "renderer init: %v", err)
		return fmt.Errorf("%w: %w", ErrRendererInit, err)
	}
	logging.Logf(log, logging.LevelInfo, "engine started: %q %dx%d at %d fps, %d actors",
		e.cfg.WindowTitle, e.cfg.WindowWidth, e.cfg.WindowHeight, e.cfg.TargetFPS, e.world.Len())

	e.pacer.Reset()
	e.statState.Store(e.machine.State().String())

	for {
		// Input
		if e.quitRequested(ctx) {
			from := e.machine.State()
			if e.machine.Interrupt() {
				logging.Logf(log, logging.LevelWarn, "quit signal received in %s", from)
				e.transitioned(from, e.machine.State())
			}
		}

		// Dispatch
		from := e.machine.State()
		switch from {
		case StateInit:
			e.machine.Advance()

		case StateRunning:
			if err := e.tick(log); err != nil {
				logging.Logf(log, logging.LevelError, "%v", err)
				return err
			}
			if req, source, ok := e.machine.Pending(); ok {
				logging.Logf(log, logging.LevelWarn, "%s requested %s", source, req)
			}
			e.machine.Advance()

		case StatePreExit:
			if e.onPreExit != nil {
				e.onPreExit(e.world)
			}
			e.machine.Advance()

		case StateExit:
			logging.Logf(log, logging.LevelInfo, "engine stopped after %d ticks", e.statTicks.Load())
			return nil
		}

		if to := e.machine.State(); to != from {
			logging.Logf(log, logging.LevelInfo, "state %s -> %s", from, to)
			e.transitioned(from, to)
		}
	}
}

// tick runs one Running frame: clear, actor pass, present, pace
func (e *Engine) tick(log logging.Logger) error {
	e.pacer.Begin()
	e.renderer.Clear()

	e.world.Each(func(h Handle, actor Actor, actx *ActorContext) bool {
		if next, ok := actor.Update(actx); ok {
			e.machine.Latch(next, h.String())
		}
		e.drawSprite(log, h, actx)
		actor.Draw(*actx)
		return true
	})

	if err := e.renderer.Present(); err != nil {
		return fmt.Errorf("%w: %w", ErrPresent, err)
	}

	if _, overrun := e.pacer.Pace(); overrun {
		e.statOverruns.Add(1)
	}
	e.statTicks.Add(1)
	e.statFrameMs.Set(float64(e.pacer.Elapsed()) / float64(time.Millisecond))
	return nil
}

// drawSprite blits the actor's asset, failures are logged and the frame continues
func (e *Engine) drawSprite(log logging.Logger, h Handle, actx *ActorContext) {
	if e.assets == nil || actx.Asset.IsZero() {
		return
	}
	sprite, err := e.assets.LoadOrGet(actx.Asset.ID, actx.Asset.Path)
	if err != nil {
		e.statSpriteErrs.Add(1)
		logging.Logf(log, logging.LevelWarn, "%s: load sprite: %v", h, err)
		return
	}
	if err := e.renderer.DrawSprite(sprite, *actx); err != nil {
		e.statSpriteErrs.Add(1)
		logging.Logf(log, logging.LevelWarn, "%s: draw sprite: %v", h, err)
	}
}

func (e *Engine) quitRequested(ctx context.Context) bool {
	quit := false
	if e.input != nil && e.input.PollQuit() {
		quit = true
	}
	select {
	case <-ctx.Done():
		quit = true
	default:
	}
	return quit
}

func (e *Engine) transitioned(from, to State) {
	e.statState.Store(to.String())
	if e.onTransition != nil {
		e.onTransition(from, to)
	}
}
