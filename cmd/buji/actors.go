package main

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/buji/config"
	"github.com/lixenwraith/buji/engine"
	"github.com/lixenwraith/buji/logging"
)

// playerStopY is where a player stops walking
const playerStopY = 200

var ErrUnknownKind = errors.New("unknown actor kind")

// Player walks down one unit per frame until it reaches its stop row
type Player struct {
	ID       int
	NickName string
	Health   int
	StopY    int32

	logger  logging.Logger
	arrived bool
}

// Update implements engine.Actor
func (p *Player) Update(ctx *engine.ActorContext) (engine.State, bool) {
	if ctx.Position.Y < p.StopY {
		ctx.Position.Y++
	}
	return engine.StateRunning, false
}

// Draw implements engine.Actor
func (p *Player) Draw(ctx engine.ActorContext) {
	if p.arrived || ctx.Position.Y < p.StopY {
		return
	}
	p.arrived = true
	logging.Logf(p.logger, logging.LevelInfo, "player %d-%s arrived at %d,%d", p.ID, p.NickName, ctx.Position.X, ctx.Position.Y)
}

// Tower stands still and reports its first draw
type Tower struct {
	Name  string
	Power float32

	logger logging.Logger
	shown  bool
}

// Update implements engine.Actor
func (t *Tower) Update(*engine.ActorContext) (engine.State, bool) {
	return engine.StateRunning, false
}

// Draw implements engine.Actor
func (t *Tower) Draw(ctx engine.ActorContext) {
	if t.shown {
		return
	}
	t.shown = true
	logging.Logf(t.logger, logging.LevelInfo, "tower %s (%.0f) placed at %d,%d", t.Name, t.Power, ctx.Position.X, ctx.Position.Y)
}

// buildActors maps every actor block to its behavior, in file order
func buildActors(f *config.File, logger logging.Logger) ([]engine.Actor, error) {
	actors := make([]engine.Actor, 0, len(f.Actors))
	for i, block := range f.Actors {
		switch block.Kind {
		case "player":
			actors = append(actors, &Player{
				ID:       i + 1,
				NickName: block.Name,
				Health:   100,
				StopY:    playerStopY,
				logger:   logger,
			})
		case "tower":
			actors = append(actors, &Tower{Name: block.Name, Power: 100, logger: logger})
		default:
			return nil, fmt.Errorf("actor %q: %w: %s", block.Name, ErrUnknownKind, block.Kind)
		}
	}
	return actors, nil
}
