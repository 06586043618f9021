package engine

import "github.com/lixenwraith/buji/component"

// ActorContext is the mutable spatial and visual state of one actor
// The World owns every context; actors only borrow it for the length of a call
type ActorContext struct {
	Position component.Position
	Scale    component.Scale
	Rotation component.Rotation
	Asset    component.AssetRef
}

// NewActorContext creates a context at pos drawing asset, with unit scale and no rotation
func NewActorContext(pos component.Position, asset component.AssetRef) ActorContext {
	return ActorContext{
		Position: pos,
		Scale:    component.DefaultScale,
		Rotation: component.RotationZero,
		Asset:    asset,
	}
}

// Actor is a user behavior invoked once per frame
// Update may mutate ctx and optionally request a state; ok=false means no request
// Draw runs after Update in the same frame and sees its mutations
type Actor interface {
	Update(ctx *ActorContext) (next State, ok bool)
	Draw(ctx ActorContext)
}

// ActorFuncs adapts a pair of functions to Actor, nil functions are skipped
type ActorFuncs struct {
	UpdateFunc func(ctx *ActorContext) (State, bool)
	DrawFunc   func(ctx ActorContext)
}

// Update implements Actor
func (f ActorFuncs) Update(ctx *ActorContext) (State, bool) {
	if f.UpdateFunc == nil {
		return StateRunning, false
	}
	return f.UpdateFunc(ctx)
}

// Draw implements Actor
func (f ActorFuncs) Draw(ctx ActorContext) {
	if f.DrawFunc != nil {
		f.DrawFunc(ctx)
	}
}
