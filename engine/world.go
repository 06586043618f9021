package engine

import (
	"fmt"

	"github.com/lixenwraith/buji/component"
)

// Handle identifies an actor by insertion index, stable for the life of the World
type Handle int

// String returns the handle as "actor#N"
func (h Handle) String() string {
	return fmt.Sprintf("actor#%d", int(h))
}

type entry struct {
	actor Actor
	ctx   ActorContext
}

// World is the ordered actor registry
// Insertion order is update and draw order; entries are never removed or reordered
// Entries are individually allocated so a lent *ActorContext stays valid across AddActor
type World struct {
	entries []*entry
}

// NewWorld creates an empty World
func NewWorld() *World {
	return &World{entries: make([]*entry, 0, 16)}
}

// AddActor appends actor with its context and returns its handle
// A zero Scale is replaced with component.DefaultScale
// Panics on a nil actor
func (w *World) AddActor(actor Actor, ctx ActorContext) Handle {
	if actor == nil {
		panic("engine: AddActor with nil actor")
	}
	if ctx.Scale == 0 {
		ctx.Scale = component.DefaultScale
	}
	w.entries = append(w.entries, &entry{actor: actor, ctx: ctx})
	return Handle(len(w.entries) - 1)
}

// Len returns the number of actors
func (w *World) Len() int {
	return len(w.entries)
}

// Each visits actors in insertion order, lending each context for the duration of fn
// Actors added during the traversal are first visited by the next traversal
// Returning false from fn stops the traversal
func (w *World) Each(fn func(h Handle, actor Actor, ctx *ActorContext) bool) {
	n := len(w.entries)
	for i := 0; i < n; i++ {
		e := w.entries[i]
		if !fn(Handle(i), e.actor, &e.ctx) {
			return
		}
	}
}

// Context returns the context for h
func (w *World) Context(h Handle) (*ActorContext, bool) {
	if h < 0 || int(h) >= len(w.entries) {
		return nil, false
	}
	return &w.entries[h].ctx, true
}

// Actor returns the behavior registered under h
func (w *World) Actor(h Handle) (Actor, bool) {
	if h < 0 || int(h) >= len(w.entries) {
		return nil, false
	}
	return w.entries[h].actor, true
}
