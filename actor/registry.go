package actor

import (
	"sort"

	"github.com/milk9111/stagehand/physics"
)

// ID identifies an actor for the lifetime of its stage. It survives Resize,
// which replaces the physics body.
type ID uint64

// Registry maps physics bodies back to their actors.
type Registry struct {
	next   ID
	actors map[ID]*Actor
	byBody map[physics.BodyID]ID
}

func NewRegistry() *Registry {
	return &Registry{
		actors: make(map[ID]*Actor),
		byBody: make(map[physics.BodyID]ID),
	}
}

func (r *Registry) add(a *Actor) {
	r.next++
	a.id = r.next
	r.actors[a.id] = a
	r.bind(a, 0)
}

// bind points a's current body at a, dropping the stale body id.
func (r *Registry) bind(a *Actor, old physics.BodyID) {
	if old != 0 {
		delete(r.byBody, old)
	}
	if a.body != nil {
		r.byBody[a.body.ID()] = a.id
	}
}

// Lookup returns the actor with id.
func (r *Registry) Lookup(id ID) (*Actor, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.actors[id]
	return a, ok
}

// ByBody returns the actor that owns b, or nil for bodies that belong to
// no actor.
func (r *Registry) ByBody(b *physics.Body) *Actor {
	if r == nil || b == nil {
		return nil
	}
	id, ok := r.byBody[b.ID()]
	if !ok {
		return nil
	}
	return r.actors[id]
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.actors)
}

// Actors returns every registered actor in creation order.
func (r *Registry) Actors() []*Actor {
	if r == nil {
		return nil
	}
	out := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
