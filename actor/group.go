package actor

import (
	"slices"
	"time"
)

// Group keeps actors in insertion order
type Group[T Actor] struct {
	items []T
}

func NewGroup[T Actor]() *Group[T] {
	return &Group[T]{}
}

func (g *Group[T]) Add(a T) {
	g.items = append(g.items, a)
}

// Update advances every actor, including actors added during the pass on the next call only
func (g *Group[T]) Update(delta time.Duration) {
	n := len(g.items)
	for i := 0; i < n; i++ {
		if g.items[i].Alive() {
			g.items[i].Update(delta)
		}
	}
}

// Prune drops dead actors and returns how many were removed
func (g *Group[T]) Prune() int {
	before := len(g.items)
	g.items = slices.DeleteFunc(g.items, func(a T) bool { return !a.Alive() })
	return before - len(g.items)
}

// Items returns the live slice; callers must not retain it across Prune
func (g *Group[T]) Items() []T { return g.items }

func (g *Group[T]) Len() int { return len(g.items) }

// Clear drops every actor
func (g *Group[T]) Clear() {
	clear(g.items)
	g.items = g.items[:0]
}
