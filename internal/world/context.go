package world

import (
	"context"
	"errors"
)

// ErrNoWorld is returned when a step runs without the runner having attached a World.
var ErrNoWorld = errors.New("no scenario world in context")

type worldKey struct{}

// NewContext returns a copy of ctx carrying w.
func NewContext(ctx context.Context, w *World) context.Context {
	return context.WithValue(ctx, worldKey{}, w)
}

// FromContext returns the World attached by NewContext.
func FromContext(ctx context.Context) (*World, error) {
	w, ok := ctx.Value(worldKey{}).(*World)
	if !ok || w == nil {
		return nil, ErrNoWorld
	}
	return w, nil
}
