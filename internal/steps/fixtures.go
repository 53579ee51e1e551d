// Package steps binds the suite's Gherkin phrases to page object calls. Every
// handler takes the scenario's context first and reads its fixtures from it;
// nothing here keeps state between calls.
package steps

import (
	"context"
	"errors"

	"github.com/xkilldash9x/wdu-e2e/internal/config"
	"github.com/xkilldash9x/wdu-e2e/internal/fakedata"
	"github.com/xkilldash9x/wdu-e2e/internal/pages"
	"github.com/xkilldash9x/wdu-e2e/internal/world"
)

// ErrNoFixtures means a step ran outside a scenario set up by the runner.
var ErrNoFixtures = errors.New("no scenario fixtures in context")

// Fixtures is what one scenario's steps are given. The page objects are kept
// beside the World, never inside it.
type Fixtures struct {
	World  *world.World
	Pages  *pages.Manager
	Data   fakedata.Generator
	Config *config.Config
}

type fixturesKey struct{}

// WithFixtures returns a context carrying f, and f.World on its own.
func WithFixtures(ctx context.Context, f *Fixtures) context.Context {
	if f.World != nil {
		ctx = world.NewContext(ctx, f.World)
	}
	return context.WithValue(ctx, fixturesKey{}, f)
}

func FixturesFrom(ctx context.Context) (*Fixtures, error) {
	f, ok := ctx.Value(fixturesKey{}).(*Fixtures)
	if !ok || f == nil || f.World == nil || f.Pages == nil {
		return nil, ErrNoFixtures
	}
	return f, nil
}
