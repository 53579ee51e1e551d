// Package world holds the state one scenario shares between its steps.
//
// A World is created by the runner immediately before a scenario's first step
// and dropped after its teardown, pass or fail. Steps receive it through the
// context.Context godog threads through every step; there is no package-level
// World, so scenarios run sequentially or in parallel never observe each
// other's data.
//
// Every field starts absent. Reading a field that was never set returns false
// rather than a zero value, so a step that depends on data "entered earlier"
// fails loudly when run out of order.
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options is the per-scenario bundle the runner hands to New.
type Options struct {
	// ScenarioID is the runner's id for the scenario execution.
	ScenarioID string
	Name       string
	Logger     *zap.Logger
	Parameters map[string]string
}

// World is a single scenario's mutable state. It is not safe for concurrent
// use; steps within a scenario run strictly one after another.
type World struct {
	id      string
	options Options
	logger  *zap.Logger

	url          optional
	firstName    optional
	lastName     optional
	emailAddress optional

	cleanups []func() error
	failed   bool
}

type optional struct {
	value string
	set   bool
}

func (o *optional) store(v string) {
	o.value, o.set = v, v != ""
}

func (o optional) load() (string, bool) {
	return o.value, o.set
}

// New returns a World with every field absent.
func New(opts Options) *World {
	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("world").With(zap.String("world_id", id))
	if opts.Name != "" {
		logger = logger.With(zap.String("scenario", opts.Name))
	}

	return &World{
		id:      id,
		options: opts,
		logger:  logger,
	}
}

// ID is unique to this World. Two scenarios never share one.
func (w *World) ID() string { return w.id }

// ScenarioName is the name of the scenario this World belongs to.
func (w *World) ScenarioName() string { return w.options.Name }

// Parameter looks up a runner-provided parameter.
func (w *World) Parameter(key string) (string, bool) {
	v, ok := w.options.Parameters[key]
	return v, ok
}

// Logger is scoped to the scenario.
func (w *World) Logger() *zap.Logger { return w.logger }

// SetURL records the base URL the scenario navigated to. An empty url marks it absent.
func (w *World) SetURL(url string) { w.url.store(url) }

// URL returns the recorded base URL, false if none was recorded.
func (w *World) URL() (string, bool) { return w.url.load() }

func (w *World) SetFirstName(name string) { w.firstName.store(name) }

func (w *World) FirstName() (string, bool) { return w.firstName.load() }

func (w *World) SetLastName(name string) { w.lastName.store(name) }

func (w *World) LastName() (string, bool) { return w.lastName.load() }

func (w *World) SetEmailAddress(email string) { w.emailAddress.store(email) }

func (w *World) EmailAddress() (string, bool) { return w.emailAddress.load() }

// Fail marks the scenario as failed.
func (w *World) Fail() { w.failed = true }

// Failed reports whether any step of the scenario failed.
func (w *World) Failed() bool { return w.failed }

// AddCleanup registers fn to run at scenario teardown. Cleanups run in reverse
// registration order.
func (w *World) AddCleanup(fn func() error) {
	w.cleanups = append(w.cleanups, fn)
}

// Cleanup runs every registered cleanup, even after one fails, and returns
// their errors joined. Each cleanup runs at most once; one added after a
// Cleanup call waits for the next call.
func (w *World) Cleanup() error {
	var errs []error
	for i := len(w.cleanups) - 1; i >= 0; i-- {
		if err := w.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	w.cleanups = nil

	if len(errs) > 0 {
		return fmt.Errorf("cleanup of scenario %q: %w", w.ScenarioName(), errors.Join(errs...))
	}
	return nil
}
