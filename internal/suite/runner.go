// Package suite wires the step definitions into godog and runs the feature
// files. Each scenario gets its own browser page, World and page objects,
// created before its first step and torn down after its last.
package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
	"github.com/xkilldash9x/wdu-e2e/internal/config"
	"github.com/xkilldash9x/wdu-e2e/internal/fakedata"
	"github.com/xkilldash9x/wdu-e2e/internal/pages"
	"github.com/xkilldash9x/wdu-e2e/internal/steps"
	"github.com/xkilldash9x/wdu-e2e/internal/world"
)

// ErrSuiteFailed is returned by Run when the last attempt had failing scenarios.
var ErrSuiteFailed = errors.New("test suite failed")

// godog exit codes.
const (
	statusPassed       = 0
	statusFailed       = 1
	statusInvalidUsage = 2
)

const pageCloseTimeout = 10 * time.Second

// Option customises a Runner.
type Option func(*Runner)

// WithOutput sends formatter output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.output = w }
}

// WithFeatures runs the given in-memory features instead of the configured paths.
func WithFeatures(features ...godog.Feature) Option {
	return func(r *Runner) { r.features = features }
}

// WithDataSource sets how each scenario gets its fake data generator.
func WithDataSource(fn func() fakedata.Generator) Option {
	return func(r *Runner) { r.newData = fn }
}

// WithParameters are handed to every World.
func WithParameters(params map[string]string) Option {
	return func(r *Runner) { r.parameters = params }
}

// Runner runs the feature files against pages from a PageFactory.
type Runner struct {
	cfg     *config.Config
	logger  *zap.Logger
	factory schemas.PageFactory

	output     io.Writer
	features   []godog.Feature
	newData    func() fakedata.Generator
	parameters map[string]string
}

func NewRunner(cfg *config.Config, logger *zap.Logger, factory schemas.PageFactory, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		cfg:     cfg,
		logger:  logger.Named("suite"),
		factory: factory,
		output:  os.Stdout,
		newData: func() fakedata.Generator { return fakedata.New(0) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the suite filtered by tags, retrying the whole run up to
// suite.retry more times while it keeps failing.
func (r *Runner) Run(ctx context.Context, tags string) error {
	attempts := 1 + max(r.cfg.Suite.Retry, 0)

	var status int
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 1 {
			r.logger.Warn("Retrying failed run", zap.Int("attempt", attempt), zap.Int("max_attempts", attempts))
		}

		opts, err := r.options(ctx, tags, attempt)
		if err != nil {
			return err
		}
		status = godog.TestSuite{
			Name:                 "webdriveruniversity",
			TestSuiteInitializer: r.InitializeTestSuite,
			ScenarioInitializer:  r.InitializeScenario,
			Options:              &opts,
		}.Run()

		switch status {
		case statusPassed:
			r.logger.Info("Run passed", zap.Int("attempt", attempt))
			return nil
		case statusInvalidUsage:
			return fmt.Errorf("godog rejected the run options (tags %q, paths %v)", tags, r.cfg.Suite.Paths)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w after %d attempt(s) with status %d", ErrSuiteFailed, attempts, status)
}

func (r *Runner) options(ctx context.Context, tags string, attempt int) (godog.Options, error) {
	format, err := formatFor(r.cfg.Suite.Format, r.cfg.Suite.ReportDir, attempt)
	if err != nil {
		return godog.Options{}, err
	}

	opts := godog.Options{
		Format:          format,
		Tags:            tags,
		Concurrency:     max(r.cfg.Suite.Concurrency, 1),
		Strict:          r.cfg.Suite.Strict,
		StopOnFailure:   r.cfg.Suite.StopOnFailure,
		Randomize:       r.cfg.Suite.Randomize,
		Output:          r.output,
		DefaultContext:  ctx,
		FeatureContents: r.features,
	}
	if len(r.features) == 0 {
		opts.Paths = r.cfg.Suite.Paths
	}
	return opts, nil
}

// InitializeTestSuite logs the start and end of each attempt.
func (r *Runner) InitializeTestSuite(tsc *godog.TestSuiteContext) {
	var started time.Time
	tsc.BeforeSuite(func() {
		started = time.Now()
		r.logger.Info("Starting test suite", zap.Strings("paths", r.cfg.Suite.Paths), zap.String("base_url", r.cfg.Site.BaseURL))
	})
	tsc.AfterSuite(func() {
		r.logger.Info("Test suite finished", zap.Duration("duration", time.Since(started)))
	})
}

type stepScope struct {
	parent context.Context
	cancel context.CancelFunc
}

type stepScopeKey struct{}

// InitializeScenario sets up the per-scenario fixtures and registers the steps.
func (r *Runner) InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(r.beforeScenario)
	sc.After(r.afterScenario)
	sc.StepContext().Before(r.beforeStep)
	sc.StepContext().After(r.afterStep)
	steps.Register(sc)
}

func (r *Runner) beforeScenario(ctx context.Context, s *godog.Scenario) (context.Context, error) {
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		tags = append(tags, t.Name)
	}

	w := world.New(world.Options{
		ScenarioID: s.Id,
		Name:       s.Name,
		Logger:     r.logger,
		Parameters: r.parameters,
	})

	page, err := r.factory.NewPage(ctx)
	if err != nil {
		return ctx, fmt.Errorf("failed to open a browser page for %q: %w", s.Name, err)
	}
	w.AddCleanup(func() error {
		closeCtx, cancel := context.WithTimeout(context.Background(), pageCloseTimeout)
		defer cancel()
		return page.Close(closeCtx)
	})

	w.Logger().Debug("Scenario starting", zap.Strings("tags", tags))
	return steps.WithFixtures(ctx, &steps.Fixtures{
		World:  w,
		Pages:  pages.NewManager(page, r.cfg, w.Logger()),
		Data:   r.newData(),
		Config: r.cfg,
	}), nil
}

func (r *Runner) afterScenario(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
	f, ferr := steps.FixturesFrom(ctx)
	if ferr != nil {
		// beforeScenario failed; nothing was opened.
		return ctx, nil
	}
	if err != nil {
		f.World.Fail()
		profile, _ := f.World.Parameter("profile")
		r.logger.Error("Scenario failed",
			zap.String("scenario", f.World.ScenarioName()),
			zap.String("profile", profile),
			zap.String("world_id", f.World.ID()),
			zap.Error(err),
		)
		logConsole(f.World.Logger(), f.Pages.Page())
	} else {
		f.World.Logger().Debug("Scenario passed")
	}

	if cerr := f.World.Cleanup(); cerr != nil {
		f.World.Logger().Warn("Scenario cleanup failed", zap.Error(cerr))
	}
	return ctx, nil
}

// maxLoggedConsoleEntries caps how much of a failed page's console is logged.
const maxLoggedConsoleEntries = 20

// logConsole reports the tail of the page's console output, when the page keeps one.
func logConsole(logger *zap.Logger, page schemas.Page) {
	reporter, ok := page.(schemas.ConsoleReporter)
	if !ok {
		return
	}
	entries := reporter.ConsoleLogs()
	if len(entries) > maxLoggedConsoleEntries {
		entries = entries[len(entries)-maxLoggedConsoleEntries:]
	}
	for _, e := range entries {
		logger.Info("Browser console", zap.String("type", e.Type), zap.String("source", e.Source), zap.String("text", e.Text))
	}
}

func (r *Runner) beforeStep(ctx context.Context, st *godog.Step) (context.Context, error) {
	timeout := r.cfg.Suite.StepTimeout
	if timeout <= 0 {
		return ctx, nil
	}
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	return context.WithValue(stepCtx, stepScopeKey{}, stepScope{parent: ctx, cancel: cancel}), nil
}

func (r *Runner) afterStep(ctx context.Context, st *godog.Step, status godog.StepResultStatus, err error) (context.Context, error) {
	// The step deadline must not leak into the next step.
	if scope, ok := ctx.Value(stepScopeKey{}).(stepScope); ok {
		scope.cancel()
		ctx = scope.parent
	}

	if status == godog.StepFailed {
		if f, ferr := steps.FixturesFrom(ctx); ferr == nil {
			f.World.Fail()
			f.World.Logger().Warn("Step failed", zap.String("step", st.Text), zap.Error(err))
		}
	}
	return ctx, nil
}
