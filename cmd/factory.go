package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
	"github.com/xkilldash9x/wdu-e2e/internal/browser"
	"github.com/xkilldash9x/wdu-e2e/internal/config"
	"github.com/xkilldash9x/wdu-e2e/internal/suite"
)

const shutdownTimeout = 20 * time.Second

// Components holds the services one run needs and releases them in order.
type Components struct {
	Pages  schemas.PageFactory
	Runner *suite.Runner

	shutdown func(context.Context) error
}

// Shutdown closes the browser. It is safe to call on a partially built Components.
func (c *Components) Shutdown(logger *zap.Logger) {
	if c.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c.shutdown(ctx); err != nil {
		logger.Warn("Error during browser shutdown", zap.Error(err))
	}
}

// pageFactoryFunc starts whatever hands out pages. Replaced in tests.
type pageFactoryFunc func(ctx context.Context, logger *zap.Logger, cfg config.BrowserConfig) (schemas.PageFactory, func(context.Context) error, error)

var newPageFactory pageFactoryFunc = func(ctx context.Context, logger *zap.Logger, cfg config.BrowserConfig) (schemas.PageFactory, func(context.Context) error, error) {
	m, err := browser.NewManager(ctx, logger, cfg)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Shutdown, nil
}

// newComponents starts the browser and builds the runner around it.
func newComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...suite.Option) (*Components, error) {
	factory, shutdown, err := newPageFactory(ctx, logger, cfg.Browser)
	if err != nil {
		return nil, fmt.Errorf("failed to start the browser: %w", err)
	}
	return &Components{
		Pages:    factory,
		Runner:   suite.NewRunner(cfg, logger, factory, opts...),
		shutdown: shutdown,
	}, nil
}
