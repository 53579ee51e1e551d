package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
	"github.com/xkilldash9x/wdu-e2e/internal/config"
)

// ErrManagerClosed is returned by NewPage after Shutdown.
var ErrManagerClosed = errors.New("browser manager is shut down")

const pageCloseTimeout = 10 * time.Second

// Manager owns the browser process and hands out one isolated Page per scenario.
type Manager struct {
	logger *zap.Logger
	cfg    config.BrowserConfig

	allocatorCtx    context.Context
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc

	mu     sync.Mutex
	pages  map[string]*Page
	closed bool
}

var _ schemas.PageFactory = (*Manager)(nil)

// NewManager starts the browser. The browser lives until Shutdown or until ctx is done.
func NewManager(ctx context.Context, logger *zap.Logger, cfg config.BrowserConfig) (*Manager, error) {
	m := &Manager{
		logger: logger.Named("browser_manager"),
		cfg:    cfg,
		pages:  make(map[string]*Page),
	}

	m.allocatorCtx, m.allocatorCancel = chromedp.NewExecAllocator(context.Background(), m.allocatorOptions()...)
	m.browserCtx, m.browserCancel = chromedp.NewContext(m.allocatorCtx, m.contextOptions()...)

	// The first Run launches the browser process.
	startCtx, cancel := context.WithCancel(m.browserCtx)
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-startCtx.Done():
		}
	}()
	if err := chromedp.Run(startCtx); err != nil {
		m.browserCancel()
		m.allocatorCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	m.logger.Info("Browser manager initialized",
		zap.Bool("headless", cfg.Headless),
		zap.String("exec_path", cfg.ExecPath),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return m, nil
}

func (m *Manager) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	if !m.cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if m.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(m.cfg.ExecPath))
	}
	if m.cfg.Width > 0 && m.cfg.Height > 0 {
		opts = append(opts, chromedp.WindowSize(m.cfg.Width, m.cfg.Height))
	}

	opts = append(opts,
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-gpu", m.cfg.Headless),
		chromedp.Flag("ignore-certificate-errors", m.cfg.IgnoreTLSErrors),
	)

	// Extra args come as "name" or "name=value", with or without leading dashes.
	for _, arg := range m.cfg.Args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			opts = append(opts, chromedp.Flag(name, value))
		} else {
			opts = append(opts, chromedp.Flag(name, true))
		}
	}
	return opts
}

func (m *Manager) contextOptions() []chromedp.ContextOption {
	opts := []chromedp.ContextOption{
		chromedp.WithLogf(m.logger.Sugar().Debugf),
		chromedp.WithErrorf(m.logger.Sugar().Errorf),
	}
	if m.cfg.Debug {
		opts = append(opts, chromedp.WithDebugf(m.logger.Sugar().Debugf))
	}
	return opts
}

// NewPage opens a fresh incognito browser context with a single blank tab.
// The page outlives ctx; it is released by Page.Close or Shutdown.
func (m *Manager) NewPage(ctx context.Context) (schemas.Page, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, ErrManagerClosed
	}

	tabCtx, cancel := chromedp.NewContext(m.browserCtx, chromedp.WithNewBrowserContext())

	initCtx, initCancel := context.WithCancel(tabCtx)
	defer initCancel()
	go func() {
		select {
		case <-ctx.Done():
			initCancel()
		case <-initCtx.Done():
		}
	}()

	err := chromedp.Run(initCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(c context.Context) error {
			// Target discovery has to be on for popups and target=_blank links to be reported.
			return target.SetDiscoverTargets(true).Do(cdp.WithExecutor(c, chromedp.FromContext(c).Browser))
		}),
	)
	if err != nil {
		cancel()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to open browser context: %w", err)
	}

	id := uuid.New().String()
	p := newPage(tabCtx, cancel, m.logger, m.cfg, m, id)
	if err := chromedp.Run(initCtx, p.attachTab(tabCtx)); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to attach to new page: %w", err)
	}

	m.mu.Lock()
	m.pages[id] = p
	m.mu.Unlock()

	m.logger.Debug("Page opened", zap.String("page_id", id))
	return p, nil
}

func (m *Manager) unregisterPage(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, id)
}

// OpenPages reports how many pages are still open.
func (m *Manager) OpenPages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

// Shutdown closes every open page concurrently and then the browser itself.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down browser manager...")

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	open := make([]*Page, 0, len(m.pages))
	for _, p := range m.pages {
		open = append(open, p)
	}
	m.pages = make(map[string]*Page)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, p := range open {
		wg.Add(1)
		go func(p *Page) {
			defer wg.Done()
			closeCtx, cancel := context.WithTimeout(ctx, pageCloseTimeout)
			defer cancel()
			if err := p.Close(closeCtx); err != nil {
				m.logger.Warn("Error closing page during shutdown", zap.String("page_id", p.ID()), zap.Error(err))
			}
		}(p)
	}
	wg.Wait()

	if m.browserCancel != nil {
		m.browserCancel()
	}
	if m.allocatorCancel != nil {
		m.allocatorCancel()
	}

	m.logger.Info("Browser manager shutdown complete.")
	return nil
}
