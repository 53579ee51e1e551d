package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
	"github.com/xkilldash9x/wdu-e2e/internal/config"
)

var (
	// ErrNoNewTab is returned by SwitchToNewTab when no tab opened before the deadline.
	ErrNoNewTab = errors.New("no new browser tab was opened")
	// ErrNoDialog is returned by WaitForDialog when no dialog appeared before the deadline.
	ErrNoDialog = errors.New("no dialog appeared")
	// ErrNoMatch is returned when a selector matched nothing.
	ErrNoMatch = errors.New("no element matches selector")
)

const eventBuffer = 8

// Page is one scenario's view of the browser: an isolated browser context
// whose tabs it tracks. All element operations run against the active tab.
type Page struct {
	id      string
	logger  *zap.Logger
	cfg     config.BrowserConfig
	manager *Manager

	// rootCtx owns the browser context; cancelling it disposes every tab in it.
	rootCtx          context.Context
	rootCancel       context.CancelFunc
	browserContextID cdp.BrowserContextID

	mu         sync.Mutex
	active     context.Context
	tabCancels []context.CancelFunc
	known      map[target.ID]bool

	newTabs   chan target.ID
	dialogs   chan schemas.Dialog
	harvester *Harvester

	closeOnce sync.Once
}

var _ schemas.Page = (*Page)(nil)

func newPage(ctx context.Context, cancel context.CancelFunc, logger *zap.Logger, cfg config.BrowserConfig, m *Manager, id string) *Page {
	p := &Page{
		id:         id,
		logger:     logger.Named("page").With(zap.String("page_id", id)),
		cfg:        cfg,
		manager:    m,
		rootCtx:    ctx,
		rootCancel: cancel,
		active:     ctx,
		known:      make(map[target.ID]bool),
		newTabs:    make(chan target.ID, eventBuffer),
		dialogs:    make(chan schemas.Dialog, eventBuffer),
	}
	p.harvester = NewHarvester(p.logger)

	if c := chromedp.FromContext(ctx); c != nil {
		p.browserContextID = c.BrowserContextID
		if c.Target != nil {
			p.known[c.Target.TargetID] = true
		}
	}

	p.listenForTabs()
	return p
}

// attachTab registers the per-tab listeners, once per tab, and returns the
// actions that must run on the tab before its events arrive.
func (p *Page) attachTab(tabCtx context.Context) chromedp.Tasks {
	p.handleDialogs(tabCtx)
	return p.harvester.Attach(tabCtx)
}

// ConsoleLogs returns the console output and uncaught exceptions seen on every tab so far.
func (p *Page) ConsoleLogs() []schemas.ConsoleLog {
	return p.harvester.ConsoleLogs()
}

// ID identifies the page for logging.
func (p *Page) ID() string { return p.id }

// listenForTabs queues every page target opened inside this page's browser context.
func (p *Page) listenForTabs() {
	chromedp.ListenBrowser(p.rootCtx, func(ev interface{}) {
		created, ok := ev.(*target.EventTargetCreated)
		if !ok || created.TargetInfo == nil {
			return
		}
		info := created.TargetInfo
		if info.Type != "page" || info.BrowserContextID != p.browserContextID {
			return
		}

		p.mu.Lock()
		seen := p.known[info.TargetID]
		p.known[info.TargetID] = true
		p.mu.Unlock()
		if seen {
			return
		}

		select {
		case p.newTabs <- info.TargetID:
			p.logger.Debug("New tab opened", zap.String("target_id", string(info.TargetID)), zap.String("url", info.URL))
		default:
			p.logger.Warn("Dropping new tab event, nobody switched to the earlier ones", zap.String("target_id", string(info.TargetID)))
		}
	})
}

// handleDialogs is registered once per tab by attachTab. It accepts every native dialog so
// the page is never left blocked, and queues what it saw for WaitForDialog.
func (p *Page) handleDialogs(tabCtx context.Context) {
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		opening, ok := ev.(*cdppage.EventJavascriptDialogOpening)
		if !ok {
			return
		}
		dialog := schemas.Dialog{
			Type:    schemas.DialogType(opening.Type.String()),
			Message: opening.Message,
			URL:     opening.URL,
		}

		// Listeners must not block, and the dialog must be answered from outside the event loop.
		go func() {
			if err := chromedp.Run(tabCtx, cdppage.HandleJavaScriptDialog(true)); err != nil {
				p.logger.Warn("Failed to accept dialog", zap.String("message", dialog.Message), zap.Error(err))
			} else {
				dialog.Accepted = true
			}

			select {
			case p.dialogs <- dialog:
			default:
				p.logger.Warn("Dropping dialog, nobody is waiting for it", zap.String("message", dialog.Message))
			}
		}()
	})
}

func (p *Page) activeTab() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// actionContext derives a context from the active tab that is also cancelled
// when the caller's context is.
func (p *Page) actionContext(opCtx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(p.activeTab())
	go func() {
		select {
		case <-opCtx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()
	return runCtx, cancel
}

func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := p.actionContext(ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	p.logger.Debug("Navigating", zap.String("url", url))
	navCtx, cancel := withOptionalTimeout(ctx, p.cfg.NavigationTimeout)
	defer cancel()

	if err := p.run(navCtx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (p *Page) ClickByRole(ctx context.Context, role schemas.Role, name string) error {
	p.logger.Debug("Clicking by role", zap.String("role", string(role)), zap.String("name", name))
	sel := roleSelector(role, name)
	if err := p.run(ctx,
		chromedp.WaitVisible(sel, queryBy(sel)),
		chromedp.Click(sel, queryBy(sel), chromedp.NodeVisible),
	); err != nil {
		return fmt.Errorf("failed to click %s %q: %w", role, name, err)
	}
	return nil
}

func (p *Page) FillByPlaceholder(ctx context.Context, placeholder, text string) error {
	p.logger.Debug("Filling", zap.String("placeholder", placeholder), zap.Int("length", len(text)))
	sel := placeholderSelector(placeholder)
	if err := p.run(ctx,
		chromedp.WaitVisible(sel, queryBy(sel)),
		chromedp.Clear(sel, queryBy(sel)),
		chromedp.SendKeys(sel, text, queryBy(sel)),
	); err != nil {
		return fmt.Errorf("failed to fill %q: %w", placeholder, err)
	}
	return nil
}

func (p *Page) WaitForSelector(ctx context.Context, selector string) error {
	if err := p.run(ctx, chromedp.WaitVisible(selector, queryBy(selector))); err != nil {
		return fmt.Errorf("failed waiting for %s: %w", selector, err)
	}
	return nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	p.logger.Debug("Clicking", zap.String("selector", selector))
	if err := p.run(ctx, chromedp.Click(selector, queryBy(selector), chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

func (p *Page) InnerText(ctx context.Context, selector string) (string, error) {
	texts, err := p.InnerTexts(ctx, selector)
	if err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	return texts[0], nil
}

func (p *Page) InnerTexts(ctx context.Context, selector string) ([]string, error) {
	var texts []string
	if err := p.run(ctx, chromedp.Evaluate(innerTextsJS(selector), &texts)); err != nil {
		return nil, fmt.Errorf("failed to read inner text of %s: %w", selector, err)
	}
	return texts, nil
}

func (p *Page) TextContent(ctx context.Context, selector string) (string, bool, error) {
	var text *string
	if err := p.run(ctx, chromedp.Evaluate(textContentJS(selector), &text)); err != nil {
		return "", false, fmt.Errorf("failed to read text content of %s: %w", selector, err)
	}
	if text == nil {
		return "", false, nil
	}
	return *text, true, nil
}

func (p *Page) SwitchToNewTab(ctx context.Context, viewport schemas.Viewport) error {
	waitCtx, cancel := withOptionalTimeout(ctx, p.cfg.NewTabTimeout)
	defer cancel()

	var id target.ID
	select {
	case id = <-p.newTabs:
	case <-waitCtx.Done():
		return fmt.Errorf("%w: %v", ErrNoNewTab, waitCtx.Err())
	}

	tabCtx, tabCancel := chromedp.NewContext(p.rootCtx, chromedp.WithTargetID(id))
	attach := p.attachTab(tabCtx)

	p.mu.Lock()
	p.active = tabCtx
	p.tabCancels = append(p.tabCancels, tabCancel)
	p.mu.Unlock()

	p.logger.Debug("Switched to new tab", zap.String("target_id", string(id)))
	if err := p.run(ctx,
		attach,
		cdppage.BringToFront(),
		chromedp.EmulateViewport(viewport.Width, viewport.Height),
	); err != nil {
		return fmt.Errorf("failed to activate new tab: %w", err)
	}
	return nil
}

func (p *Page) WaitForDialog(ctx context.Context) (schemas.Dialog, error) {
	waitCtx, cancel := withOptionalTimeout(ctx, p.cfg.DialogTimeout)
	defer cancel()

	select {
	case d := <-p.dialogs:
		return d, nil
	case <-waitCtx.Done():
		return schemas.Dialog{}, fmt.Errorf("%w: %v", ErrNoDialog, waitCtx.Err())
	}
}

func (p *Page) Wait(ctx context.Context, d time.Duration) error {
	p.logger.Debug("Waiting", zap.Duration("duration", d))
	return hesitate(ctx, d)
}

func (p *Page) URL(ctx context.Context) (string, error) {
	var loc string
	if err := p.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return loc, nil
}

// Close disposes every tab of the page. Safe to call more than once.
func (p *Page) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.logger.Debug("Closing page")
		if p.manager != nil {
			p.manager.unregisterPage(p.id)
		}

		p.mu.Lock()
		cancels := p.tabCancels
		p.tabCancels = nil
		p.mu.Unlock()

		for i := len(cancels) - 1; i >= 0; i-- {
			cancels[i]()
		}
		if p.rootCancel != nil {
			p.rootCancel()
		}
	})
	return ctx.Err()
}
