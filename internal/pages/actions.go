// Package pages holds the page objects the step definitions drive. Each page
// object embeds Actions, the capabilities every page shares, and adds the
// operations specific to one page of the site.
package pages

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

// ErrEmptyLocator is returned when a Locator names neither a selector nor a role.
var ErrEmptyLocator = errors.New("empty locator")

// Locator identifies one element either by CSS/XPath selector or by role and name.
type Locator struct {
	Selector string
	Role     schemas.Role
	Name     string
}

func (l Locator) String() string {
	if l.Selector != "" {
		return l.Selector
	}
	return fmt.Sprintf("%s %q", l.Role, l.Name)
}

// Actions is the shared page capability set.
type Actions struct {
	page     schemas.Page
	viewport schemas.Viewport
	logger   *zap.Logger
}

func NewActions(page schemas.Page, viewport schemas.Viewport, logger *zap.Logger) *Actions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Actions{page: page, viewport: viewport, logger: logger}
}

// Page exposes the driver for operations no page object wraps.
func (a *Actions) Page() schemas.Page { return a.page }

func (a *Actions) Navigate(ctx context.Context, url string) error {
	a.logger.Info("Accessing URL", zap.String("url", url))
	return a.page.Navigate(ctx, url)
}

func (a *Actions) WaitAndClickByRole(ctx context.Context, role schemas.Role, name string) error {
	return a.page.ClickByRole(ctx, role, name)
}

// WaitAndClick waits for the element to be visible and then clicks it.
func (a *Actions) WaitAndClick(ctx context.Context, loc Locator) error {
	if loc.Selector != "" {
		return a.WaitAndClickSelector(ctx, loc.Selector)
	}
	if loc.Role == "" {
		return ErrEmptyLocator
	}
	if err := a.WaitAndClickByRole(ctx, loc.Role, loc.Name); err != nil {
		return fmt.Errorf("failed to click %s: %w", loc, err)
	}
	return nil
}

func (a *Actions) WaitAndClickSelector(ctx context.Context, selector string) error {
	if err := a.page.WaitForSelector(ctx, selector); err != nil {
		return err
	}
	return a.page.Click(ctx, selector)
}

// SwitchToNewTab makes the most recently opened tab the active one, sized to the configured viewport.
func (a *Actions) SwitchToNewTab(ctx context.Context) error {
	if err := a.page.SwitchToNewTab(ctx, a.viewport); err != nil {
		return fmt.Errorf("failed to switch to the new browser tab: %w", err)
	}
	return nil
}
