package schemas

import (
	"context"
	"time"
)

// Role is an ARIA role used to look up elements by what they are rather than how they are built.
type Role string

const (
	RoleLink    Role = "link"
	RoleButton  Role = "button"
	RoleHeading Role = "heading"
)

// Viewport is the size a tab is set to when it becomes active.
type Viewport struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// DialogType mirrors the CDP dialog types (alert, confirm, prompt, beforeunload).
type DialogType string

// Dialog is a native JavaScript dialog observed on a page.
type Dialog struct {
	Type     DialogType `json:"type"`
	Message  string     `json:"message"`
	URL      string     `json:"url"`
	Accepted bool       `json:"accepted"`
}

// ConsoleLog is one console message or uncaught exception reported by a page.
type ConsoleLog struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
}

// ConsoleReporter is implemented by pages that collect what the site logs to its console.
type ConsoleReporter interface {
	ConsoleLogs() []ConsoleLog
}

// Page is the driver surface the page objects are written against.
// One Page belongs to exactly one scenario. It tracks the active tab, so after
// SwitchToNewTab every other method operates on the newly opened tab.
type Page interface {
	// Navigate loads url in the active tab and returns once the body is ready.
	Navigate(ctx context.Context, url string) error
	ClickByRole(ctx context.Context, role Role, name string) error
	FillByPlaceholder(ctx context.Context, placeholder, text string) error
	WaitForSelector(ctx context.Context, selector string) error
	Click(ctx context.Context, selector string) error
	InnerText(ctx context.Context, selector string) (string, error)
	// TextContent reports false when the element has no text content at all.
	TextContent(ctx context.Context, selector string) (string, bool, error)
	// InnerTexts returns the inner text of every element matching selector, in document order.
	InnerTexts(ctx context.Context, selector string) ([]string, error)
	// SwitchToNewTab waits for the next tab opened by this page, activates it and sizes it to viewport.
	SwitchToNewTab(ctx context.Context, viewport Viewport) error
	// WaitForDialog returns the next dialog seen on any tab of this page. Dialogs are accepted as they open.
	WaitForDialog(ctx context.Context) (Dialog, error)
	Wait(ctx context.Context, d time.Duration) error
	URL(ctx context.Context) (string, error)
	Close(ctx context.Context) error
}

// PageFactory hands out one fresh, isolated Page per scenario.
type PageFactory interface {
	NewPage(ctx context.Context) (Page, error)
}
