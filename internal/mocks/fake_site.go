package mocks

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

var (
	ErrElementNotFound = errors.New("fake site: element not found")
	ErrNoNewTab        = errors.New("fake site: no new tab was opened")
	ErrNoDialog        = errors.New("fake site: no dialog appeared")
	ErrPageClosed      = errors.New("fake site: page is closed")
)

// Credentials the fake login portal accepts.
const (
	ValidUsername = "webdriver"
	ValidPassword = "webdriver123"
)

const (
	viewBlank   = "blank"
	viewHome    = "home"
	viewContact = "contact"
	viewReply   = "reply"
	viewError   = "error"
	viewLogin   = "login"

	contactPath = "Contact-Us/contactus.html"
	replyPath   = "Contact-Us/contact-form-thank-you.html"
	errorPath   = "Contact-Us/contact_us.php"

	submitSelector = `input[value="SUBMIT"]`
	replySelector  = "#contact_reply h1"
	replyMessage   = "Thank You for your Message!"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FakePage is an in-memory stand-in for webdriveruniversity.com driven
// through schemas.Page. It models the homepage, the contact us form with its
// server-side validation and the login portal with its alert.
type FakePage struct {
	baseURL   string
	loginPath string

	mu          sync.Mutex
	view        string
	url         string
	fields      map[string]string
	errorLines  []string
	pendingTabs []string
	dialogs     []schemas.Dialog
	waits       []time.Duration
	viewports   []schemas.Viewport
	closed      bool
}

var _ schemas.Page = (*FakePage)(nil)

func NewFakePage(baseURL, loginPath string) *FakePage {
	return &FakePage{
		baseURL:   strings.TrimRight(baseURL, "/") + "/",
		loginPath: strings.TrimLeft(loginPath, "/"),
		view:      viewBlank,
		url:       "about:blank",
		fields:    make(map[string]string),
	}
}

func (f *FakePage) urlFor(path string) string {
	return f.baseURL + strings.TrimLeft(path, "/")
}

// show switches the active tab to view. Caller holds mu.
func (f *FakePage) show(view, url string) {
	f.view = view
	f.url = url
	f.fields = make(map[string]string)
	f.errorLines = nil
}

func (f *FakePage) check(ctx context.Context) error {
	if f.closed {
		return ErrPageClosed
	}
	return ctx.Err()
}

func (f *FakePage) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}

	switch {
	case url == f.baseURL || url == strings.TrimRight(f.baseURL, "/"):
		f.show(viewHome, f.baseURL)
	case url == f.urlFor(f.loginPath):
		f.show(viewLogin, url)
	case url == f.urlFor(contactPath):
		f.show(viewContact, url)
	default:
		return fmt.Errorf("fake site: cannot navigate to %s", url)
	}
	return nil
}

func (f *FakePage) ClickByRole(ctx context.Context, role schemas.Role, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}

	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case f.view == viewHome && role == schemas.RoleLink && strings.Contains("contact us form", n):
		f.pendingTabs = append(f.pendingTabs, viewContact)
	case f.view == viewHome && role == schemas.RoleLink && strings.Contains("login portal", n):
		f.pendingTabs = append(f.pendingTabs, viewLogin)
	case f.view == viewLogin && role == schemas.RoleButton && strings.Contains("login", n):
		f.login()
	default:
		return fmt.Errorf("%w: %s %q on %s", ErrElementNotFound, role, name, f.view)
	}
	return nil
}

func (f *FakePage) placeholders() []string {
	switch f.view {
	case viewContact:
		return []string{"First Name", "Last Name", "Email Address", "Comments"}
	case viewLogin:
		return []string{"Username", "Password"}
	default:
		return nil
	}
}

func (f *FakePage) FillByPlaceholder(ctx context.Context, placeholder, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}
	for _, p := range f.placeholders() {
		if p == placeholder {
			f.fields[placeholder] = text
			return nil
		}
	}
	return fmt.Errorf("%w: placeholder %q on %s", ErrElementNotFound, placeholder, f.view)
}

func (f *FakePage) has(selector string) bool {
	switch selector {
	case "body", "//body", "//h1 | //body":
		return f.view != viewBlank
	case submitSelector:
		return f.view == viewContact
	case replySelector:
		return f.view == viewReply
	case "#login-button":
		return f.view == viewLogin
	}
	return false
}

func (f *FakePage) WaitForSelector(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}
	if !f.has(selector) {
		return fmt.Errorf("%w: %s on %s", ErrElementNotFound, selector, f.view)
	}
	return nil
}

func (f *FakePage) Click(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}

	switch {
	case f.view == viewContact && selector == submitSelector:
		f.submitContactForm()
	case f.view == viewLogin && selector == "#login-button":
		f.login()
	default:
		return fmt.Errorf("%w: %s on %s", ErrElementNotFound, selector, f.view)
	}
	return nil
}

func (f *FakePage) submitContactForm() {
	var lines []string
	for _, p := range []string{"First Name", "Last Name", "Email Address", "Comments"} {
		if f.fields[p] == "" {
			lines = append(lines, "Error: all fields are required")
			break
		}
	}
	if !emailPattern.MatchString(f.fields["Email Address"]) {
		lines = append(lines, "Error: Invalid email address")
	}

	if len(lines) == 0 {
		f.show(viewReply, f.urlFor(replyPath))
		return
	}
	f.show(viewError, f.urlFor(errorPath))
	f.errorLines = lines
}

func (f *FakePage) login() {
	msg := "validation failed"
	if f.fields["Username"] == ValidUsername && f.fields["Password"] == ValidPassword {
		msg = "validation succeeded"
	}
	f.dialogs = append(f.dialogs, schemas.Dialog{
		Type:     "alert",
		Message:  msg,
		URL:      f.url,
		Accepted: true,
	})
}

func (f *FakePage) headings() []string {
	switch f.view {
	case viewHome:
		return []string{"WEBDRIVERUNIVERSITY.COM", "CONTACT US", "LOGIN PORTAL"}
	case viewReply:
		return []string{replyMessage}
	default:
		return nil
	}
}

func (f *FakePage) body() string {
	switch f.view {
	case viewHome:
		return "WEBDRIVERUNIVERSITY.COM\nCONTACT US\nContact Us Form\nLOGIN PORTAL\nLogin Portal"
	case viewContact:
		return "CONTACT US\nSUBMIT"
	case viewReply:
		return replyMessage
	case viewError:
		return "\n\n\n" + strings.Join(f.errorLines, "\n") + "\n"
	case viewLogin:
		return "Login"
	default:
		return ""
	}
}

func (f *FakePage) InnerText(ctx context.Context, selector string) (string, error) {
	texts, err := f.InnerTexts(ctx, selector)
	if err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return texts[0], nil
}

func (f *FakePage) InnerTexts(ctx context.Context, selector string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}

	switch selector {
	case "body", "//body":
		return []string{strings.TrimSpace(f.body())}, nil
	case "h1", "//h1":
		return f.headings(), nil
	case "//h1 | //body":
		// Document order: body encloses every heading.
		return append([]string{strings.TrimSpace(f.body())}, f.headings()...), nil
	case replySelector:
		if f.view == viewReply {
			return []string{replyMessage}, nil
		}
	}
	return nil, nil
}

func (f *FakePage) TextContent(ctx context.Context, selector string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return "", false, err
	}
	if selector == "body" && f.view != viewBlank {
		return f.body(), true, nil
	}
	return "", false, nil
}

func (f *FakePage) SwitchToNewTab(ctx context.Context, viewport schemas.Viewport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}
	if len(f.pendingTabs) == 0 {
		return ErrNoNewTab
	}
	next := f.pendingTabs[0]
	f.pendingTabs = f.pendingTabs[1:]

	url := f.urlFor(contactPath)
	if next == viewLogin {
		url = f.urlFor(f.loginPath)
	}
	f.show(next, url)
	f.viewports = append(f.viewports, viewport)
	return nil
}

func (f *FakePage) WaitForDialog(ctx context.Context) (schemas.Dialog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return schemas.Dialog{}, err
	}
	if len(f.dialogs) == 0 {
		return schemas.Dialog{}, ErrNoDialog
	}
	d := f.dialogs[0]
	f.dialogs = f.dialogs[1:]
	return d, nil
}

// Wait records the requested pause without sleeping.
func (f *FakePage) Wait(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}
	f.waits = append(f.waits, d)
	return nil
}

func (f *FakePage) URL(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return "", err
	}
	return f.url, nil
}

func (f *FakePage) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Field returns what was last typed into the input with the given placeholder.
func (f *FakePage) Field(placeholder string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[placeholder]
}

func (f *FakePage) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.waits...)
}

func (f *FakePage) Viewports() []schemas.Viewport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]schemas.Viewport(nil), f.viewports...)
}

func (f *FakePage) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FakePageFactory hands out FakePages and remembers each one.
type FakePageFactory struct {
	BaseURL   string
	LoginPath string

	mu    sync.Mutex
	pages []*FakePage
}

var _ schemas.PageFactory = (*FakePageFactory)(nil)

func (ff *FakePageFactory) NewPage(ctx context.Context) (schemas.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := NewFakePage(ff.BaseURL, ff.LoginPath)
	ff.mu.Lock()
	ff.pages = append(ff.pages, p)
	ff.mu.Unlock()
	return p, nil
}

func (ff *FakePageFactory) Pages() []*FakePage {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return append([]*FakePage(nil), ff.pages...)
}
