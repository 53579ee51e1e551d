//go:build integration

package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
	"github.com/xkilldash9x/wdu-e2e/internal/browser"
	"github.com/xkilldash9x/wdu-e2e/internal/config"
)

const testTimeout = 20 * time.Second

var (
	testLogger  *zap.Logger
	testManager *browser.Manager
)

// TestMain starts one browser shared by every test in the package.
func TestMain(m *testing.M) {
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize zap logger for tests: " + err.Error())
	}

	cfg := config.BrowserConfig{
		Headless:          true,
		Width:             1280,
		Height:            800,
		NavigationTimeout: 15 * time.Second,
		DialogTimeout:     5 * time.Second,
		NewTabTimeout:     5 * time.Second,
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	testManager, err = browser.NewManager(initCtx, testLogger, cfg)
	cancel()
	if err != nil {
		testLogger.Fatal("Failed to initialize browser manager for test suite", zap.Error(err))
	}

	code := m.Run()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	if err := testManager.Shutdown(shutdownCtx); err != nil {
		testLogger.Error("Error during test manager shutdown", zap.Error(err))
	}
	cancelShutdown()

	os.Exit(code)
}

func newTestPage(t *testing.T) schemas.Page {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	page, err := testManager.NewPage(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		_ = page.Close(closeCtx)
	})
	return page
}

func createStaticTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

const contactForm = `<!DOCTYPE html><html><body>
<h2 name="contactme">CONTACT US</h2>
<form id="contact_form" action="/reply" method="GET">
  <input type="text" name="first_name" placeholder="First Name">
  <input type="text" name="last_name" placeholder="Last Name">
  <input type="text" name="email" placeholder="Email Address">
  <textarea name="message" placeholder="Comments"></textarea>
  <input type="submit" value="SUBMIT">
</form>
</body></html>`

const contactReply = `<!DOCTYPE html><html><body><div id="contact_reply"><h1>Thank You for your Message!</h1></div></body></html>`

func TestPage(t *testing.T) {
	t.Run("NavigateAndReadText", func(t *testing.T) {
		t.Parallel()
		page := newTestPage(t)
		server := createStaticTestServer(t, map[string]string{
			"/": `<html><body><h1>Hello</h1><h1>World</h1><p id="empty"></p></body></html>`,
		})

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, page.Navigate(ctx, server.URL+"/"))

		text, err := page.InnerText(ctx, "h1")
		require.NoError(t, err)
		assert.Equal(t, "Hello", text)

		texts, err := page.InnerTexts(ctx, "//h1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello", "World"}, texts)

		_, ok, err := page.TextContent(ctx, "#missing")
		require.NoError(t, err)
		assert.False(t, ok)

		loc, err := page.URL(ctx)
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/", loc)
	})

	t.Run("FillAndSubmitForm", func(t *testing.T) {
		t.Parallel()
		page := newTestPage(t)
		server := createStaticTestServer(t, map[string]string{"/": contactForm, "/reply": contactReply})

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, page.Navigate(ctx, server.URL+"/"))
		require.NoError(t, page.FillByPlaceholder(ctx, "First Name", "Joe"))
		require.NoError(t, page.FillByPlaceholder(ctx, "Last Name", "Blogs"))
		require.NoError(t, page.FillByPlaceholder(ctx, "Email Address", "joe_blogs123@mail.com"))
		require.NoError(t, page.FillByPlaceholder(ctx, "Comments", "Hello world!"))
		require.NoError(t, page.WaitForSelector(ctx, `input[value="SUBMIT"]`))
		require.NoError(t, page.Click(ctx, `input[value="SUBMIT"]`))

		require.NoError(t, page.WaitForSelector(ctx, "#contact_reply h1"))
		text, err := page.InnerText(ctx, "#contact_reply h1")
		require.NoError(t, err)
		assert.Equal(t, "Thank You for your Message!", text)
	})

	t.Run("ClickByRoleOpensNewTab", func(t *testing.T) {
		t.Parallel()
		page := newTestPage(t)
		server := createStaticTestServer(t, map[string]string{
			"/":        `<html><body><a href="/contact" target="_blank"><div><h1>CONTACT US</h1></div><p>Contact Us Form</p></a></body></html>`,
			"/contact": contactForm,
		})

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, page.Navigate(ctx, server.URL+"/"))
		require.NoError(t, page.ClickByRole(ctx, schemas.RoleLink, "Contact Us Form"))
		require.NoError(t, page.SwitchToNewTab(ctx, schemas.Viewport{Width: 1280, Height: 800}))

		require.NoError(t, page.WaitForSelector(ctx, `//*[@placeholder="First Name"]`))
		loc, err := page.URL(ctx)
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/contact", loc)
	})

	t.Run("NoNewTab", func(t *testing.T) {
		t.Parallel()
		page := newTestPage(t)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err := page.SwitchToNewTab(ctx, schemas.Viewport{Width: 800, Height: 600})
		assert.ErrorIs(t, err, browser.ErrNoNewTab)
	})

	t.Run("AlertIsAcceptedAndReported", func(t *testing.T) {
		t.Parallel()
		page := newTestPage(t)
		server := createStaticTestServer(t, map[string]string{
			"/": `<html><body><button onclick="alert('validation succeeded')">Login</button></body></html>`,
		})

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, page.Navigate(ctx, server.URL+"/"))
		require.NoError(t, page.ClickByRole(ctx, schemas.RoleButton, "Login"))

		dialog, err := page.WaitForDialog(ctx)
		require.NoError(t, err)
		assert.Equal(t, "validation succeeded", dialog.Message)
		assert.Equal(t, schemas.DialogType("alert"), dialog.Type)
		assert.True(t, dialog.Accepted)

		// The page must be usable again once the alert is dismissed.
		_, err = page.InnerText(ctx, "button")
		assert.NoError(t, err)
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		page, err := testManager.NewPage(ctx)
		require.NoError(t, err)
		assert.NoError(t, page.Close(ctx))
		assert.NoError(t, page.Close(ctx))
	})
}
