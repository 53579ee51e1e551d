package pages

import (
	"context"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

const (
	usernameField = "Username"
	passwordField = "Password"
)

var loginButton = Locator{Role: schemas.RoleButton, Name: "Login"}

// LoginPage is the login portal.
type LoginPage struct {
	*Actions
	loginURL string
}

func (l *LoginPage) NavigateToLoginPage(ctx context.Context) error {
	return l.Navigate(ctx, l.loginURL)
}

func (l *LoginPage) FillUsername(ctx context.Context, username string) error {
	return l.page.FillByPlaceholder(ctx, usernameField, username)
}

func (l *LoginPage) FillPassword(ctx context.Context, password string) error {
	return l.page.FillByPlaceholder(ctx, passwordField, password)
}

// ClickOnLoginButton submits the credentials. The portal answers with an alert.
func (l *LoginPage) ClickOnLoginButton(ctx context.Context) error {
	return l.WaitAndClick(ctx, loginButton)
}

// AlertText returns the message of the next alert the page shows.
func (l *LoginPage) AlertText(ctx context.Context) (string, error) {
	d, err := l.page.WaitForDialog(ctx)
	if err != nil {
		return "", err
	}
	return d.Message, nil
}
