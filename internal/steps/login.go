package steps

import (
	"context"

	"github.com/stretchr/testify/assert"
)

func typeUsername(ctx context.Context, username string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.LoginPage().FillUsername(ctx, username)
}

func typePassword(ctx context.Context, password string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.LoginPage().FillPassword(ctx, password)
}

func clickOnLoginButton(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.LoginPage().ClickOnLoginButton(ctx)
}

// shouldSeeAlert reads the next dialog the page raised; the page accepts it on its own.
func shouldSeeAlert(ctx context.Context, expected string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	text, err := f.Pages.LoginPage().AlertText(ctx)
	if err != nil {
		return err
	}
	return check(func(t assert.TestingT) bool {
		return assert.Equal(t, expected, text)
	})
}
