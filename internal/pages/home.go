package pages

import (
	"context"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

const (
	contactUsLink   = "Contact Us Form"
	loginPortalLink = "Login Portal"
)

// HomePage is the webdriveruniversity landing page.
type HomePage struct {
	*Actions
}

// ClickOnContactUsButton opens the contact us form in a new tab.
func (h *HomePage) ClickOnContactUsButton(ctx context.Context) error {
	return h.WaitAndClickByRole(ctx, schemas.RoleLink, contactUsLink)
}

// ClickOnLoginPortalButton opens the login portal in a new tab.
func (h *HomePage) ClickOnLoginPortalButton(ctx context.Context) error {
	return h.WaitAndClickByRole(ctx, schemas.RoleLink, loginPortalLink)
}
