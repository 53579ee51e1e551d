package pages

import (
	"context"
	"strings"
)

const (
	firstNameField    = "First Name"
	lastNameField     = "Last Name"
	emailAddressField = "Email Address"
	commentsField     = "Comments"

	successHeading   = "#contact_reply h1"
	headerCandidates = "//h1 | //body"
)

var submitButton = Locator{Selector: `input[value="SUBMIT"]`}

// ContactUsPage is the contact us form and the pages its submission leads to.
type ContactUsPage struct {
	*Actions
}

func (c *ContactUsPage) FillFirstName(ctx context.Context, firstName string) error {
	return c.page.FillByPlaceholder(ctx, firstNameField, firstName)
}

func (c *ContactUsPage) FillLastName(ctx context.Context, lastName string) error {
	return c.page.FillByPlaceholder(ctx, lastNameField, lastName)
}

func (c *ContactUsPage) FillEmailAddress(ctx context.Context, emailAddress string) error {
	return c.page.FillByPlaceholder(ctx, emailAddressField, emailAddress)
}

func (c *ContactUsPage) FillComment(ctx context.Context, comment string) error {
	return c.page.FillByPlaceholder(ctx, commentsField, comment)
}

func (c *ContactUsPage) ClickOnSubmitButton(ctx context.Context) error {
	return c.WaitAndClick(ctx, submitButton)
}

// SuccessfulMessage returns the heading shown after a valid submission.
func (c *ContactUsPage) SuccessfulMessage(ctx context.Context) (string, error) {
	if err := c.page.WaitForSelector(ctx, successHeading); err != nil {
		return "", err
	}
	return c.page.InnerText(ctx, successHeading)
}

// ErrorMessage returns the whole body text of the validation error page, or
// "" when the body has no text.
func (c *ContactUsPage) ErrorMessage(ctx context.Context) (string, error) {
	if err := c.page.WaitForSelector(ctx, "body"); err != nil {
		return "", err
	}
	text, _, err := c.page.TextContent(ctx, "body")
	return text, err
}

// HeaderText returns the inner text of the first h1 or body element that
// contains message, or "" when none does.
func (c *ContactUsPage) HeaderText(ctx context.Context, message string) (string, error) {
	if err := c.page.WaitForSelector(ctx, headerCandidates); err != nil {
		return "", err
	}
	texts, err := c.page.InnerTexts(ctx, headerCandidates)
	if err != nil {
		return "", err
	}
	for _, text := range texts {
		if strings.Contains(text, message) {
			return text, nil
		}
	}
	return "", nil
}
