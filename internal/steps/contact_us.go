package steps

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	defaultFirstName    = "Joe"
	defaultLastName     = "Blogs"
	defaultEmailAddress = "joe_blogs123@mail.com"
	defaultComment      = "Hello world!"

	successMessage = "Thank You for your Message!"
)

var errorMessagePattern = regexp.MustCompile(`Error: (all fields are required|Invalid email address)`)

func fillFirstName(ctx context.Context, f *Fixtures, name string) error {
	if err := f.Pages.ContactUsPage().FillFirstName(ctx, name); err != nil {
		return err
	}
	f.World.SetFirstName(name)
	return nil
}

func fillLastName(ctx context.Context, f *Fixtures, name string) error {
	if err := f.Pages.ContactUsPage().FillLastName(ctx, name); err != nil {
		return err
	}
	f.World.SetLastName(name)
	return nil
}

func fillEmailAddress(ctx context.Context, f *Fixtures, email string) error {
	if err := f.Pages.ContactUsPage().FillEmailAddress(ctx, email); err != nil {
		return err
	}
	f.World.SetEmailAddress(email)
	return nil
}

func typeFirstName(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	if url, ok := f.World.URL(); ok {
		f.World.Logger().Info("Base URL stored in the scenario", zap.String("url", url))
	}
	return fillFirstName(ctx, f, defaultFirstName)
}

func typeLastName(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillLastName(ctx, f, defaultLastName)
}

func enterEmailAddress(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillEmailAddress(ctx, f, defaultEmailAddress)
}

func typeComment(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.ContactUsPage().FillComment(ctx, defaultComment)
}

func clickOnSubmitButton(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.ContactUsPage().ClickOnSubmitButton(ctx)
}

func shouldSeeSuccessfulSubmission(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	msg, err := f.Pages.ContactUsPage().SuccessfulMessage(ctx)
	if err != nil {
		return err
	}
	return check(func(t assert.TestingT) bool {
		return assert.Equal(t, successMessage, msg)
	})
}

func shouldSeeUnsuccessfulSubmission(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	msg, err := f.Pages.ContactUsPage().ErrorMessage(ctx)
	if err != nil {
		return err
	}
	return check(func(t assert.TestingT) bool {
		return assert.Regexp(t, errorMessagePattern, msg)
	})
}

func typeSpecificFirstName(ctx context.Context, name string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillFirstName(ctx, f, name)
}

func typeSpecificLastName(ctx context.Context, name string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillLastName(ctx, f, name)
}

func enterSpecificEmailAddress(ctx context.Context, email string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillEmailAddress(ctx, f, email)
}

func typeSpecificTextAndNumber(ctx context.Context, word string, number int) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.ContactUsPage().FillComment(ctx, word+" "+strconv.Itoa(number))
}

func typeRandomFirstName(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillFirstName(ctx, f, f.Data.FirstName())
}

func typeRandomLastName(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillLastName(ctx, f, f.Data.LastName())
}

func enterRandomEmailAddress(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return fillEmailAddress(ctx, f, f.Data.Email())
}

// typeRandomComment writes a comment quoting the details typed earlier in the scenario.
func typeRandomComment(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	first, ok := f.World.FirstName()
	if !ok {
		return errors.New("no first name was entered earlier in the scenario")
	}
	last, ok := f.World.LastName()
	if !ok {
		return errors.New("no last name was entered earlier in the scenario")
	}
	email, ok := f.World.EmailAddress()
	if !ok {
		return errors.New("no email address was entered earlier in the scenario")
	}
	comment := fmt.Sprintf("Please could you contact me? \n Thanks %s %s %s", first, last, email)
	return f.Pages.ContactUsPage().FillComment(ctx, comment)
}

func typeFirstAndLastName(ctx context.Context, first, last string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	if err := fillFirstName(ctx, f, first); err != nil {
		return err
	}
	return fillLastName(ctx, f, last)
}

func typeEmailAddressAndComment(ctx context.Context, email, comment string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	if err := fillEmailAddress(ctx, f, email); err != nil {
		return err
	}
	return f.Pages.ContactUsPage().FillComment(ctx, comment)
}

func shouldSeeHeaderText(ctx context.Context, message string) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	header, err := f.Pages.ContactUsPage().HeaderText(ctx, message)
	if err != nil {
		return err
	}
	return check(func(t assert.TestingT) bool {
		return assert.Contains(t, header, message)
	})
}
