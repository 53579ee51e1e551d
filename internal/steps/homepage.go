package steps

import (
	"context"

	"go.uber.org/zap"
)

func navigateToHomepage(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	url := f.Config.Site.BaseURL
	if err := f.Pages.HomePage().Navigate(ctx, url); err != nil {
		f.World.Logger().Error("An error has occurred", zap.String("url", url), zap.Error(err))
		return err
	}
	f.World.SetURL(url)
	return nil
}

func navigateToLoginPage(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	if err := f.Pages.LoginPage().NavigateToLoginPage(ctx); err != nil {
		return err
	}
	f.World.SetURL(f.Config.LoginURL())
	return nil
}

func clickOnContactUsButton(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.HomePage().ClickOnContactUsButton(ctx)
}

func clickOnLoginPortalButton(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.HomePage().ClickOnLoginPortalButton(ctx)
}
