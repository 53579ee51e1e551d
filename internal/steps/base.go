package steps

import (
	"context"
	"time"
)

func switchToNewTab(ctx context.Context) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.Base().SwitchToNewTab(ctx)
}

func waitForSeconds(ctx context.Context, seconds int) error {
	f, err := FixturesFrom(ctx)
	if err != nil {
		return err
	}
	return f.Pages.Page().Wait(ctx, time.Duration(seconds)*time.Second)
}
