package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/internal/config"
	"github.com/xkilldash9x/wdu-e2e/internal/observability"
	"github.com/xkilldash9x/wdu-e2e/internal/suite"
)

// ErrTestsFailed is returned when the run finished with failing scenarios.
var ErrTestsFailed = errors.New("automation tests failed")

const failureMessage = "Some automation test(s) have failed! - Please review."

func newRunCmd(v *viper.Viper) *cobra.Command {
	var tags string

	runCmd := &cobra.Command{
		Use:   "run [profile]",
		Short: "Run the feature files, optionally narrowed to a profile",
		Long: `Runs every scenario not tagged @ignore, or only those selected by a profile
(smoke, regression, login, contact-us) and any extra tag expression given with --tags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := config.Get()

			profile := ""
			if len(args) == 1 {
				profile = args[0]
			}
			expr, err := suite.ResolveTags(profile, cfg.Profiles)
			if err != nil {
				return err
			}
			expr = suite.CombineTags(expr, cfg.Suite.Tags, tags)

			logger.Info("Starting test run",
				zap.String("profile", profile),
				zap.String("tags", expr),
				zap.Int("retry", cfg.Suite.Retry),
				zap.Bool("headless", cfg.Browser.Headless),
			)

			components, err := newComponents(ctx, cfg, logger,
				suite.WithOutput(cmd.OutOrStdout()),
				suite.WithParameters(map[string]string{"profile": profile}),
			)
			if err != nil {
				return err
			}
			defer components.Shutdown(logger)

			if err := components.Runner.Run(ctx, expr); err != nil {
				if errors.Is(err, suite.ErrSuiteFailed) {
					logger.Error("Test run failed", zap.Error(err))
					fmt.Fprintln(cmd.ErrOrStderr(), failureMessage)
					return fmt.Errorf("%w (%v)", ErrTestsFailed, err)
				}
				return err
			}
			return nil
		},
	}

	runCmd.Flags().StringVar(&tags, "tags", "", "extra godog tag expression ANDed with the profile, e.g. \"~@slow\"")
	runCmd.Flags().Int("retry", 0, "rerun the suite up to this many times while it fails")
	runCmd.Flags().Bool("headless", true, "run the browser without a window")
	_ = v.BindPFlag("suite.retry", runCmd.Flags().Lookup("retry"))
	_ = v.BindPFlag("browser.headless", runCmd.Flags().Lookup("headless"))

	return runCmd
}
