package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wdu-e2e/internal/config"
	"github.com/xkilldash9x/wdu-e2e/internal/observability"
)

const (
	envPrefix      = "WDU"
	defaultEnvFile = "env/.env"
)

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var (
		cfgFile string
		envFile string
	)

	rootCmd := &cobra.Command{
		Use:           "wdu-e2e",
		Short:         "Behaviour driven browser tests for webdriveruniversity.com.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 1. Environment from the env file, then config file and flags.
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			if err := initializeConfig(v, cfgFile); err != nil {
				basicLogger, _ := zap.NewDevelopment()
				basicLogger.Error("Failed to initialize configuration", zap.Error(err))
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// 2. Unmarshal, validate and store.
			cfg, err := config.Load(v)
			if err != nil {
				if cfg != nil {
					observability.InitializeLogger(cfg.Logger)
				} else {
					observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "wdu-e2e"})
				}
				return err
			}

			// 3. Start logging.
			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting wdu-e2e", zap.String("version", Version))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "env file exported before the config is read")

	rootCmd.AddCommand(newRunCmd(v))
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command line. It accepts a context from main.go for graceful shutdown.
func Execute(ctx context.Context) error {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// An interrupted run is not worth reporting again.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

// initializeConfig reads the config file and environment into v.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	config.BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and environment apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
