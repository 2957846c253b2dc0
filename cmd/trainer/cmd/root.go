package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxtrainer/config"
	"github.com/rustyeddy/fxtrainer/logger"
)

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "A simulated forex trading trainer",
	Long: `Trainer runs a simulated market for practicing manual trading.

It provides:
  - A random-walk price feed with candles
  - Market orders with mandatory stop loss and take profit
  - Account metrics, margin checks and trade statistics
  - A coach that reads the trend and suggests tickets
  - A websocket feed for browser dashboards
  - A SQLite or CSV journal of closed trades and equity`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	envFiles []string
	logLevel string

	cfg *config.Config
	log *zap.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer func() {
		if log != nil {
			log.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

// setup loads the configuration and builds the logger. Precedence is
// flags, then TRAINER_* environment, then the config file, then defaults.
func setup() error {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("apply env: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err = logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    cfg.Log.Console,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}
