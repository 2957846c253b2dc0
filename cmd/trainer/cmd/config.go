package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxtrainer/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage trainer configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  trainer config init -o trainer.yaml
  trainer config validate -f trainer.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "trainer.yaml", "output config file path (.yaml or .json)")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  trainer run -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Account: $%.2f %s\n", c.Account.Balance, c.Account.Currency)
	fmt.Fprintf(out, "  Walk: start %.2f in [%.2f, %.2f], volatility %.2f\n",
		c.Simulation.Walk.InitialPrice, c.Simulation.Walk.Low, c.Simulation.Walk.High, c.Simulation.Walk.Volatility)
	fmt.Fprintf(out, "  Ticks: %s fast, %s candles\n", c.Simulation.TickInterval, c.Simulation.CandleInterval)
	fmt.Fprintf(out, "  Journal: %s\n", c.Journal.Type)
	return nil
}
