// Package commands defines the oor CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LCLAMEDIA/openorders/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "oor",
	Short: "Open Orders Reporting - annotate purchase-order reports for the fulfillment team",
	Long: `oor ingests an open-orders spreadsheet export and produces an annotated,
colour-coded copy: per row a customer label, a status checking note and the
robot stock-on-hand quantity.

Run "oor serve" to expose the pipeline over HTTP, or "oor process" to handle
a single file from the command line.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "path to the configuration file")
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	if cfg.Server.DevMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
