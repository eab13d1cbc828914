package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ofx2csv/config"
	"github.com/rustyeddy/ofx2csv/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ofx2csv",
	Short: "Convert OFX/QFX statement exports to CSV",
	Long: `ofx2csv converts a single-account OFX or QFX export into two CSV files:
one with the account's transactions and one with its positions, led by a
synthesized CASH row holding the available cash balance.

Complete documentation is available at https://github.com/rustyeddy/ofx2csv`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger = logging.Default()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console or json)")
}

// loadConfig resolves the effective configuration and builds the logger.
// Flags win over the file and environment.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if logFormat != "" {
		c.Log.Format = logFormat
	}

	l, err := logging.New(cmd.OutOrStdout(), c.Log.Level, c.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	cfg = c
	logger = l
	return nil
}
