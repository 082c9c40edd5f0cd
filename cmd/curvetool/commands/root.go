// Package commands wires the curvetool subcommands.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/curvelib/cmd/curvetool/internal/config"
	"github.com/meenmo/curvelib/cmd/curvetool/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "curvetool",
	Short: "Build, price against and chart zero rate discount curves",
	Long: `curvetool builds discount factor curves from zero rate quote sets,
either from a JSON file or from the Postgres quote store, and prints,
prices against or charts the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg != nil {
			return nil
		}

		// Optional .env for local DSNs; viper env overrides pick it up.
		_ = godotenv.Load()

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}

		cfg = loaded
		logger = logging.NewLogger(cfg.Logging)
		return nil
	},
}

// Execute runs the root command and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(versionCmd)
}
