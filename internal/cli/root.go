// Package cli provides the studio command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/studio/internal/config"
	"github.com/jmylchreest/studio/internal/version"
)

var (
	globalVerbose  bool
	globalLogLevel string
	globalEnvFile  string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "studio",
		Short: "Design studio website and portfolio service",
		Long: `studio serves the studio website: landing, about, services and briefing
pages, the portfolio backed by a Coda table, and a small admin panel.

Portfolio project pages are themed from their thumbnail: the dominant and
most vibrant colours are sampled and turned into a contrast-safe palette.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides STUDIO_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&globalEnvFile, "env-file", config.DefaultEnvFile, "dotenv file read before the environment")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(adminCmd)
}

// newLogger builds the root logger. --verbose wins over --log-level, which wins
// over configured.
func newLogger(configured string) hclog.Logger {
	level := hclog.LevelFromString(configured)
	if globalLogLevel != "" {
		level = hclog.LevelFromString(globalLogLevel)
	}
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if globalVerbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "studio",
		Output: os.Stderr,
		Level:  level,
	})
}

// loadConfig reads the environment and the --env-file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalEnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
