package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigsister-app/bigsister/internal/core/config"
)

var (
	serverURL   string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bigsister",
	Short: "An empathetic companion in your terminal",
	Long: `bigsister - chat, journal, and find support, all from your terminal

A private client for the BigSister companion service: conversation
sessions with a gentle typewriter reveal, a mood journal with an
optional location pin, and a built-in directory of support resources.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Service URL (overrides config)")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	return cfg, nil
}
