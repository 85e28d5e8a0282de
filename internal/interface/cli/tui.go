package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/auth"
	"github.com/bigsister-app/bigsister/internal/core/confirm"
	"github.com/bigsister-app/bigsister/internal/core/prefs"
	"github.com/bigsister-app/bigsister/internal/core/session"
	"github.com/bigsister-app/bigsister/internal/core/typewriter"
	"github.com/bigsister-app/bigsister/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive companion",
	Long:  "Launch the full-screen terminal UI: chat, journal, resources, community wall, and settings",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	prefsPath, err := prefs.DefaultPath()
	if err != nil {
		return fmt.Errorf("failed to locate preferences: %w", err)
	}
	store, err := prefs.Open(prefsPath)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer store.Close()

	client, err := api.New(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", cfg.ServerURL, err)
	}
	sessions := session.NewStore(client)
	prompt := confirm.New()
	gate := auth.NewGate(client, prompt, sessions)
	renderer := typewriter.New(cfg.TypingInterval)

	model := tui.New(tui.Deps{
		Client:   client,
		Sessions: sessions,
		Renderer: renderer,
		Gate:     gate,
		Prompt:   prompt,
		Prefs:    store,
		Cfg:      cfg,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	return nil
}
