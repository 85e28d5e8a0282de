package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bigsister-app/bigsister/internal/core/api"
	"github.com/bigsister-app/bigsister/internal/core/models"
)

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "Show the community mood map as counts",
	Long: `Fetch the anonymized community mood points and print how many
entries carry each mood.

Credentials come from the BIGSISTER_USERNAME and BIGSISTER_PIN
environment variables.`,
	RunE: runMoods,
}

func init() {
	rootCmd.AddCommand(moodsCmd)
}

// envClient builds a signed-in client from environment credentials.
func envClient(ctx context.Context, serverURL string) (*api.Client, error) {
	username := os.Getenv("BIGSISTER_USERNAME")
	pin := os.Getenv("BIGSISTER_PIN")
	if username == "" || pin == "" {
		return nil, fmt.Errorf("set BIGSISTER_USERNAME and BIGSISTER_PIN")
	}
	client, err := api.New(serverURL)
	if err != nil {
		return nil, err
	}
	if _, err := client.Login(ctx, username, pin); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return client, nil
}

func runMoods(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := envClient(ctx, cfg.ServerURL)
	if err != nil {
		return err
	}

	points, err := client.Heatmap(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch mood map: %w", err)
	}

	counts := map[models.Mood]int{}
	for _, p := range points {
		counts[p.Mood]++
	}

	fmt.Printf("%d located journal entries\n\n", len(points))
	for _, mood := range models.Moods {
		n := counts[mood]
		fmt.Printf("%-8s %4d %s\n", mood, n, strings.Repeat("▇", n))
	}
	return nil
}
