package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigsister-app/bigsister/internal/core/resources"
)

var (
	resourceCountry   string
	resourceType      string
	resourceAnonymity string
	resourceAudio     bool
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List support helplines and the audio library",
	Long: `Print the built-in support directory. Works offline; no account
needed.`,
	RunE: runResources,
}

func init() {
	resourcesCmd.Flags().StringVar(&resourceCountry, "country", "all", "Filter by country (USA, Canada, UK)")
	resourcesCmd.Flags().StringVar(&resourceType, "type", "all", "Filter by type (Crisis, General, ...)")
	resourcesCmd.Flags().StringVar(&resourceAnonymity, "anonymity", "all", "Filter by anonymity (Anonymous, Confidential)")
	resourcesCmd.Flags().BoolVar(&resourceAudio, "audio", false, "List the Mind Matters audio library instead")
	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	if resourceAudio {
		for _, track := range resources.AudioLibrary() {
			fmt.Printf("%s\n  %s\n  (%s)\n\n", track.Title, track.Description, track.File)
		}
		return nil
	}

	matched := resources.Filter(resourceCountry, resourceType, resourceAnonymity)
	if len(matched) == 0 {
		fmt.Println("No resources match those filters.")
		return nil
	}
	for _, h := range matched {
		fmt.Printf("%s [%s · %s · %s]\n", h.Name, h.Country, h.Type, h.Anonymity)
		fmt.Printf("  %s\n", h.Description)
		if h.Contact.Call != "" {
			fmt.Printf("  Call: %s\n", h.Contact.Call)
		}
		if h.Contact.Text != "" {
			fmt.Printf("  Text: %s\n", h.Contact.Text)
		}
		if h.Contact.Chat != "" {
			fmt.Printf("  Chat: %s\n", h.Contact.Chat)
		}
		fmt.Println()
	}
	return nil
}
