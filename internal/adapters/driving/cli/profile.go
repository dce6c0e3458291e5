package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

var profileJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect tenant noise profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [business-id]",
	Short: "Show the learnt noise words for a business",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

func init() {
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "output the profile as JSON")
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	p, err := profileService.Get(context.Background(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No noise profile for %s yet.\n", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profileJSON {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(title("Noise profile " + p.BusinessID))
	cmd.Println(field("Updated", p.LastUpdated.Local().Format("2006-01-02 15:04:05")))
	cmd.Println(field("Words", len(p.NoiseWords)))
	cmd.Println()
	if len(p.NoiseWords) > 0 {
		cmd.Println("  " + strings.Join(p.NoiseWords, ", "))
	}
	return nil
}
