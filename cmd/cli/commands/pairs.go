package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobradar/jobradar/internal/db/models"
)

// pairOutput represents the filtered output for a scrape pair
type pairOutput struct {
	ID      uint   `json:"id"`
	Board   string `json:"board"`
	Company string `json:"company"`
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

func init() {
	pairsCmd.AddCommand(listPairsCmd)
	pairsCmd.AddCommand(addPairCmd)
	pairsCmd.AddCommand(togglePairCmd)

	addPairCmd.Flags().Uint("board", 0, "Job board ID")
	addPairCmd.Flags().Uint("company", 0, "Company ID")
	addPairCmd.Flags().String("url", "", "Override scraper URL for this pair")
	_ = addPairCmd.MarkFlagRequired("board")
	_ = addPairCmd.MarkFlagRequired("company")
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Manage job board/company scrape pairs",
}

var listPairsCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured scrape pairs",
	RunE: func(_ *cobra.Command, _ []string) error {
		response, err := apiClient.ListPairs(context.Background())
		if err != nil {
			return fmt.Errorf("error fetching pairs: %w", err)
		}

		output := make([]pairOutput, len(response.Rows))
		for i, pair := range response.Rows {
			output[i] = pairOutput{
				ID:      pair.ID,
				Board:   pair.JobBoard.Slug,
				Company: pair.Company.Slug,
				Enabled: pair.Enabled,
				Status:  pair.ScrapingStatus.String(),
				Error:   pair.ErrorMessage,
			}
		}
		return printJSON(output)
	},
}

var addPairCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a scrape pair",
	RunE: func(cmd *cobra.Command, _ []string) error {
		boardID, _ := cmd.Flags().GetUint("board")
		companyID, _ := cmd.Flags().GetUint("company")
		scraperURL, _ := cmd.Flags().GetString("url")

		pair, err := apiClient.CreatePair(context.Background(), &models.JobBoardCompany{
			JobBoardID: boardID,
			CompanyID:  companyID,
			ScraperURL: scraperURL,
			Enabled:    true,
		})
		if err != nil {
			return fmt.Errorf("error creating pair: %w", err)
		}
		return printJSON(pair)
	},
}

var togglePairCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a pair's enabled flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var id uint
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid pair ID %q", args[0])
		}
		if err := apiClient.TogglePair(context.Background(), id); err != nil {
			return fmt.Errorf("error toggling pair: %w", err)
		}
		fmt.Println("toggled")
		return nil
	},
}

// GetPairsCmd returns the pairs command
func GetPairsCmd() *cobra.Command {
	return pairsCmd
}
