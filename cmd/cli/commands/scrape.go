package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	scrapeCmd.AddCommand(runScrapeCmd)
	scrapeCmd.AddCommand(statsCmd)

	runScrapeCmd.Flags().StringP("platform", "p", "", "Restrict the run to one job board")
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Trigger and inspect aggregation runs",
}

var runScrapeCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the aggregation pipeline and print the run summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		platform, _ := cmd.Flags().GetString("platform")

		var (
			summary interface{}
			err     error
		)
		if platform != "" {
			summary, err = apiClient.RunPlatform(context.Background(), platform)
		} else {
			summary, err = apiClient.RunAll(context.Background())
		}
		if err != nil {
			return fmt.Errorf("error running scrape: %w", err)
		}
		return printJSON(summary)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-board pair health and job counts",
	RunE: func(_ *cobra.Command, _ []string) error {
		stats, err := apiClient.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("error fetching stats: %w", err)
		}
		return printJSON(stats)
	},
}

// GetScrapeCmd returns the scrape command
func GetScrapeCmd() *cobra.Command {
	return scrapeCmd
}
