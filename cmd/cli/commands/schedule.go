package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	scheduleCmd.AddCommand(getScheduleCmd)
	scheduleCmd.AddCommand(setScheduleCmd)
	scheduleCmd.AddCommand(suggestScheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the recurring scrape schedule",
}

var getScheduleCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active cron schedule and its next fire time",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := apiClient.GetSchedule(context.Background())
		if err != nil {
			return fmt.Errorf("error fetching schedule: %w", err)
		}
		return printJSON(cfg)
	},
}

var setScheduleCmd = &cobra.Command{
	Use:   "set <expression>",
	Short: "Replace the recurring schedule with a new cron expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := apiClient.UpdateSchedule(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("error updating schedule: %w", err)
		}
		return printJSON(cfg)
	},
}

var suggestScheduleCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List common schedule expressions",
	RunE: func(_ *cobra.Command, _ []string) error {
		suggestions, err := apiClient.ScheduleSuggestions(context.Background())
		if err != nil {
			return fmt.Errorf("error fetching suggestions: %w", err)
		}
		return printJSON(suggestions)
	},
}

// GetScheduleCmd returns the schedule command
func GetScheduleCmd() *cobra.Command {
	return scheduleCmd
}
