package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobradar/jobradar/pkg/client"
)

// jobOutput represents the filtered output for a job
type jobOutput struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Platform string `json:"platform"`
	Location string `json:"location,omitempty"`
	Remote   bool   `json:"remote"`
	URL      string `json:"url"`
}

// jobListOutput represents the filtered output for a list of jobs
type jobListOutput struct {
	Jobs  []jobOutput `json:"jobs"`
	Total int         `json:"total"`
}

func init() {
	jobsCmd.AddCommand(listJobsCmd)

	listJobsCmd.Flags().StringP("platform", "p", "", "Filter jobs by job board")
	listJobsCmd.Flags().String("seniority", "", "Filter jobs by seniority level")
	listJobsCmd.Flags().Bool("remote", false, "Only remote jobs")
	listJobsCmd.Flags().IntP("limit", "l", 0, "Limit the number of jobs returned")
	listJobsCmd.Flags().Int("page", 0, "Page number")
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse aggregated job listings",
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List aggregated jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		params := &client.JobListParams{}
		params.Platform, _ = cmd.Flags().GetString("platform")
		params.Seniority, _ = cmd.Flags().GetString("seniority")
		params.Limit, _ = cmd.Flags().GetInt("limit")
		params.Page, _ = cmd.Flags().GetInt("page")
		if cmd.Flags().Changed("remote") {
			remote, _ := cmd.Flags().GetBool("remote")
			params.Remote = &remote
		}

		response, err := apiClient.ListJobs(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error fetching jobs: %w", err)
		}

		output := jobListOutput{
			Jobs:  make([]jobOutput, len(response.Rows)),
			Total: response.Total,
		}
		for i, job := range response.Rows {
			output.Jobs[i] = jobOutput{
				Title:    job.Title,
				Company:  job.CompanySlug,
				Platform: job.Platform,
				Location: job.Location,
				Remote:   job.Remote,
				URL:      job.ExternalURL,
			}
		}
		return printJSON(output)
	},
}

// GetJobsCmd returns the jobs command
func GetJobsCmd() *cobra.Command {
	return jobsCmd
}
