// Package commands contains the jobradar CLI subcommands
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobradar/jobradar/pkg/client"
)

// flag and environment variable names
const (
	flagServerAddress = "server-address"
	envServerAddress  = "JOBRADAR_SERVER_ADDRESS"
)

var (
	// apiClient is the shared API client instance
	apiClient *client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "jobradar CLI - a command line interface for the jobradar API",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}

		opts := client.DefaultOptions()
		opts.BaseURL = serverAddress
		opts.Timeout = 5 * time.Minute // full runs can take a while

		var err error
		apiClient, err = client.New(opts)
		return err
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s",
		client.DefaultBaseURL, "Address of the jobradar API server (env: JOBRADAR_SERVER_ADDRESS)")

	RootCmd.AddCommand(GetScrapeCmd())
	RootCmd.AddCommand(GetJobsCmd())
	RootCmd.AddCommand(GetScheduleCmd())
	RootCmd.AddCommand(GetPairsCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// printJSON pretty-prints a response payload
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
