package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Scrape engine and catalog status",
	Long: `Show the scrape engine state and catalog content counts.

Examples:
  catarr status
  catarr status --json
  catarr status --server http://nas:5000`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatus(serverURL, status)
	return nil
}

func printStatus(server string, s *StatusResponse) {
	fmt.Printf("Server: %s\n\n", server)

	fmt.Println("Scraper")
	fmt.Printf("  State:      %s\n", s.Scraper.State)
	if s.Scraper.LastStarted != nil {
		fmt.Printf("  Started:    %s\n", *s.Scraper.LastStarted)
	}
	if s.Scraper.LastFinished != nil {
		fmt.Printf("  Finished:   %s\n", *s.Scraper.LastFinished)
	}
	fmt.Printf("  Resolved:   %d\n", s.Scraper.Resolved)
	fmt.Printf("  Skipped:    %d\n", s.Scraper.Skipped)
	fmt.Printf("  Failed:     %d\n", s.Scraper.Failed)
	fmt.Println()

	fmt.Println("Catalog")
	fmt.Printf("  Movies:     %d\n", s.Catalog.Movies)
	fmt.Printf("  Shows:      %d\n", s.Catalog.Shows)
}
