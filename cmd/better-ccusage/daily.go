package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/internal/report"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Usage and cost per calendar day",
	Long: `Group usage by calendar day in the report timezone.

Examples:
  # Everything on record
  better-ccusage daily

  # One billing window, bucketed in Tokyo time
  better-ccusage daily --since 2025-08-01 --until 2025-08-31 --timezone Asia/Tokyo`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	records, err := env.loadRecords(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, report.Daily(records, env.tz))
}
