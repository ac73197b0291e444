package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/internal/report"
)

var weeklyFlags struct {
	startOfWeek string
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Usage and cost per week",
	Long: `Group usage by week. Each row is keyed by the date of the week's first
day, which defaults to Sunday.

Examples:
  better-ccusage weekly
  better-ccusage weekly --start-of-week monday`,
	Args: cobra.NoArgs,
	RunE: runWeekly,
}

func init() {
	rootCmd.AddCommand(weeklyCmd)

	weeklyCmd.Flags().StringVar(&weeklyFlags.startOfWeek, "start-of-week", "", "weekday that opens a week (default sunday)")
}

func runWeekly(cmd *cobra.Command, _ []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	day := env.cfg.StartOfWeek
	if cmd.Flags().Changed("start-of-week") {
		day = weeklyFlags.startOfWeek
	}
	start, err := report.ParseStartOfWeek(day)
	if err != nil {
		return err
	}

	records, err := env.loadRecords(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, report.Weekly(records, env.tz, start))
}
