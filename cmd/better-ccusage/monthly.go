package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/internal/report"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Usage and cost per calendar month",
	Args:  cobra.NoArgs,
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	records, err := env.loadRecords(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, report.Monthly(records, env.tz))
}
