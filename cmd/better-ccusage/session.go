package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/internal/report"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Usage and cost per tool session",
	Long: `Group usage by session, most recently active first. Each row carries the
project the session ran in and which tool produced it.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, _ []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	records, err := env.loadRecords(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, report.Sessions(records, env.tz))
}
