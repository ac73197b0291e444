package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/internal/version"
)

var rootFlags struct {
	configFile  string
	since       string
	until       string
	timezone    string
	mode        string
	pricingFile string
	logLevel    string
}

var rootCmd = &cobra.Command{
	Use:   "better-ccusage",
	Short: "Token usage and cost reports for local coding agents",
	Long: `Better-ccusage reads the session logs Claude Code and Codex CLI keep on
disk, prices every request against a bundled LiteLLM-format dataset, and
prints usage reports as JSON.

No network access is needed: pricing ships inside the binary and can be
replaced with --pricing-file for newer rates.`,
	Version: version.Version,
	// A bare invocation prints the daily report.
	RunE:         runDaily,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.configFile, "config", "c", "", "config file (default ~/.config/better-ccusage/config.yaml)")
	pf.StringVarP(&rootFlags.since, "since", "s", "", "keep records from this date, inclusive (YYYY-MM-DD or YYYYMMDD)")
	pf.StringVarP(&rootFlags.until, "until", "u", "", "keep records up to this date, inclusive (YYYY-MM-DD or YYYYMMDD)")
	pf.StringVarP(&rootFlags.timezone, "timezone", "z", "", "IANA timezone for date bucketing (default: system local)")
	pf.StringVarP(&rootFlags.mode, "mode", "m", "", "cost mode: auto, calculate, or display")
	pf.StringVar(&rootFlags.pricingFile, "pricing-file", "", "LiteLLM-format JSON file to use instead of the embedded pricing data")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, or error")
}
