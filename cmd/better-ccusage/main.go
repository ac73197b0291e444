// Better-ccusage reports token usage and USD costs from the session logs
// that local coding agents (Claude Code, Codex CLI) write to disk.
//
// It works fully offline: pricing comes from an embedded LiteLLM-format
// dataset, or from a local file via --pricing-file.
//
// Usage:
//
//	# Daily cost report (the default command)
//	better-ccusage
//	better-ccusage daily --since 2025-08-01 --until 2025-08-20
//
//	# Weekly and monthly rollups
//	better-ccusage weekly --start-of-week monday
//	better-ccusage monthly --timezone Asia/Tokyo
//
//	# Per-session breakdown
//	better-ccusage session
//
//	# Inspect the pricing entry a model identifier resolves to
//	better-ccusage pricing claude-sonnet-4-5
//
// Reports print as JSON on stdout; diagnostics go to stderr.
package main

func main() {
	Execute()
}
