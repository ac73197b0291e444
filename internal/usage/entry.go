// Package usage reads token-usage records from the session logs that local
// coding agents write to disk and normalizes them for cost reporting.
package usage

import "time"

// Source names for the built-in adapters.
const (
	SourceClaude = "claude"
	SourceCodex  = "codex"
)

// Record is one billable usage event, normalized across tools.
type Record struct {
	Timestamp           time.Time
	Model               string
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64

	// CostUSD is the cost the log itself reported, 0 when the log carries
	// none. Whether it is trusted or recomputed is the report layer's call.
	CostUSD float64

	MessageID   string
	RequestID   string
	SessionID   string
	ProjectPath string
	Source      string
}

// TotalTokens returns input + output + cache tokens.
func (r Record) TotalTokens() int64 {
	return r.InputTokens + r.OutputTokens + r.CacheCreationTokens + r.CacheReadTokens
}

// DedupKey identifies a record across overlapping log files. Records without
// both IDs return the empty key and are never deduplicated.
func (r Record) DedupKey() string {
	if r.MessageID == "" && r.RequestID == "" {
		return ""
	}
	return r.MessageID + ":" + r.RequestID
}
