// Package report applies cost policy to usage records and groups them into
// the daily, weekly, monthly, and per-session buckets the CLI prints.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cobra91/better-ccusage/internal/usage"
)

// CostMode decides whether a record's cost comes from the log or from the
// pricing engine.
type CostMode string

const (
	// CostModeAuto trusts a positive logged cost and computes otherwise.
	CostModeAuto CostMode = "auto"
	// CostModeCalculate always computes from token counts.
	CostModeCalculate CostMode = "calculate"
	// CostModeDisplay always uses the logged cost, even when zero.
	CostModeDisplay CostMode = "display"
)

// ParseCostMode validates a mode string from a flag or environment variable.
func ParseCostMode(s string) (CostMode, error) {
	switch CostMode(s) {
	case CostModeAuto, CostModeCalculate, CostModeDisplay:
		return CostMode(s), nil
	case "":
		return CostModeAuto, nil
	}
	return "", fmt.Errorf("invalid cost mode %q (want auto, calculate, or display)", s)
}

// ParseStartOfWeek maps a weekday name to time.Weekday. Empty means Sunday.
func ParseStartOfWeek(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("invalid start of week %q (want a weekday name)", s)
}

// Totals are the token and cost sums of one bucket or a whole report.
type Totals struct {
	InputTokens         int64   `json:"inputTokens"`
	OutputTokens        int64   `json:"outputTokens"`
	CacheCreationTokens int64   `json:"cacheCreationTokens"`
	CacheReadTokens     int64   `json:"cacheReadTokens"`
	TotalTokens         int64   `json:"totalTokens"`
	TotalCost           float64 `json:"totalCost"`
}

func (t *Totals) add(r usage.Record) {
	t.InputTokens += r.InputTokens
	t.OutputTokens += r.OutputTokens
	t.CacheCreationTokens += r.CacheCreationTokens
	t.CacheReadTokens += r.CacheReadTokens
	t.TotalTokens += r.TotalTokens()
	t.TotalCost += r.CostUSD
}

// ModelBreakdown is one model's share of a bucket, sorted into the row by
// descending cost.
type ModelBreakdown struct {
	ModelName           string  `json:"modelName"`
	InputTokens         int64   `json:"inputTokens"`
	OutputTokens        int64   `json:"outputTokens"`
	CacheCreationTokens int64   `json:"cacheCreationTokens"`
	CacheReadTokens     int64   `json:"cacheReadTokens"`
	Cost                float64 `json:"cost"`
}

// DailyRow is one calendar day in the report timezone.
type DailyRow struct {
	Date string `json:"date"`
	Totals
	ModelsUsed      []string         `json:"modelsUsed"`
	ModelBreakdowns []ModelBreakdown `json:"modelBreakdowns"`
}

// DailyReport is the JSON document the daily command emits.
type DailyReport struct {
	Daily  []DailyRow `json:"daily"`
	Totals Totals     `json:"totals"`
}

// WeeklyRow is one week, keyed by the date its configured start weekday
// falls on.
type WeeklyRow struct {
	Week string `json:"week"`
	Totals
	ModelsUsed      []string         `json:"modelsUsed"`
	ModelBreakdowns []ModelBreakdown `json:"modelBreakdowns"`
}

// WeeklyReport is the JSON document the weekly command emits.
type WeeklyReport struct {
	Weekly []WeeklyRow `json:"weekly"`
	Totals Totals      `json:"totals"`
}

// MonthlyRow is one calendar month.
type MonthlyRow struct {
	Month string `json:"month"`
	Totals
	ModelsUsed      []string         `json:"modelsUsed"`
	ModelBreakdowns []ModelBreakdown `json:"modelBreakdowns"`
}

// MonthlyReport is the JSON document the monthly command emits.
type MonthlyReport struct {
	Monthly []MonthlyRow `json:"monthly"`
	Totals  Totals       `json:"totals"`
}

// SessionRow is one tool session.
type SessionRow struct {
	SessionID    string `json:"sessionId"`
	ProjectPath  string `json:"projectPath"`
	Source       string `json:"source"`
	LastActivity string `json:"lastActivity"`
	Totals
	ModelsUsed      []string         `json:"modelsUsed"`
	ModelBreakdowns []ModelBreakdown `json:"modelBreakdowns"`
}

// SessionReport is the JSON document the session command emits.
type SessionReport struct {
	Sessions []SessionRow `json:"sessions"`
	Totals   Totals       `json:"totals"`
}

// Daily groups records by calendar day in tz, oldest day first.
func Daily(records []usage.Record, tz *time.Location) DailyReport {
	buckets := aggregate(records, func(r usage.Record) string {
		return r.Timestamp.In(tz).Format("2006-01-02")
	})

	report := DailyReport{Daily: make([]DailyRow, 0, len(buckets))}
	for _, b := range buckets {
		report.Daily = append(report.Daily, DailyRow{
			Date:            b.key,
			Totals:          b.totals,
			ModelsUsed:      b.modelsUsed(),
			ModelBreakdowns: b.breakdowns(),
		})
		report.Totals = sumTotals(report.Totals, b.totals)
	}
	return report
}

// Weekly groups records by the week containing them, keyed by the date of
// the week's first day. startOfWeek picks which weekday opens a week.
func Weekly(records []usage.Record, tz *time.Location, startOfWeek time.Weekday) WeeklyReport {
	buckets := aggregate(records, func(r usage.Record) string {
		return weekStart(r.Timestamp.In(tz), startOfWeek).Format("2006-01-02")
	})

	report := WeeklyReport{Weekly: make([]WeeklyRow, 0, len(buckets))}
	for _, b := range buckets {
		report.Weekly = append(report.Weekly, WeeklyRow{
			Week:            b.key,
			Totals:          b.totals,
			ModelsUsed:      b.modelsUsed(),
			ModelBreakdowns: b.breakdowns(),
		})
		report.Totals = sumTotals(report.Totals, b.totals)
	}
	return report
}

// Monthly groups records by calendar month in tz.
func Monthly(records []usage.Record, tz *time.Location) MonthlyReport {
	buckets := aggregate(records, func(r usage.Record) string {
		return r.Timestamp.In(tz).Format("2006-01")
	})

	report := MonthlyReport{Monthly: make([]MonthlyRow, 0, len(buckets))}
	for _, b := range buckets {
		report.Monthly = append(report.Monthly, MonthlyRow{
			Month:           b.key,
			Totals:          b.totals,
			ModelsUsed:      b.modelsUsed(),
			ModelBreakdowns: b.breakdowns(),
		})
		report.Totals = sumTotals(report.Totals, b.totals)
	}
	return report
}

// Sessions groups records by session ID, most recent activity first.
func Sessions(records []usage.Record, tz *time.Location) SessionReport {
	buckets := aggregate(records, func(r usage.Record) string {
		return r.SessionID
	})

	report := SessionReport{Sessions: make([]SessionRow, 0, len(buckets))}
	for _, b := range buckets {
		report.Sessions = append(report.Sessions, SessionRow{
			SessionID:       b.key,
			ProjectPath:     b.project,
			Source:          b.source,
			LastActivity:    b.last.In(tz).Format("2006-01-02"),
			Totals:          b.totals,
			ModelsUsed:      b.modelsUsed(),
			ModelBreakdowns: b.breakdowns(),
		})
		report.Totals = sumTotals(report.Totals, b.totals)
	}
	sortSessions(report.Sessions)
	return report
}

// weekStart returns midnight of the most recent startOfWeek weekday at or
// before t, in t's location.
func weekStart(t time.Time, startOfWeek time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(startOfWeek) + 7) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-back, 0, 0, 0, 0, t.Location())
}

func sumTotals(a, b Totals) Totals {
	a.InputTokens += b.InputTokens
	a.OutputTokens += b.OutputTokens
	a.CacheCreationTokens += b.CacheCreationTokens
	a.CacheReadTokens += b.CacheReadTokens
	a.TotalTokens += b.TotalTokens
	a.TotalCost += b.TotalCost
	return a
}
