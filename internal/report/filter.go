package report

import (
	"fmt"
	"time"

	"github.com/cobra91/better-ccusage/internal/usage"
)

var dayFormats = []string{"2006-01-02", "20060102"}

// parseDay accepts a date in ISO (2025-08-20) or compact (20250820) form,
// interpreted at midnight in tz.
func parseDay(s string, tz *time.Location) (time.Time, error) {
	for _, layout := range dayFormats {
		if t, err := time.ParseInLocation(layout, s, tz); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or YYYYMMDD)", s)
}

// FilterByDate keeps records whose timestamp falls between since and until,
// both inclusive whole days in tz. Empty strings leave that end open.
func FilterByDate(records []usage.Record, since, until string, tz *time.Location) ([]usage.Record, error) {
	if since == "" && until == "" {
		return records, nil
	}

	var from, to time.Time
	if since != "" {
		t, err := parseDay(since, tz)
		if err != nil {
			return nil, fmt.Errorf("--since: %w", err)
		}
		from = t
	}
	if until != "" {
		t, err := parseDay(until, tz)
		if err != nil {
			return nil, fmt.Errorf("--until: %w", err)
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}

	out := make([]usage.Record, 0, len(records))
	for _, r := range records {
		ts := r.Timestamp.In(tz)
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
