package usage

import (
	"context"
	"log/slog"
)

// Adapter reads usage records from one tool's on-disk session logs.
type Adapter interface {
	// Name identifies the adapter in logs and report output.
	Name() string
	// Load scans the tool's data directories and returns every usage record
	// found. A missing data directory is not an error; someone who never ran
	// the tool simply has no records.
	Load(ctx context.Context) ([]Record, error)
}

// LoadAll runs every adapter and merges the results into one
// timestamp-ordered, deduplicated stream. A failing adapter is logged and
// skipped so that one unreadable tool directory cannot take down reports
// for the others.
func LoadAll(ctx context.Context, log *slog.Logger, adapters ...Adapter) []Record {
	var all []Record
	for _, a := range adapters {
		records, err := a.Load(ctx)
		if err != nil {
			log.Warn("skipping usage source", "source", a.Name(), "error", err)
			continue
		}
		log.Debug("usage source loaded", "source", a.Name(), "records", len(records))
		all = append(all, records...)
	}
	return SortAndDedup(all)
}
