package report

import (
	"sort"
	"time"

	"github.com/cobra91/better-ccusage/internal/usage"
)

// bucket accumulates the records sharing one grouping key.
type bucket struct {
	key     string
	totals  Totals
	models  map[string]*ModelBreakdown
	project string
	source  string
	last    time.Time
}

func (b *bucket) add(r usage.Record) {
	b.totals.add(r)

	mb, ok := b.models[r.Model]
	if !ok {
		mb = &ModelBreakdown{ModelName: r.Model}
		b.models[r.Model] = mb
	}
	mb.InputTokens += r.InputTokens
	mb.OutputTokens += r.OutputTokens
	mb.CacheCreationTokens += r.CacheCreationTokens
	mb.CacheReadTokens += r.CacheReadTokens
	mb.Cost += r.CostUSD

	if !r.Timestamp.Before(b.last) {
		b.last = r.Timestamp
		if r.ProjectPath != "" {
			b.project = r.ProjectPath
		}
		if r.Source != "" {
			b.source = r.Source
		}
	}
}

// breakdowns returns the per-model rows, most expensive model first.
func (b *bucket) breakdowns() []ModelBreakdown {
	out := make([]ModelBreakdown, 0, len(b.models))
	for _, mb := range b.models {
		out = append(out, *mb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].ModelName < out[j].ModelName
	})
	return out
}

func (b *bucket) modelsUsed() []string {
	rows := b.breakdowns()
	names := make([]string, len(rows))
	for i, mb := range rows {
		names[i] = mb.ModelName
	}
	return names
}

// aggregate folds records into buckets by key and returns them ordered by
// key ascending. Date and month keys sort chronologically that way.
func aggregate(records []usage.Record, key func(usage.Record) string) []*bucket {
	byKey := make(map[string]*bucket)
	for _, r := range records {
		k := key(r)
		b, ok := byKey[k]
		if !ok {
			b = &bucket{key: k, models: make(map[string]*ModelBreakdown)}
			byKey[k] = b
		}
		b.add(r)
	}

	out := make([]*bucket, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// sortSessions orders session rows by most recent activity, then by ID so
// same-day sessions stay stable.
func sortSessions(rows []SessionRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LastActivity != rows[j].LastActivity {
			return rows[i].LastActivity > rows[j].LastActivity
		}
		return rows[i].SessionID < rows[j].SessionID
	})
}
