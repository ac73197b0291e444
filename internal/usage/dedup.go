package usage

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// SortAndDedup orders records by ascending timestamp and drops later
// duplicates of the same DedupKey. Claude Code rewrites session files as a
// conversation continues, so the same message can appear in several files;
// keeping the first occurrence keeps the earliest sighting. Sorts the input
// slice in place.
func SortAndDedup(records []Record) []Record {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	seen := make(map[uint64]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := r.DedupKey()
		if key == "" {
			out = append(out, r)
			continue
		}
		h := xxhash.Sum64String(key)
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, r)
	}
	return out
}
