package pricing

import "strings"

// DefaultPrefixes is the provider prefix list used when an Engine is built
// without WithPrefixes. Order matters: phase 1 tries prefixed keys in list
// order.
var DefaultPrefixes = []string{"anthropic/", "openai/", "zai/"}

// Resolve finds the best pricing record for a model identifier. It is a pure
// function over an immutable table snapshot, safe for concurrent use.
//
// Three phases, first hit wins:
//  1. exact case-sensitive lookup of the raw id, then of each prefix+id in
//     prefix list order;
//  2. case-insensitive scan in table order for an equal key or a key ending
//     in "/"+id;
//  3. scored fuzzy scan in table order, best strictly-greater score winning,
//     so equal scores keep the earliest key.
func Resolve(model string, prefixes []string, t *Table) (ModelPricing, bool) {
	if t == nil || t.Len() == 0 || model == "" {
		return ModelPricing{}, false
	}

	if rec, ok := t.Get(model); ok {
		return rec, true
	}
	for _, prefix := range prefixes {
		if rec, ok := t.Get(prefix + model); ok {
			return rec, true
		}
	}

	lower := strings.ToLower(model)
	for _, key := range t.keys {
		lk := strings.ToLower(key)
		if lk == lower || strings.HasSuffix(lk, "/"+lower) {
			return t.records[key], true
		}
	}

	bestScore := 0
	bestKey := ""
	for _, key := range t.keys {
		if score := matchScore(strings.ToLower(key), lower); score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	if bestScore == 0 {
		return ModelPricing{}, false
	}
	return t.records[bestKey], true
}

// matchScore ranks a lower-cased table key k against a lower-cased model id
// m. Non-"air" variants outrank "air" variants of the same family, and the
// zai provider outranks other providers among non-"air" matches.
func matchScore(k, m string) int {
	switch {
	case strings.Contains(k, m):
		// A "provider/model" shape that phases 1-2 missed only because the
		// prefix list did not anticipate the provider.
		if strings.Contains(k, m+"/") || strings.HasSuffix(k, "/"+m) {
			return 100
		}
		if !strings.Contains(k, "air") {
			if strings.HasPrefix(k, "zai/") {
				return 95
			}
			return 90
		}
		return 50
	case strings.Contains(m, k):
		return 10
	default:
		return 0
	}
}
