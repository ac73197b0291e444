package report

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/cobra91/better-ccusage/internal/pricing"
	"github.com/cobra91/better-ccusage/internal/usage"
)

// CostSource prices one usage event. *pricing.Engine satisfies it.
type CostSource interface {
	CostFor(ctx context.Context, usage pricing.TokenUsage, model string) (float64, error)
}

// ApplyCosts fills in CostUSD on every record according to mode, mutating
// records in place. Records whose model has no pricing entry cost zero; each
// such model is reported once through log rather than once per record.
func ApplyCosts(ctx context.Context, src CostSource, mode CostMode, records []usage.Record, log *slog.Logger) error {
	unknown := make(map[string]int)

	for i := range records {
		r := &records[i]
		if mode == CostModeDisplay {
			continue
		}
		if mode == CostModeAuto && r.CostUSD > 0 {
			continue
		}

		cost, err := src.CostFor(ctx, tokensOf(r), r.Model)
		switch {
		case err == nil:
			r.CostUSD = cost
		case errors.Is(err, pricing.ErrModelNotFound):
			r.CostUSD = 0
			unknown[r.Model]++
		default:
			return err
		}
	}

	for _, model := range sortedKeys(unknown) {
		log.Warn("no pricing for model, costing as zero",
			"model", model,
			"records", unknown[model],
		)
	}
	return nil
}

func tokensOf(r *usage.Record) pricing.TokenUsage {
	return pricing.TokenUsage{
		InputTokens:         r.InputTokens,
		OutputTokens:        r.OutputTokens,
		CacheCreationTokens: r.CacheCreationTokens,
		CacheReadTokens:     r.CacheReadTokens,
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
