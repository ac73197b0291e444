package pricing

// costTierThreshold is the token count past which the above-threshold rates
// apply. The dataset format hard-codes this value in its field names
// (*_above_200k_tokens), so it is not per-record configurable.
const costTierThreshold = 200_000

// CalculateCost computes the unrounded USD cost of a usage event under a
// pricing record.
//
// Records with range tiers bill input, output, and cache-read at the rates
// of the tier selected by the input token count; cache-creation tokens are
// always billed via the threshold algorithm using the record's top-level
// cache-creation rates, because range tiers do not carry them.
//
// All other records bill each token category independently through
// tieredCost.
func CalculateCost(usage TokenUsage, rec ModelPricing) float64 {
	if rec.HasRangeTiers() {
		tier := tierFor(rec.RangeTiers, usage.InputTokens)
		cost := float64(usage.InputTokens)*tier.InputCostPerToken +
			float64(usage.OutputTokens)*tier.OutputCostPerToken
		if tier.CacheReadCostPerToken != nil {
			cost += float64(usage.CacheReadTokens) * *tier.CacheReadCostPerToken
		}
		return cost + tieredCost(usage.CacheCreationTokens, rec.CacheCreationCostPerToken, rec.CacheCreationCostAboveThreshold)
	}

	return tieredCost(usage.InputTokens, rec.InputCostPerToken, rec.InputCostAboveThreshold) +
		tieredCost(usage.OutputTokens, rec.OutputCostPerToken, rec.OutputCostAboveThreshold) +
		tieredCost(usage.CacheCreationTokens, rec.CacheCreationCostPerToken, rec.CacheCreationCostAboveThreshold) +
		tieredCost(usage.CacheReadTokens, rec.CacheReadCostPerToken, rec.CacheReadCostAboveThreshold)
}

// tieredCost bills one token category. At or below the threshold only the
// base rate applies; the above rate applies to exactly the excess. A missing
// base rate makes tokens at or below the threshold free, and a missing above
// rate extends the base rate past the threshold.
func tieredCost(tokens int64, base, above *float64) float64 {
	if tokens <= 0 {
		return 0
	}
	if tokens > costTierThreshold && above != nil {
		var baseRate float64
		if base != nil {
			baseRate = *base
		}
		return float64(min(tokens, costTierThreshold))*baseRate +
			float64(max(int64(0), tokens-costTierThreshold))**above
	}
	if base != nil {
		return float64(tokens) * *base
	}
	return 0
}

// tierFor selects the first tier whose inclusive range contains inputTokens,
// falling back to the first tier when none match. Boundary token counts that
// appear in two adjacent tiers resolve to the earlier one.
func tierFor(tiers []RangeTier, inputTokens int64) RangeTier {
	for _, t := range tiers {
		if t.Range[0] <= inputTokens && inputTokens <= t.Range[1] {
			return t
		}
	}
	if len(tiers) > 0 {
		return tiers[0]
	}
	return RangeTier{}
}
