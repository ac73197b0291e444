// Package pricing resolves model identifiers against a rate-schedule table
// and computes USD costs for token usage, honoring threshold-based and
// range-based tiered pricing.
package pricing

// ModelPricing is the rate schedule for one model identifier. All rates are
// USD per single token. Field names follow the LiteLLM dataset format; any
// field may be absent, which the calculator treats as "no charge" for that
// category (or, for above-threshold rates, "no second tier").
type ModelPricing struct {
	InputCostPerToken  *float64 `json:"input_cost_per_token,omitempty"`
	OutputCostPerToken *float64 `json:"output_cost_per_token,omitempty"`

	CacheCreationCostPerToken *float64 `json:"cache_creation_input_token_cost,omitempty"`
	CacheReadCostPerToken     *float64 `json:"cache_read_input_token_cost,omitempty"`

	// Rates for the portion of a token category beyond costTierThreshold.
	// Presence of any of these activates threshold-tiered billing for that
	// category.
	InputCostAboveThreshold         *float64 `json:"input_cost_per_token_above_200k_tokens,omitempty"`
	OutputCostAboveThreshold        *float64 `json:"output_cost_per_token_above_200k_tokens,omitempty"`
	CacheCreationCostAboveThreshold *float64 `json:"cache_creation_input_token_cost_above_200k_tokens,omitempty"`
	CacheReadCostAboveThreshold     *float64 `json:"cache_read_input_token_cost_above_200k_tokens,omitempty"`

	// Context-window metadata, informational only.
	MaxInputTokens  *int64 `json:"max_input_tokens,omitempty"`
	MaxOutputTokens *int64 `json:"max_output_tokens,omitempty"`
	MaxTokens       *int64 `json:"max_tokens,omitempty"`

	// RangeTiers, when non-empty, activates range-tiered billing for
	// input/output/cache-read. Cache-creation tokens are still billed via
	// the threshold fields above. Tiers are assumed non-overlapping and in
	// ascending order; the loader does not re-sort them.
	RangeTiers []RangeTier `json:"tiered_pricing,omitempty"`
}

// HasRangeTiers reports whether range-tiered billing applies to this record.
func (p ModelPricing) HasRangeTiers() bool {
	return len(p.RangeTiers) > 0
}

// RangeTier is one input-token-count range with its own rate set. Range
// bounds are inclusive; a tier matches when range[0] <= inputTokens <=
// range[1], first match in list order winning.
type RangeTier struct {
	InputCostPerToken     float64  `json:"input_cost_per_token"`
	OutputCostPerToken    float64  `json:"output_cost_per_token"`
	CacheReadCostPerToken *float64 `json:"cache_read_input_token_cost,omitempty"`
	Range                 [2]int64 `json:"range"`
}

// TokenUsage holds the four token counts of a single billable event.
// Counts must be non-negative; normalizing negative or missing values to
// zero is the caller's responsibility.
type TokenUsage struct {
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64
}

// Total returns the sum of all four token categories.
func (u TokenUsage) Total() int64 {
	return u.InputTokens + u.OutputTokens + u.CacheCreationTokens + u.CacheReadTokens
}

// Table is an immutable-once-built mapping from model identifier to pricing
// record. Document order of the source JSON is preserved because resolution
// tie-breaking depends on it. Build one with ParseTable; never mutate after.
type Table struct {
	keys    []string
	records map[string]ModelPricing
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.keys)
}

// Get performs an exact, case-sensitive lookup.
func (t *Table) Get(key string) (ModelPricing, bool) {
	rec, ok := t.records[key]
	return rec, ok
}

// Models returns the model identifiers in table order. The returned slice is
// a copy and safe to retain.
func (t *Table) Models() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

func emptyTable() *Table {
	return &Table{records: make(map[string]ModelPricing)}
}
