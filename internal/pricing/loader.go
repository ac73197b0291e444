package pricing

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"
)

// ParseTable parses raw pricing JSON (model identifier -> rate fields) into
// a Table, preserving document order of the keys. Entries that are not
// objects or that carry malformed fields are skipped with a debug log; only
// a source that is not a JSON object at all fails the whole parse. Duplicate
// keys keep the first occurrence.
func ParseTable(raw []byte) (*Table, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("pricing data is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, errors.New("pricing data is not a JSON object")
	}

	t := emptyTable()
	doc.ForEach(func(key, value gjson.Result) bool {
		model := key.String()
		if _, dup := t.records[model]; dup {
			slog.Debug("duplicate pricing entry, keeping first", "model", model)
			return true
		}
		rec, err := parseRecord(value)
		if err != nil {
			slog.Debug("skipping invalid pricing entry", "model", model, "error", err)
			return true
		}
		t.keys = append(t.keys, model)
		t.records[model] = rec
		return true
	})
	return t, nil
}

// parseRecord validates one entry against the ModelPricing shape. Every
// field is optional, but a present field must have the right JSON type.
func parseRecord(entry gjson.Result) (ModelPricing, error) {
	var rec ModelPricing
	if !entry.IsObject() {
		return rec, errors.New("entry is not an object")
	}

	rates := []struct {
		name string
		dst  **float64
	}{
		{"input_cost_per_token", &rec.InputCostPerToken},
		{"output_cost_per_token", &rec.OutputCostPerToken},
		{"cache_creation_input_token_cost", &rec.CacheCreationCostPerToken},
		{"cache_read_input_token_cost", &rec.CacheReadCostPerToken},
		{"input_cost_per_token_above_200k_tokens", &rec.InputCostAboveThreshold},
		{"output_cost_per_token_above_200k_tokens", &rec.OutputCostAboveThreshold},
		{"cache_creation_input_token_cost_above_200k_tokens", &rec.CacheCreationCostAboveThreshold},
		{"cache_read_input_token_cost_above_200k_tokens", &rec.CacheReadCostAboveThreshold},
	}
	for _, r := range rates {
		v, err := floatField(entry, r.name)
		if err != nil {
			return rec, err
		}
		*r.dst = v
	}

	limits := []struct {
		name string
		dst  **int64
	}{
		{"max_input_tokens", &rec.MaxInputTokens},
		{"max_output_tokens", &rec.MaxOutputTokens},
		{"max_tokens", &rec.MaxTokens},
	}
	for _, l := range limits {
		v, err := intField(entry, l.name)
		if err != nil {
			return rec, err
		}
		*l.dst = v
	}

	tiers, err := parseRangeTiers(entry.Get("tiered_pricing"))
	if err != nil {
		return rec, err
	}
	rec.RangeTiers = tiers

	return rec, nil
}

// parseRangeTiers validates the tiered_pricing list. Absent means no range
// tiers; present means every tier must be well formed, otherwise the whole
// entry is rejected rather than billed against a half-parsed schedule.
func parseRangeTiers(field gjson.Result) ([]RangeTier, error) {
	if !field.Exists() {
		return nil, nil
	}
	if !field.IsArray() {
		return nil, errors.New("tiered_pricing is not an array")
	}

	var tiers []RangeTier
	var tierErr error
	field.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			tierErr = errors.New("tier is not an object")
			return false
		}
		bounds := item.Get("range")
		if !bounds.IsArray() {
			tierErr = errors.New("tier range is not an array")
			return false
		}
		ends := bounds.Array()
		if len(ends) != 2 || ends[0].Type != gjson.Number || ends[1].Type != gjson.Number {
			tierErr = errors.New("tier range must be two numbers")
			return false
		}

		tier := RangeTier{Range: [2]int64{ends[0].Int(), ends[1].Int()}}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"input_cost_per_token", &tier.InputCostPerToken},
			{"output_cost_per_token", &tier.OutputCostPerToken},
		} {
			v := item.Get(f.name)
			if !v.Exists() {
				continue
			}
			if v.Type != gjson.Number {
				tierErr = fmt.Errorf("tier %s is not a number", f.name)
				return false
			}
			*f.dst = v.Float()
		}
		cacheRead, err := floatField(item, "cache_read_input_token_cost")
		if err != nil {
			tierErr = err
			return false
		}
		tier.CacheReadCostPerToken = cacheRead

		tiers = append(tiers, tier)
		return true
	})
	if tierErr != nil {
		return nil, tierErr
	}
	return tiers, nil
}

func floatField(entry gjson.Result, name string) (*float64, error) {
	v := entry.Get(name)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if v.Type != gjson.Number {
		return nil, fmt.Errorf("%s is not a number", name)
	}
	f := v.Float()
	return &f, nil
}

func intField(entry gjson.Result, name string) (*int64, error) {
	v := entry.Get(name)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if v.Type != gjson.Number {
		return nil, fmt.Errorf("%s is not a number", name)
	}
	n := v.Int()
	return &n, nil
}
