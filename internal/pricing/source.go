package pricing

import (
	_ "embed"

	"context"
	"fmt"
	"os"
)

// Source supplies raw pricing JSON. It is the only operation of the engine
// that may block; cancellation is the source's responsibility via ctx.
type Source func(ctx context.Context) ([]byte, error)

// maxPricingBytes bounds how much pricing data FileSource will read.
const maxPricingBytes = 10 * 1024 * 1024 // 10 MB

//go:embed pricing.json
var embeddedPricing []byte

// EmbeddedSource returns the dataset compiled into the binary. It never
// fails and keeps the tool fully offline.
func EmbeddedSource() Source {
	return func(context.Context) ([]byte, error) {
		return embeddedPricing, nil
	}
}

// FileSource reads pricing JSON from a local file. Read errors surface to
// the engine, which degrades to an empty table.
func FileSource(path string) Source {
	return func(context.Context) ([]byte, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading pricing file: %w", err)
		}
		if info.Size() > maxPricingBytes {
			return nil, fmt.Errorf("pricing file %s too large (exceeds %d bytes)", path, maxPricingBytes)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading pricing file: %w", err)
		}
		return raw, nil
	}
}
