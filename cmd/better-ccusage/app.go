package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cobra91/better-ccusage/config"
	"github.com/cobra91/better-ccusage/internal/logging"
	"github.com/cobra91/better-ccusage/internal/pricing"
	"github.com/cobra91/better-ccusage/internal/report"
	"github.com/cobra91/better-ccusage/internal/usage"
)

// appEnv carries everything a report command needs once configuration is
// resolved: flags beat environment variables beat the config file.
type appEnv struct {
	cfg    config.Config
	log    *slog.Logger
	tz     *time.Location
	mode   report.CostMode
	engine *pricing.Engine
}

func newEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := config.Load(rootFlags.configFile)
	if err != nil {
		return nil, err
	}

	// Only flags the user actually set may override the config layers.
	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.CostMode = rootFlags.mode
	}
	if f.Changed("timezone") {
		cfg.Timezone = rootFlags.timezone
	}
	if f.Changed("pricing-file") {
		cfg.PricingFile = rootFlags.pricingFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.Setup(level)

	tz, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	mode, err := report.ParseCostMode(cfg.CostMode)
	if err != nil {
		return nil, err
	}

	src := pricing.EmbeddedSource()
	if cfg.PricingFile != "" {
		src = pricing.FileSource(cfg.PricingFile)
	}
	opts := []pricing.Option{pricing.WithLogger(log)}
	if len(cfg.ProviderPrefixes) > 0 {
		opts = append(opts, pricing.WithPrefixes(cfg.ProviderPrefixes))
	}

	return &appEnv{
		cfg:    cfg,
		log:    log,
		tz:     tz,
		mode:   mode,
		engine: pricing.NewEngine(src, opts...),
	}, nil
}

func (a *appEnv) close() {
	_ = a.engine.Close()
}

// loadRecords reads every usage source, narrows to the requested date
// window, and prices the result.
func (a *appEnv) loadRecords(ctx context.Context) ([]usage.Record, error) {
	records := usage.LoadAll(ctx, a.log,
		usage.NewClaudeAdapter(a.cfg.ClaudeDirs, a.log),
		usage.NewCodexAdapter(a.cfg.CodexDir, a.log),
	)

	records, err := report.FilterByDate(records, rootFlags.since, rootFlags.until, a.tz)
	if err != nil {
		return nil, err
	}
	if err := report.ApplyCosts(ctx, a.engine, a.mode, records, a.log); err != nil {
		return nil, err
	}
	return records, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
