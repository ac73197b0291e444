package usage

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// CodexAdapter reads Codex CLI session logs
// ($CODEX_HOME/sessions/**/rollout-*.jsonl). Codex writes a polymorphic
// event stream; usage lives in token_count events, and the model and
// working directory arrive in separate context events earlier in the file.
type CodexAdapter struct {
	home string
	log  *slog.Logger
}

// NewCodexAdapter builds an adapter over a Codex home directory
// (typically ~/.codex).
func NewCodexAdapter(home string, log *slog.Logger) *CodexAdapter {
	return &CodexAdapter{home: home, log: log}
}

func (a *CodexAdapter) Name() string { return SourceCodex }

// Load implements Adapter.
func (a *CodexAdapter) Load(ctx context.Context) ([]Record, error) {
	sessions := filepath.Join(a.home, "sessions")
	if _, err := os.Stat(sessions); err != nil {
		return nil, nil
	}

	var all []Record
	for _, path := range rolloutFiles(sessions) {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		records, err := a.loadRollout(path)
		if err != nil {
			a.log.Warn("unreadable rollout file", "path", path, "error", err)
			continue
		}
		all = append(all, records...)
	}
	return all, nil
}

func (a *CodexAdapter) loadRollout(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	var (
		records []Record
		skipped int
		model   string
		session = rolloutSession(path)
		project string
	)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		doc := gjson.ParseBytes(line)
		payload := doc.Get("payload")

		switch doc.Get("type").String() {
		case "session_meta":
			if id := payload.Get("id").String(); id != "" {
				session = id
			}
			if cwd := payload.Get("cwd").String(); cwd != "" {
				project = filepath.Base(cwd)
			}

		case "turn_context":
			if m := payload.Get("model").String(); m != "" {
				model = m
			}
			if cwd := payload.Get("cwd").String(); cwd != "" {
				project = filepath.Base(cwd)
			}

		case "event_msg":
			if payload.Get("type").String() != "token_count" {
				continue
			}
			turn := payload.Get("info.last_token_usage")
			if !turn.Exists() {
				continue
			}
			if model == "" {
				// token_count before any turn_context; nothing to price it
				// against.
				skipped++
				continue
			}
			ts, err := parseLogTime(doc.Get("timestamp").String())
			if err != nil {
				skipped++
				continue
			}

			input := max(int64(0), turn.Get("input_tokens").Int())
			cached := max(int64(0), turn.Get("cached_input_tokens").Int())
			output := max(int64(0), turn.Get("output_tokens").Int())
			// Cached tokens are a subset of input tokens; bill the cached
			// part at the cache-read rate and only the rest at the input
			// rate.
			cached = min(cached, input)

			records = append(records, Record{
				Timestamp:       ts,
				Model:           model,
				InputTokens:     input - cached,
				OutputTokens:    output,
				CacheReadTokens: cached,
				SessionID:       session,
				ProjectPath:     project,
				Source:          SourceCodex,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	if skipped > 0 {
		a.log.Debug("skipped rollout events", "path", path, "events", skipped)
	}
	return records, nil
}

// rolloutSession derives a session ID from a
// rollout-<timestamp>-<uuid>.jsonl filename, used until the file's
// session_meta event names the session itself.
func rolloutSession(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), ".jsonl")
	return strings.TrimPrefix(stem, "rollout-")
}
