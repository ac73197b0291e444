package usage

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// ClaudeAdapter reads Claude Code session logs. Each configured data
// directory is scanned for projects/<project>/<session>.jsonl files; every
// assistant event in them is one usage record.
type ClaudeAdapter struct {
	dirs []string
	log  *slog.Logger
}

// NewClaudeAdapter builds an adapter over the given data directories
// (typically ~/.config/claude and ~/.claude, or the CLAUDE_CONFIG_DIR
// override).
func NewClaudeAdapter(dirs []string, log *slog.Logger) *ClaudeAdapter {
	return &ClaudeAdapter{dirs: dirs, log: log}
}

func (a *ClaudeAdapter) Name() string { return SourceClaude }

// Load implements Adapter.
func (a *ClaudeAdapter) Load(ctx context.Context) ([]Record, error) {
	var all []Record
	for _, dir := range a.dirs {
		projects := filepath.Join(dir, "projects")
		if _, err := os.Stat(projects); err != nil {
			continue
		}
		for _, path := range jsonlFiles(projects) {
			if err := ctx.Err(); err != nil {
				return all, err
			}
			records, err := a.loadFile(path)
			if err != nil {
				a.log.Warn("unreadable session file", "path", path, "error", err)
				continue
			}
			all = append(all, records...)
		}
	}
	return all, nil
}

func (a *ClaudeAdapter) loadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	project := filepath.Base(filepath.Dir(path))
	records, skipped := parseClaudeLog(f, project, sessionFromFilename(path))
	if skipped > 0 {
		a.log.Debug("skipped malformed session lines", "path", path, "lines", skipped)
	}
	return records, nil
}

// sessionFromFilename extracts the session ID from a <uuid>.jsonl filename,
// canonicalized so differently cased filenames group into one session.
// Non-UUID names are kept verbatim; they still group a session, just not one
// Claude Code named.
func sessionFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), ".jsonl")
	if id, err := uuid.Parse(stem); err == nil {
		return id.String()
	}
	return stem
}

// claudeLine is the slice of the Claude Code log format that matters for
// cost reporting.
type claudeLine struct {
	Timestamp string   `json:"timestamp"`
	SessionID string   `json:"sessionId"`
	RequestID string   `json:"requestId"`
	CostUSD   *float64 `json:"costUSD"`
	Message   *struct {
		ID    string `json:"id"`
		Model string `json:"model"`
		Usage *struct {
			InputTokens              int64 `json:"input_tokens"`
			OutputTokens             int64 `json:"output_tokens"`
			CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
			CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// parseClaudeLog streams one session file. Only assistant events carry
// usage; everything else, and anything malformed, is skipped.
func parseClaudeLog(r io.Reader, project, fileSession string) (records []Record, skipped int) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if gjson.GetBytes(line, "type").String() != "assistant" {
			continue
		}

		var raw claudeLine
		if err := json.Unmarshal(line, &raw); err != nil {
			skipped++
			continue
		}
		if raw.Message == nil || raw.Message.Usage == nil {
			skipped++
			continue
		}
		// Claude Code writes "<synthetic>" for internally generated turns;
		// they are not billable.
		if raw.Message.Model == "" || raw.Message.Model == "<synthetic>" {
			continue
		}

		ts, err := parseLogTime(raw.Timestamp)
		if err != nil {
			skipped++
			continue
		}

		session := raw.SessionID
		if session == "" {
			session = fileSession
		}

		rec := Record{
			Timestamp:           ts,
			Model:               raw.Message.Model,
			InputTokens:         raw.Message.Usage.InputTokens,
			OutputTokens:        raw.Message.Usage.OutputTokens,
			CacheCreationTokens: raw.Message.Usage.CacheCreationInputTokens,
			CacheReadTokens:     raw.Message.Usage.CacheReadInputTokens,
			MessageID:           raw.Message.ID,
			RequestID:           raw.RequestID,
			SessionID:           session,
			ProjectPath:         project,
			Source:              SourceClaude,
		}
		if raw.CostUSD != nil {
			rec.CostUSD = *raw.CostUSD
		}
		records = append(records, rec)
	}
	if scanner.Err() != nil {
		skipped++
	}
	return records, skipped
}

// parseLogTime accepts the RFC 3339 timestamps Claude Code writes, with a
// fallback for the fixed-millisecond form older versions used.
func parseLogTime(s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		ts, err = time.Parse("2006-01-02T15:04:05.000Z", s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return ts.UTC(), nil
}
