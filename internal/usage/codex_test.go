package usage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const codexRollout = `{"timestamp":"2025-08-20T09:00:00.000Z","type":"session_meta","payload":{"id":"ses-123","timestamp":"2025-08-20T09:00:00.000Z","cwd":"/home/u/work/proj","originator":"codex_cli_rs","cli_version":"0.21.0"}}
{"timestamp":"2025-08-20T09:00:01.000Z","type":"turn_context","payload":{"cwd":"/home/u/work/proj","model":"gpt-5-codex","effort":"medium","summary":"auto"}}
{"timestamp":"2025-08-20T09:00:10.000Z","type":"event_msg","payload":{"type":"token_count","info":{"total_token_usage":{"input_tokens":1500,"cached_input_tokens":900,"output_tokens":300,"reasoning_output_tokens":0,"total_tokens":1800},"last_token_usage":{"input_tokens":1500,"cached_input_tokens":900,"output_tokens":300,"reasoning_output_tokens":0,"total_tokens":1800},"model_context_window":272000}}}
{"timestamp":"2025-08-20T09:01:00.000Z","type":"event_msg","payload":{"type":"agent_message","message":"done"}}
{"timestamp":"2025-08-20T09:02:00.000Z","type":"event_msg","payload":{"type":"token_count","info":{"total_token_usage":{"input_tokens":3000,"cached_input_tokens":2400,"output_tokens":500,"reasoning_output_tokens":0,"total_tokens":3500},"last_token_usage":{"input_tokens":1500,"cached_input_tokens":1500,"output_tokens":200,"reasoning_output_tokens":0,"total_tokens":1700},"model_context_window":272000}}}
`

func TestCodexAdapterLoad(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "sessions", "2025", "08", "20", "rollout-2025-08-20T09-00-00-abc123.jsonl"), codexRollout)

	a := NewCodexAdapter(home, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, time.Date(2025, 8, 20, 9, 0, 10, 0, time.UTC), first.Timestamp)
	assert.Equal(t, "gpt-5-codex", first.Model)
	assert.Equal(t, int64(600), first.InputTokens, "cached tokens bill separately from input")
	assert.Equal(t, int64(900), first.CacheReadTokens)
	assert.Equal(t, int64(300), first.OutputTokens)
	assert.Equal(t, int64(0), first.CacheCreationTokens)
	assert.Equal(t, "ses-123", first.SessionID)
	assert.Equal(t, "proj", first.ProjectPath)
	assert.Equal(t, SourceCodex, first.Source)
	assert.Equal(t, 0.0, first.CostUSD, "codex logs carry no cost")

	second := records[1]
	assert.Equal(t, int64(0), second.InputTokens, "a fully cached turn bills no input tokens")
	assert.Equal(t, int64(1500), second.CacheReadTokens)
	assert.Equal(t, int64(200), second.OutputTokens)
}

func TestCodexAdapterCachedClamp(t *testing.T) {
	home := t.TempDir()
	rollout := `{"timestamp":"2025-08-20T09:00:01Z","type":"turn_context","payload":{"model":"gpt-5"}}
{"timestamp":"2025-08-20T09:00:10Z","type":"event_msg","payload":{"type":"token_count","info":{"last_token_usage":{"input_tokens":100,"cached_input_tokens":250,"output_tokens":10}}}}
`
	writeFile(t, filepath.Join(home, "sessions", "rollout-x.jsonl"), rollout)

	a := NewCodexAdapter(home, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(0), records[0].InputTokens)
	assert.Equal(t, int64(100), records[0].CacheReadTokens, "cached tokens never exceed input tokens")
}

func TestCodexAdapterSkipsEventsBeforeModel(t *testing.T) {
	home := t.TempDir()
	rollout := `{"timestamp":"2025-08-20T09:00:10Z","type":"event_msg","payload":{"type":"token_count","info":{"last_token_usage":{"input_tokens":100,"cached_input_tokens":0,"output_tokens":10}}}}
{"timestamp":"2025-08-20T09:00:11Z","type":"turn_context","payload":{"model":"gpt-5"}}
{"timestamp":"2025-08-20T09:00:20Z","type":"event_msg","payload":{"type":"token_count","info":{"last_token_usage":{"input_tokens":50,"cached_input_tokens":0,"output_tokens":5}}}}
`
	writeFile(t, filepath.Join(home, "sessions", "rollout-y.jsonl"), rollout)

	a := NewCodexAdapter(home, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(50), records[0].InputTokens)
}

func TestCodexAdapterSessionFromFilename(t *testing.T) {
	home := t.TempDir()
	// No session_meta; the filename stands in.
	rollout := `{"timestamp":"2025-08-20T09:00:01Z","type":"turn_context","payload":{"model":"gpt-5"}}
{"timestamp":"2025-08-20T09:00:10Z","type":"event_msg","payload":{"type":"token_count","info":{"last_token_usage":{"input_tokens":10,"cached_input_tokens":0,"output_tokens":1}}}}
`
	writeFile(t, filepath.Join(home, "sessions", "rollout-2025-08-20T09-00-00-abc123.jsonl"), rollout)

	a := NewCodexAdapter(home, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-08-20T09-00-00-abc123", records[0].SessionID)
}

func TestCodexAdapterMissingHome(t *testing.T) {
	a := NewCodexAdapter(filepath.Join(t.TempDir(), "nope"), testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCodexAdapterIgnoresNonRolloutFiles(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "sessions", "history.jsonl"), codexRollout)

	a := NewCodexAdapter(home, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCodexAdapterNegativeCountsClamp(t *testing.T) {
	home := t.TempDir()
	rollout := `{"timestamp":"2025-08-20T09:00:01Z","type":"turn_context","payload":{"model":"gpt-5"}}
{"timestamp":"2025-08-20T09:00:10Z","type":"event_msg","payload":{"type":"token_count","info":{"last_token_usage":{"input_tokens":-5,"cached_input_tokens":-3,"output_tokens":-1}}}}
`
	writeFile(t, filepath.Join(home, "sessions", "rollout-z.jsonl"), rollout)

	a := NewCodexAdapter(home, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(0), records[0].InputTokens)
	assert.Equal(t, int64(0), records[0].CacheReadTokens)
	assert.Equal(t, int64(0), records[0].OutputTokens)
}
