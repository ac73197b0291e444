package usage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const claudeSession = `{"type":"user","timestamp":"2025-08-20T10:15:00.000Z","message":{"role":"user","content":"hi"}}
{"type":"assistant","timestamp":"2025-08-20T10:15:30.123Z","sessionId":"11111111-1111-4111-8111-111111111111","requestId":"req_1","costUSD":0.0105,"message":{"id":"msg_1","model":"claude-sonnet-4-5","usage":{"input_tokens":1000,"output_tokens":500,"cache_creation_input_tokens":200,"cache_read_input_tokens":800}}}
not even json
{"type":"assistant","timestamp":"garbage-timestamp","sessionId":"s","requestId":"r","message":{"id":"m","model":"claude-sonnet-4-5","usage":{"input_tokens":1,"output_tokens":1}}}
{"type":"assistant","timestamp":"2025-08-20T10:16:00.000Z","sessionId":"11111111-1111-4111-8111-111111111111","requestId":"req_2","message":{"id":"msg_2","model":"<synthetic>","usage":{"input_tokens":5,"output_tokens":5}}}
{"type":"assistant","timestamp":"2025-08-20T10:17:00.000Z","sessionId":"11111111-1111-4111-8111-111111111111","requestId":"req_3","message":{"id":"msg_3","model":"claude-sonnet-4-5","usage":{"input_tokens":2000,"output_tokens":100,"cache_creation_input_tokens":0,"cache_read_input_tokens":1500}}}
`

func TestClaudeAdapterLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "projects", "-home-u-myproj", "11111111-1111-4111-8111-111111111111.jsonl"), claudeSession)

	a := NewClaudeAdapter([]string{dir}, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2, "only well-formed assistant events count")

	first := records[0]
	assert.Equal(t, time.Date(2025, 8, 20, 10, 15, 30, 123000000, time.UTC), first.Timestamp)
	assert.Equal(t, "claude-sonnet-4-5", first.Model)
	assert.Equal(t, int64(1000), first.InputTokens)
	assert.Equal(t, int64(500), first.OutputTokens)
	assert.Equal(t, int64(200), first.CacheCreationTokens)
	assert.Equal(t, int64(800), first.CacheReadTokens)
	assert.Equal(t, 0.0105, first.CostUSD)
	assert.Equal(t, "msg_1", first.MessageID)
	assert.Equal(t, "req_1", first.RequestID)
	assert.Equal(t, "11111111-1111-4111-8111-111111111111", first.SessionID)
	assert.Equal(t, "-home-u-myproj", first.ProjectPath)
	assert.Equal(t, SourceClaude, first.Source)

	second := records[1]
	assert.Equal(t, "msg_3", second.MessageID)
	assert.Equal(t, 0.0, second.CostUSD, "a line without costUSD reports zero")
}

func TestClaudeAdapterSessionFromFilename(t *testing.T) {
	// No sessionId on the line; the (upper-cased) filename UUID fills in,
	// canonicalized to lower case.
	dir := t.TempDir()
	line := `{"type":"assistant","timestamp":"2025-08-20T10:15:30Z","requestId":"r1","message":{"id":"m1","model":"claude-haiku-4-5","usage":{"input_tokens":10,"output_tokens":5}}}` + "\n"
	writeFile(t, filepath.Join(dir, "projects", "p", "0B8A4351-3C4F-4B4B-9A31-6D6D1EC69B31.jsonl"), line)

	a := NewClaudeAdapter([]string{dir}, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0b8a4351-3c4f-4b4b-9a31-6d6d1ec69b31", records[0].SessionID)
}

func TestClaudeAdapterMultipleDirs(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFile(t, filepath.Join(dir1, "projects", "p1", "a.jsonl"),
		`{"type":"assistant","timestamp":"2025-08-20T10:15:30Z","sessionId":"s","requestId":"r1","message":{"id":"m1","model":"claude-haiku-4-5","usage":{"input_tokens":10,"output_tokens":5}}}`+"\n")
	writeFile(t, filepath.Join(dir2, "projects", "p2", "b.jsonl"),
		`{"type":"assistant","timestamp":"2025-08-20T10:16:30Z","sessionId":"s","requestId":"r2","message":{"id":"m2","model":"claude-haiku-4-5","usage":{"input_tokens":20,"output_tokens":5}}}`+"\n")

	a := NewClaudeAdapter([]string{dir1, dir2}, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClaudeAdapterMissingDir(t *testing.T) {
	a := NewClaudeAdapter([]string{filepath.Join(t.TempDir(), "never-initialized")}, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClaudeAdapterIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "projects", "p", "notes.txt"), "not a session log")
	writeFile(t, filepath.Join(dir, "projects", "p", "empty.jsonl"), "")

	a := NewClaudeAdapter([]string{dir}, testLogger())
	records, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClaudeAdapterCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "projects", "p", "a.jsonl"), claudeSession)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := NewClaudeAdapter([]string{dir}, testLogger())
	_, err := a.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseLogTime(t *testing.T) {
	ts, err := parseLogTime("2025-08-20T10:15:30.123456789Z")
	require.NoError(t, err)
	assert.Equal(t, 2025, ts.Year())

	ts, err = parseLogTime("2025-08-20T10:15:30.123Z")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())

	// Offset timestamps normalize to UTC.
	ts, err = parseLogTime("2025-08-20T12:15:30+02:00")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())

	_, err = parseLogTime("yesterday-ish")
	assert.Error(t, err)
}
