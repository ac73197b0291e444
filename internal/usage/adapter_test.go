package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	name    string
	records []Record
	err     error
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Load(context.Context) ([]Record, error) {
	return f.records, f.err
}

func TestLoadAllMergesSortsAndDedups(t *testing.T) {
	base := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	a1 := &fakeAdapter{name: "one", records: []Record{
		{Timestamp: base.Add(time.Hour), MessageID: "m1", RequestID: "r1"},
		{Timestamp: base, MessageID: "m2", RequestID: "r2"},
	}}
	a2 := &fakeAdapter{name: "two", records: []Record{
		// Duplicate of m1/r1 seen later by another adapter.
		{Timestamp: base.Add(2 * time.Hour), MessageID: "m1", RequestID: "r1"},
		{Timestamp: base.Add(30 * time.Minute), MessageID: "m3", RequestID: "r3"},
	}}

	out := LoadAll(context.Background(), testLogger(), a1, a2)

	require.Len(t, out, 3)
	assert.Equal(t, "m2", out[0].MessageID)
	assert.Equal(t, "m3", out[1].MessageID)
	assert.Equal(t, "m1", out[2].MessageID)
}

func TestLoadAllSkipsFailingAdapter(t *testing.T) {
	ok := &fakeAdapter{name: "ok", records: []Record{
		{Timestamp: time.Now(), MessageID: "m1", RequestID: "r1"},
	}}
	broken := &fakeAdapter{name: "broken", err: errors.New("permission denied")}

	out := LoadAll(context.Background(), testLogger(), broken, ok)
	assert.Len(t, out, 1)
}

func TestLoadAllNoAdapters(t *testing.T) {
	assert.Empty(t, LoadAll(context.Background(), testLogger()))
}
