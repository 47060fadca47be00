package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) (*Journal, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "journal")
	j, err := OpenJournal(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j, dir
}

func TestJournal_AppendAndGet(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	at := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	id, err := j.Append(ctx, Entry{Op: OpAdd, Plate: "11-AAA-22", Detail: "Toyota Corolla", At: at})
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	got, err := j.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, OpAdd, got.Op)
	assert.Equal(t, "11-AAA-22", got.Plate)
	assert.Equal(t, "Toyota Corolla", got.Detail)
	assert.True(t, at.Equal(got.At))
}

func TestJournal_AppendDefaults(t *testing.T) {
	j, _ := openTestJournal(t)

	before := time.Now().UTC().Add(-time.Second)
	id, err := j.Append(context.Background(), Entry{Op: OpSave})
	require.NoError(t, err)

	got, err := j.Get(id)
	require.NoError(t, err)
	assert.True(t, got.At.After(before))
}

func TestJournal_AppendErrors(t *testing.T) {
	j, _ := openTestJournal(t)

	_, err := j.Append(context.Background(), Entry{Plate: "11-AAA-22"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = j.Append(ctx, Entry{Op: OpAdd})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJournal_EntriesOrder(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	// same timestamp for every entry: order must still follow appends
	at := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	plates := []string{"11-AAA-22", "22-BBB-33", "33-CCC-44", "44-DDD-55", "55-EEE-66"}
	for _, p := range plates {
		_, err := j.Append(ctx, Entry{Op: OpAdd, Plate: p, At: at})
		require.NoError(t, err)
	}

	all, err := j.Entries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, len(plates))
	for i, e := range all {
		assert.Equal(t, plates[i], e.Plate)
	}

	newest, err := j.Entries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, "44-DDD-55", newest[0].Plate)
	assert.Equal(t, "55-EEE-66", newest[1].Plate)

	more, err := j.Entries(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, more, len(plates))
}

func TestJournal_EmptyEntries(t *testing.T) {
	j, _ := openTestJournal(t)

	entries, err := j.Entries(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournal_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	ctx := context.Background()

	j, err := OpenJournal(dir)
	require.NoError(t, err)
	// a future timestamp forces the next session to order after it
	future := time.Now().Add(time.Hour)
	_, err = j.Append(ctx, Entry{Op: OpLoad, Detail: "first session", At: future})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = OpenJournal(dir)
	require.NoError(t, err)
	defer j.Close()

	_, err = j.Append(ctx, Entry{Op: OpSave, Detail: "second session"})
	require.NoError(t, err)

	entries, err := j.Entries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first session", entries[0].Detail)
	assert.Equal(t, "second session", entries[1].Detail)
}

func TestJournal_Closed(t *testing.T) {
	j, _ := openTestJournal(t)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	_, err := j.Append(context.Background(), Entry{Op: OpAdd})
	assert.ErrorIs(t, err, ErrClosed)

	_, err = j.Entries(context.Background(), 0)
	assert.ErrorIs(t, err, ErrClosed)

	_, err = j.Get(ksuid.New())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestJournalFactory(t *testing.T) {
	f := NewJournalFactory()
	j, err := f.OpenJournal(filepath.Join(t.TempDir(), "journal"))
	require.NoError(t, err)
	assert.NoError(t, j.Close())
}
