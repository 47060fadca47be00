// Package storage keeps an append-only journal of catalog operations in a
// pebble database keyed by KSUID.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Journaled operations
const (
	OpLoad   = "load"
	OpAdd    = "add"
	OpRemove = "remove"
	OpSave   = "save"
)

// ErrClosed is returned by operations on a closed journal
var ErrClosed = errors.New("journal is closed")

// Entry is one journaled operation
type Entry struct {
	ID     ksuid.KSUID `json:"-"`
	Op     string      `json:"op"`
	Plate  string      `json:"plate,omitempty"`
	Detail string      `json:"detail,omitempty"`
	At     time.Time   `json:"at"`
}

// Recorder appends entries to a journal
type Recorder interface {
	Append(ctx context.Context, e Entry) (ksuid.KSUID, error)
}

// Journal is a pebble-backed operation log
type Journal struct {
	mu     sync.Mutex
	db     *pebble.DB
	last   ksuid.KSUID
	closed bool
}

// OpenJournal opens or creates the journal stored in dir
func OpenJournal(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", dir, err)
	}

	j := &Journal{db: db}
	if err := j.loadLast(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// loadLast remembers the newest key so later appends sort after it.
func (j *Journal) loadLast() error {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("failed to scan journal: %w", err)
	}
	defer iter.Close()

	if iter.Last() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return fmt.Errorf("corrupt journal key: %w", err)
		}
		j.last = id
	}
	return iter.Error()
}

// nextID returns a KSUID strictly greater than every key written so far.
func (j *Journal) nextID(at time.Time) (ksuid.KSUID, error) {
	id, err := ksuid.NewRandomWithTime(at)
	if err != nil {
		return ksuid.Nil, err
	}
	if ksuid.Compare(id, j.last) <= 0 {
		id = j.last.Next()
	}
	return id, nil
}

// Append stores e and returns its key. A zero At is set to the current time.
func (j *Journal) Append(ctx context.Context, e Entry) (ksuid.KSUID, error) {
	if err := ctx.Err(); err != nil {
		return ksuid.Nil, err
	}
	if e.Op == "" {
		return ksuid.Nil, fmt.Errorf("journal entry requires an operation")
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to encode journal entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ksuid.Nil, ErrClosed
	}

	id, err := j.nextID(e.At)
	if err != nil {
		return ksuid.Nil, err
	}
	if err := j.db.Set(id.Bytes(), data, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to write journal entry: %w", err)
	}
	j.last = id

	return id, nil
}

// Get returns the entry stored under id
func (j *Journal) Get(id ksuid.KSUID) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return Entry{}, ErrClosed
	}

	data, closer, err := j.db.Get(id.Bytes())
	if err != nil {
		return Entry{}, err
	}
	defer closer.Close()

	return decodeEntry(id, data)
}

// Entries returns the newest limit entries, oldest first. A limit of zero
// or less returns every entry.
func (j *Journal) Entries(ctx context.Context, limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	iter, err := j.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for valid := iter.Last(); valid; valid = iter.Prev() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if limit > 0 && len(entries) == limit {
			break
		}

		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("corrupt journal key: %w", err)
		}
		// iterator values are only valid until the next step
		e, err := decodeEntry(id, slices.Clone(iter.Value()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	slices.Reverse(entries)
	return entries, nil
}

func decodeEntry(id ksuid.KSUID, data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("corrupt journal entry %s: %w", id, err)
	}
	e.ID = id
	return e, nil
}

// Close flushes and closes the journal. Closing twice is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true

	if err := j.db.Flush(); err != nil {
		_ = j.db.Close()
		return err
	}
	return j.db.Close()
}
