// Package timeline provides an order-preserving, id-deduplicated sequence used
// to reconcile optimistic local appends with externally delivered row events.
// An entry delivered twice (once from the local write acknowledgment, once
// from the realtime feed) is kept exactly once, at its original position.
package timeline

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is anything with a primary key, typically a message or history row.
type Entry interface {
	EntryID() uuid.UUID
}

type Timeline[T Entry] struct {
	mu      sync.RWMutex
	entries []T
	seen    map[uuid.UUID]struct{}
	limit   int
}

func New[T Entry]() *Timeline[T] {
	return &Timeline[T]{
		seen: make(map[uuid.UUID]struct{}),
	}
}

// NewWindow returns a timeline that retains at most limit entries, evicting
// the oldest as new ones arrive. Suited to long-lived dedup over an unbounded
// stream, where only recent ids can realistically be redelivered.
func NewWindow[T Entry](limit int) *Timeline[T] {
	return &Timeline[T]{
		seen:  make(map[uuid.UUID]struct{}),
		limit: limit,
	}
}

// Append adds an entry at the end unless its id is already present. Returns
// true when the entry was added. New entries are never re-sorted; creation
// order is assigned by the database and replays arrive in commit order.
func (t *Timeline[T]) Append(entry T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := entry.EntryID()
	if _, ok := t.seen[id]; ok {
		return false
	}

	t.seen[id] = struct{}{}
	t.entries = append(t.entries, entry)

	if t.limit > 0 && len(t.entries) > t.limit {
		oldest := t.entries[0]
		delete(t.seen, oldest.EntryID())
		t.entries = t.entries[1:]
	}

	return true
}

// Replace swaps the whole sequence, used after a full re-fetch on reconnect.
func (t *Timeline[T]) Replace(entries []T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make([]T, 0, len(entries))
	t.seen = make(map[uuid.UUID]struct{}, len(entries))
	for _, entry := range entries {
		id := entry.EntryID()
		if _, ok := t.seen[id]; ok {
			continue
		}
		t.seen[id] = struct{}{}
		t.entries = append(t.entries, entry)
	}
}

func (t *Timeline[T]) Contains(id uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.seen[id]
	return ok
}

func (t *Timeline[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

// Entries returns a copy of the sequence in insertion order.
func (t *Timeline[T]) Entries() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, len(t.entries))
	copy(out, t.entries)
	return out
}
