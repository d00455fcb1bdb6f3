package timeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testEntry struct {
	id      uuid.UUID
	content string
}

func (e testEntry) EntryID() uuid.UUID { return e.id }

func TestTimeline_AppendDeduplicatesByID(t *testing.T) {
	tl := New[testEntry]()
	entry := testEntry{id: uuid.New(), content: "hello"}

	assert.True(t, tl.Append(entry))
	// Same row arriving again through the realtime feed
	assert.False(t, tl.Append(entry))

	assert.Equal(t, 1, tl.Len())
	assert.True(t, tl.Contains(entry.id))
}

func TestTimeline_PreservesInsertionOrder(t *testing.T) {
	tl := New[testEntry]()
	first := testEntry{id: uuid.New(), content: "first"}
	second := testEntry{id: uuid.New(), content: "second"}
	third := testEntry{id: uuid.New(), content: "third"}

	tl.Append(first)
	tl.Append(second)
	// duplicate delivery of first must not move it to the end
	tl.Append(first)
	tl.Append(third)

	entries := tl.Entries()
	assert.Equal(t, []testEntry{first, second, third}, entries)
}

func TestTimeline_WindowEvictsOldest(t *testing.T) {
	tl := NewWindow[testEntry](2)
	first := testEntry{id: uuid.New(), content: "first"}
	second := testEntry{id: uuid.New(), content: "second"}
	third := testEntry{id: uuid.New(), content: "third"}

	tl.Append(first)
	tl.Append(second)
	tl.Append(third)

	assert.Equal(t, 2, tl.Len())
	assert.False(t, tl.Contains(first.id))
	assert.Equal(t, []testEntry{second, third}, tl.Entries())

	// evicted ids are forgotten, so a very late redelivery is accepted again
	assert.True(t, tl.Append(first))
}

func TestTimeline_Replace(t *testing.T) {
	tl := New[testEntry]()
	stale := testEntry{id: uuid.New(), content: "stale"}
	tl.Append(stale)

	fresh := []testEntry{
		{id: uuid.New(), content: "a"},
		{id: uuid.New(), content: "b"},
	}
	tl.Replace(fresh)

	assert.Equal(t, 2, tl.Len())
	assert.False(t, tl.Contains(stale.id))
	assert.Equal(t, fresh, tl.Entries())
}

func TestTimeline_ReplaceDropsDuplicates(t *testing.T) {
	tl := New[testEntry]()
	entry := testEntry{id: uuid.New(), content: "once"}

	tl.Replace([]testEntry{entry, entry, entry})

	assert.Equal(t, 1, tl.Len())
}
