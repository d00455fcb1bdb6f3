package events

import (
	"testing"

	"freshfold/internal/timeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMarkHandledDropsLoopbackCopy(t *testing.T) {
	eb := &EventBus{handled: timeline.NewWindow[eventRef](EVENT_DEDUP_WINDOW)}
	eventID := uuid.New().String()

	assert.True(t, eb.markHandled(eventID), "first delivery is handled")
	assert.False(t, eb.markHandled(eventID), "pub/sub redelivery is dropped")
}

func TestMarkHandledDeliversForeignIDs(t *testing.T) {
	eb := &EventBus{handled: timeline.NewWindow[eventRef](EVENT_DEDUP_WINDOW)}

	// An id that is not a uuid cannot be tracked; deliver both times rather
	// than drop an event we never saw.
	assert.True(t, eb.markHandled("not-a-uuid"))
	assert.True(t, eb.markHandled("not-a-uuid"))
}
