package audit

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/permission"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWriter) events(t *testing.T) []Event {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, 0, len(f.messages))
	for _, msg := range f.messages {
		var ev Event
		require.NoError(t, json.Unmarshal(msg.Value, &ev))
		out = append(out, ev)
	}
	return out
}

func TestPublisherSessionEvents(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, logger.NewNop())

	p.Session(EventLogin, "agent-7")
	p.Session(EventLogout, "agent-7")
	require.NoError(t, p.Close())

	events := w.events(t)
	require.Len(t, events, 2)
	assert.Equal(t, EventLogin, events[0].Type)
	assert.Equal(t, "agent-7", events[0].Subject)
	assert.Equal(t, EventLogout, events[1].Type)
	assert.True(t, w.closed)
}

func TestPublisherFollowSkipsInitialEmission(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, logger.NewNop())
	store := permission.NewStore()

	p.Follow(store)
	store.Replace([]string{"Leads:Read", "leads:Read", "customers:Create"})
	require.NoError(t, p.Close())

	events := w.events(t)
	require.Len(t, events, 1, "the subscribe-time emission is not audited")
	assert.Equal(t, EventPermissionsReplaced, events[0].Type)
	assert.Equal(t, []string{"customers:Create", "leads:Read"}, events[0].Permissions)
}

func TestPublisherCloseStopsFollowing(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, logger.NewNop())
	store := permission.NewStore()

	p.Follow(store)
	require.NoError(t, p.Close())

	store.Replace([]string{"leads:Read"})

	assert.Empty(t, w.events(t))
}

func TestPublisherMessageKeyIsEventType(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, logger.NewNop())

	p.Session(EventLogin, "agent-7")
	require.NoError(t, p.Close())

	w.mu.Lock()
	defer w.mu.Unlock()
	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte(EventLogin), w.messages[0].Key)
}
