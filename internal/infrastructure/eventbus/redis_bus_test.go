package eventbus

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

type recordingPublisher struct {
	mu         sync.Mutex
	events     []entity.Event
	recipients [][]string
}

func (p *recordingPublisher) Publish(ctx context.Context, evt entity.Event, recipients ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	p.recipients = append(p.recipients, recipients)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestForward_DecodesEnvelope(t *testing.T) {
	local := &recordingPublisher{}
	raw, err := json.Marshal(envelope{
		Recipients: []string{"me-777", "seller-42"},
		Event: entity.Event{
			Type:      entity.EventNewMessage,
			SessionID: "chat-1",
			Data:      map[string]string{"text": "hi"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, forward(context.Background(), local, raw))

	require.Len(t, local.events, 1)
	assert.Equal(t, entity.EventNewMessage, local.events[0].Type)
	assert.Equal(t, "chat-1", local.events[0].SessionID)
	assert.Equal(t, []string{"me-777", "seller-42"}, local.recipients[0])
}

func TestForward_RejectsGarbage(t *testing.T) {
	local := &recordingPublisher{}
	assert.Error(t, forward(context.Background(), local, []byte("{not json")))
	assert.Zero(t, local.count())
}

func TestRedisBus_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	local := &recordingPublisher{}
	bus, err := NewRedisBus(addr, "chat-events-test", local)
	require.NoError(t, err)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	// give the subscription a moment to start
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, bus.Publish(ctx, entity.Event{Type: entity.EventChatListUpdate}, "me-777"))

	assert.Eventually(t, func() bool { return local.count() == 1 }, 3*time.Second, 50*time.Millisecond)
}
