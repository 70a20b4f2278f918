package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

// newEmulatorClient connects to the Firestore emulator. Each test gets its own
// project so collections never overlap.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, fmt.Sprintf("test-%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestFirestoreChatRepository_FindOrCreateIsUniqueAcrossBothSides(t *testing.T) {
	repo := NewFirestoreChatRepository(newEmulatorClient(t))
	ctx := context.Background()
	buyer, seller := "buyer-"+uuid.NewString(), "seller-"+uuid.NewString()

	type result struct {
		id      string
		created bool
		err     error
	}
	const workers = 6
	results := make([]result, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			me, other := buyer, seller
			if i%2 == 1 {
				me, other = seller, buyer
			}
			s, created, err := repo.FindOrCreate(ctx, me, service.SessionRequest{
				CounterpartyID: other,
				Type:           entity.SessionTrade,
				RelatedID:      "item-9",
				RequesterName:  me,
			})
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{id: s.ID, created: created}
		}(i)
	}
	wg.Wait()

	ids := map[string]struct{}{}
	created := 0
	for _, r := range results {
		if r.err != nil {
			// Contended transactions may give up after their retries.
			continue
		}
		ids[r.id] = struct{}{}
		if r.created {
			created++
		}
	}
	require.Len(t, ids, 1, "every successful call resolves to one session")
	assert.Equal(t, 1, created)

	again, isNew, err := repo.FindOrCreate(ctx, seller, service.SessionRequest{CounterpartyID: buyer, Type: entity.SessionTrade, RelatedID: "item-9"})
	require.NoError(t, err)
	assert.False(t, isNew)
	_, ok := ids[again.ID]
	assert.True(t, ok)

	other, isNew, err := repo.FindOrCreate(ctx, buyer, service.SessionRequest{CounterpartyID: seller, Type: entity.SessionTrade, RelatedID: "item-10"})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.NotEqual(t, again.ID, other.ID)
}

func TestFirestoreChatRepository_StoresNamesPerParticipant(t *testing.T) {
	repo := NewFirestoreChatRepository(newEmulatorClient(t))
	ctx := context.Background()

	session, _, err := repo.FindOrCreate(ctx, "buyer-1", service.SessionRequest{
		CounterpartyID:   "seller-42",
		CounterpartyName: "Seller Kim",
		Type:             entity.SessionTrade,
		RequesterName:    "Buyer Lee",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buyer Lee", stored.ViewedBy("seller-42").TargetName)
	assert.Equal(t, "Seller Kim", stored.ViewedBy("buyer-1").TargetName)
}

func TestFirestoreChatRepository_AppendMessageAssignsSeq(t *testing.T) {
	repo := NewFirestoreChatRepository(newEmulatorClient(t))
	ctx := context.Background()

	session, _, err := repo.FindOrCreate(ctx, "me", service.SessionRequest{CounterpartyID: "boss", Type: entity.SessionJob})
	require.NoError(t, err)

	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.AppendMessage(ctx, session.ID, &entity.Message{
			SenderID:  "me",
			Text:      fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	msgs, total, err := repo.ListMessages(ctx, session.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, msgs, 5)
	for i, m := range msgs {
		assert.Equal(t, int64(i+1), m.Seq)
		assert.Equal(t, fmt.Sprintf("message %d", i+1), m.Text)
	}

	stored, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "message 5", stored.LastMessage)
	assert.Equal(t, int64(5), stored.MessageCount)

	page, _, err := repo.ListMessages(ctx, session.ID, 2, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(4), page[0].Seq)
}

func TestFirestoreChatRepository_ConcurrentAppendsGetDistinctSeq(t *testing.T) {
	repo := NewFirestoreChatRepository(newEmulatorClient(t))
	ctx := context.Background()

	session, _, err := repo.FindOrCreate(ctx, "me", service.SessionRequest{CounterpartyID: "friend", Type: entity.SessionSupport})
	require.NoError(t, err)

	const writers = 4
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.AppendMessage(ctx, session.ID, &entity.Message{SenderID: "me", Text: fmt.Sprint(i), Timestamp: time.Now()})
		}(i)
	}
	wg.Wait()

	msgs, total, err := repo.ListMessages(ctx, session.ID, 0, 0)
	require.NoError(t, err)
	require.NotZero(t, total)

	stored, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, total, stored.MessageCount, "count matches the stored messages")
	for i, m := range msgs {
		assert.Equal(t, int64(i+1), m.Seq)
	}
}

func TestFirestoreChatRepository_AppendToUnknownSession(t *testing.T) {
	repo := NewFirestoreChatRepository(newEmulatorClient(t))

	err := repo.AppendMessage(context.Background(), "chat-missing", &entity.Message{Text: "hi", Timestamp: time.Now()})

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
