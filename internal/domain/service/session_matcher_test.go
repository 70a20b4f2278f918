package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

func fixedID(id string) func() string {
	return func() string { return id }
}

func TestFindOrCreateSession_CreatesOnFirstContact(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	req := SessionRequest{
		CounterpartyID:   "seller-42",
		CounterpartyName: "왕씨",
		Type:             entity.SessionTrade,
		RelatedID:        "item-9",
	}

	session, sessions, created := FindOrCreateSession(nil, "me", req, fixedID("chat-1"), now)

	require.True(t, created)
	require.Len(t, sessions, 1)
	assert.Same(t, session, sessions[0])
	assert.Equal(t, "chat-1", session.ID)
	assert.Equal(t, []string{"me", "seller-42"}, session.Participants)
	assert.Equal(t, "왕씨", session.TargetName)
	assert.Equal(t, entity.SessionTrade, session.Type)
	assert.Equal(t, "item-9", session.RelatedID)
	assert.Equal(t, "", session.LastMessage)
	assert.Equal(t, now, session.CreatedAt)
}

func TestNewSession_NamesBothSides(t *testing.T) {
	req := SessionRequest{
		CounterpartyID:   "seller-42",
		CounterpartyName: "Seller Kim",
		CounterpartyIcon: "https://example.com/kim.png",
		Type:             entity.SessionTrade,
		RequesterName:    "Buyer Lee",
	}

	session := NewSession("chat-1", "buyer-1", req, time.Now())

	assert.Equal(t, "Seller Kim", session.TargetName)
	assert.Equal(t, "https://example.com/kim.png", session.TargetAvatar)
	assert.Equal(t, map[string]string{"buyer-1": "Buyer Lee", "seller-42": "Seller Kim"}, session.ParticipantNames)
	assert.Equal(t, "Buyer Lee", session.ViewedBy("seller-42").TargetName)
}

func TestFindOrCreateSession_ReusesMatchingSession(t *testing.T) {
	now := time.Now()
	req := SessionRequest{CounterpartyID: "seller-42", Type: entity.SessionTrade, RelatedID: "item-9"}

	first, sessions, _ := FindOrCreateSession(nil, "me", req, fixedID("chat-1"), now)
	again, after, created := FindOrCreateSession(sessions, "me", req, fixedID("chat-2"), now)

	assert.False(t, created)
	assert.Same(t, first, again)
	assert.Len(t, after, 1)
}

func TestFindOrCreateSession_NewSessionGoesFirst(t *testing.T) {
	now := time.Now()
	_, sessions, _ := FindOrCreateSession(nil, "me", SessionRequest{CounterpartyID: "a", Type: entity.SessionJob}, fixedID("chat-a"), now)
	_, sessions, created := FindOrCreateSession(sessions, "me", SessionRequest{CounterpartyID: "b", Type: entity.SessionJob}, fixedID("chat-b"), now)

	require.True(t, created)
	require.Len(t, sessions, 2)
	assert.Equal(t, "chat-b", sessions[0].ID)
	assert.Equal(t, "chat-a", sessions[1].ID)
}

func TestMatchesSession(t *testing.T) {
	session := &entity.ChatSession{
		ID:           "chat-1",
		Participants: []string{"me", "seller-42"},
		Type:         entity.SessionTrade,
		RelatedID:    "item-9",
	}

	tests := []struct {
		name string
		me   string
		req  SessionRequest
		want bool
	}{
		{"same counterparty type and item", "me", SessionRequest{CounterpartyID: "seller-42", Type: entity.SessionTrade, RelatedID: "item-9"}, true},
		{"different item", "me", SessionRequest{CounterpartyID: "seller-42", Type: entity.SessionTrade, RelatedID: "item-10"}, false},
		{"unscoped request does not match scoped session", "me", SessionRequest{CounterpartyID: "seller-42", Type: entity.SessionTrade}, false},
		{"different type", "me", SessionRequest{CounterpartyID: "seller-42", Type: entity.SessionSupport, RelatedID: "item-9"}, false},
		{"different counterparty", "me", SessionRequest{CounterpartyID: "seller-7", Type: entity.SessionTrade, RelatedID: "item-9"}, false},
		{"caller not a participant", "other", SessionRequest{CounterpartyID: "seller-42", Type: entity.SessionTrade, RelatedID: "item-9"}, false},
		{"counterparty side sees the same session", "seller-42", SessionRequest{CounterpartyID: "me", Type: entity.SessionTrade, RelatedID: "item-9"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSession(session, tt.me, tt.req))
		})
	}
}

func TestFindOrCreateSession_DoesNotMutateInput(t *testing.T) {
	existing := []*entity.ChatSession{
		{ID: "chat-old", Participants: []string{"me", "x"}, Type: entity.SessionSupport},
	}

	_, next, created := FindOrCreateSession(existing, "me", SessionRequest{CounterpartyID: "y", Type: entity.SessionSupport}, fixedID("chat-new"), time.Now())

	require.True(t, created)
	assert.Len(t, existing, 1)
	assert.Equal(t, "chat-old", existing[0].ID)
	assert.Len(t, next, 2)
}
