package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatSession_ViewedBy(t *testing.T) {
	session := &ChatSession{
		ID:                 "chat-1",
		Participants:       []string{"buyer-1", "seller-42"},
		ParticipantNames:   map[string]string{"buyer-1": "Buyer Lee", "seller-42": "Seller Kim"},
		ParticipantAvatars: map[string]string{"seller-42": "https://example.com/kim.png"},
	}

	fromBuyer := session.ViewedBy("buyer-1")
	assert.Equal(t, "Seller Kim", fromBuyer.TargetName)
	assert.Equal(t, "https://example.com/kim.png", fromBuyer.TargetAvatar)

	fromSeller := session.ViewedBy("seller-42")
	assert.Equal(t, "Buyer Lee", fromSeller.TargetName)
	assert.Equal(t, "", fromSeller.TargetAvatar)

	assert.Equal(t, "", session.TargetName, "the stored session is not modified")
}

func TestChatSession_ViewedByFallsBackToID(t *testing.T) {
	session := &ChatSession{
		Participants:     []string{"buyer-1", "seller-42"},
		ParticipantNames: map[string]string{"seller-42": "Seller Kim"},
	}

	assert.Equal(t, "buyer-1", session.ViewedBy("seller-42").TargetName)
}

func TestChatSession_CloneCopiesNames(t *testing.T) {
	session := &ChatSession{ParticipantNames: map[string]string{"a": "A"}}

	c := session.Clone()
	c.ParticipantNames["a"] = "changed"

	assert.Equal(t, "A", session.ParticipantNames["a"])
}
