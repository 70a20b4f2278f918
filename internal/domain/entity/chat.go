package entity

import (
	"maps"
	"time"
)

type SessionType string

const (
	SessionTrade      SessionType = "TRADE"
	SessionJob        SessionType = "JOB"
	SessionRealEstate SessionType = "REAL_ESTATE"
	SessionSupport    SessionType = "SUPPORT"
	SessionAI         SessionType = "AI"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTrade, SessionJob, SessionRealEstate, SessionSupport, SessionAI:
		return true
	}
	return false
}

// BotID is the sender identity of assistant replies and the counterparty of
// every AI session.
const BotID = "ai-bot"

var botNames = LocalizedText{Ko: "AI 채팅봇", Zh: "AI 聊天机器人", En: "AI Chatbot"}

// BotName is the display name of the assistant counterparty in lang.
func BotName(lang Language) string {
	return botNames.Get(lang)
}

// ChatSession is a conversation between "me" and one counterparty, scoped by
// interaction type and optionally by a related listing.
//
// Display names are kept per participant. TargetName and TargetAvatar are not
// stored; they describe the other side for whoever reads the session and are
// filled by ViewedBy.
type ChatSession struct {
	ID                 string            `json:"id" firestore:"id"`
	Participants       []string          `json:"participants" firestore:"participants"`
	ParticipantNames   map[string]string `json:"-" firestore:"participantNames"`
	ParticipantAvatars map[string]string `json:"-" firestore:"participantAvatars,omitempty"`
	TargetName         string            `json:"target_name" firestore:"-"`
	TargetAvatar       string            `json:"target_avatar,omitempty" firestore:"-"`
	LastMessage        string            `json:"last_message" firestore:"lastMessage"`
	Type               SessionType       `json:"type" firestore:"type"`
	RelatedID          string            `json:"related_id,omitempty" firestore:"relatedId"`
	IsBlocked          bool              `json:"is_blocked,omitempty" firestore:"isBlocked"`
	MessageCount       int64             `json:"message_count" firestore:"messageCount"`
	CreatedAt          time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt          time.Time         `json:"updated_at" firestore:"updatedAt"`
}

func (s *ChatSession) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Counterparty returns the participant that is not userID.
func (s *ChatSession) Counterparty(userID string) string {
	for _, p := range s.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

func (s *ChatSession) Clone() *ChatSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Participants = append([]string(nil), s.Participants...)
	c.ParticipantNames = maps.Clone(s.ParticipantNames)
	c.ParticipantAvatars = maps.Clone(s.ParticipantAvatars)
	return &c
}

// ViewedBy returns a copy of s whose target fields describe the participant
// opposite userID. An unnamed counterparty is shown by its id.
func (s *ChatSession) ViewedBy(userID string) *ChatSession {
	c := s.Clone()
	other := s.Counterparty(userID)
	c.TargetName = s.ParticipantNames[other]
	if c.TargetName == "" {
		c.TargetName = other
	}
	c.TargetAvatar = s.ParticipantAvatars[other]
	return c
}
