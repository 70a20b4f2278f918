package service

import (
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

// SessionRequest identifies the conversation a user wants to open.
type SessionRequest struct {
	CounterpartyID   string
	CounterpartyName string
	CounterpartyIcon string
	Type             entity.SessionType
	RelatedID        string

	// RequesterName and RequesterIcon describe the caller to the counterparty.
	RequesterName string
	RequesterIcon string
}

// MatchesSession reports whether s is the session for (me, req). The related
// id is compared strictly: an unscoped request only matches an unscoped
// session, and a scoped one only the session with the same related id.
func MatchesSession(s *entity.ChatSession, me string, req SessionRequest) bool {
	return s.Type == req.Type &&
		s.RelatedID == req.RelatedID &&
		s.HasParticipant(req.CounterpartyID) &&
		s.HasParticipant(me)
}

// FindSession returns the first session in sessions matching (me, req).
func FindSession(sessions []*entity.ChatSession, me string, req SessionRequest) *entity.ChatSession {
	for _, s := range sessions {
		if MatchesSession(s, me, req) {
			return s
		}
	}
	return nil
}

// NewSession builds the session created on first contact, as seen by me.
func NewSession(id, me string, req SessionRequest, now time.Time) *entity.ChatSession {
	names := map[string]string{req.CounterpartyID: req.CounterpartyName}
	if req.RequesterName != "" {
		names[me] = req.RequesterName
	}
	avatars := map[string]string{}
	if req.CounterpartyIcon != "" {
		avatars[req.CounterpartyID] = req.CounterpartyIcon
	}
	if req.RequesterIcon != "" {
		avatars[me] = req.RequesterIcon
	}

	session := &entity.ChatSession{
		ID:                 id,
		Participants:       []string{me, req.CounterpartyID},
		ParticipantNames:   names,
		ParticipantAvatars: avatars,
		LastMessage:        "",
		Type:               req.Type,
		RelatedID:          req.RelatedID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return session.ViewedBy(me)
}

// FindOrCreateSession returns the existing session for (me, req) with the
// collection untouched, or prepends a freshly created one. sessions is never
// modified in place.
func FindOrCreateSession(
	sessions []*entity.ChatSession,
	me string,
	req SessionRequest,
	newID func() string,
	now time.Time,
) (*entity.ChatSession, []*entity.ChatSession, bool) {
	if existing := FindSession(sessions, me, req); existing != nil {
		return existing, sessions, false
	}

	created := NewSession(newID(), me, req, now)
	next := make([]*entity.ChatSession, 0, len(sessions)+1)
	next = append(next, created)
	next = append(next, sessions...)
	return created, next, true
}
