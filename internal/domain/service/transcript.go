package service

import (
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

// Transcripts maps a session id to its messages in append order.
type Transcripts map[string][]*entity.Message

// AppendMessage appends msg to the sequence of sessionID, creating it when
// absent, and returns transcripts. Only that sequence is touched and it grows
// in place, so callers sharing the map must hold their own lock.
func AppendMessage(transcripts Transcripts, sessionID string, msg *entity.Message) Transcripts {
	if transcripts == nil {
		transcripts = Transcripts{}
	}
	transcripts[sessionID] = append(transcripts[sessionID], msg)
	return transcripts
}

// UpdateSummary returns sessions with the last message of sessionID replaced
// by text. Unknown ids leave the collection as is.
func UpdateSummary(sessions []*entity.ChatSession, sessionID, text string, now time.Time) []*entity.ChatSession {
	next := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		if s.ID == sessionID {
			updated := s.Clone()
			updated.LastMessage = text
			updated.UpdatedAt = now
			next[i] = updated
			continue
		}
		next[i] = s
	}
	return next
}
