package repository

import (
	"context"
	"sync"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

// memoryChatRepository keeps the session collection and the transcripts in
// process. Sessions are stored newest first.
type memoryChatRepository struct {
	mu          sync.RWMutex
	sessions    []*entity.ChatSession
	transcripts service.Transcripts
	newID       func() string
	now         func() time.Time
}

func NewMemoryChatRepository() repository.ChatRepository {
	return newMemoryChatRepository(service.NewSessionID, time.Now)
}

func newMemoryChatRepository(newID func() string, now func() time.Time) *memoryChatRepository {
	return &memoryChatRepository{
		transcripts: service.Transcripts{},
		newID:       newID,
		now:         now,
	}
}

func (r *memoryChatRepository) FindOrCreate(ctx context.Context, me string, req service.SessionRequest) (*entity.ChatSession, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, next, created := service.FindOrCreateSession(r.sessions, me, req, r.newID, r.now())
	r.sessions = next
	return session.Clone(), created, nil
}

func (r *memoryChatRepository) GetByID(ctx context.Context, id string) (*entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.sessions[i].Clone(), nil
	}
	return nil, errors.NotFound("Chat session", nil)
}

func (r *memoryChatRepository) ListByUserID(ctx context.Context, userID string, sessionType entity.SessionType, limit, offset int) ([]*entity.ChatSession, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.ChatSession
	for _, s := range r.sessions {
		if !s.HasParticipant(userID) {
			continue
		}
		if sessionType != "" && s.Type != sessionType {
			continue
		}
		matched = append(matched, s)
	}

	start, end := pageBounds(len(matched), limit, offset)
	page := make([]*entity.ChatSession, 0, end-start)
	for _, s := range matched[start:end] {
		page = append(page, s.Clone())
	}
	return page, int64(len(matched)), nil
}

func (r *memoryChatRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return errors.NotFound("Chat session", nil)
	}

	updated := r.sessions[i].Clone()
	updated.IsBlocked = blocked
	updated.UpdatedAt = r.now()

	next := append([]*entity.ChatSession(nil), r.sessions...)
	next[i] = updated
	r.sessions = next
	return nil
}

func (r *memoryChatRepository) AppendMessage(ctx context.Context, sessionID string, msg *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(sessionID)
	if i < 0 {
		return errors.NotFound("Chat session", nil)
	}

	seq := r.sessions[i].MessageCount + 1
	msg.SessionID = sessionID
	msg.Seq = seq

	stored := *msg
	r.transcripts = service.AppendMessage(r.transcripts, sessionID, &stored)
	r.sessions = service.UpdateSummary(r.sessions, sessionID, msg.Text, msg.Timestamp)
	// UpdateSummary hands back a fresh copy of the touched session.
	r.sessions[i].MessageCount = seq
	return nil
}

func (r *memoryChatRepository) ListMessages(ctx context.Context, sessionID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.transcripts[sessionID]
	start, end := pageBounds(len(msgs), limit, offset)
	page := make([]*entity.Message, 0, end-start)
	for _, m := range msgs[start:end] {
		c := *m
		page = append(page, &c)
	}
	return page, int64(len(msgs)), nil
}

func (r *memoryChatRepository) indexOf(id string) int {
	for i, s := range r.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}
