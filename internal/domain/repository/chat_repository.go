package repository

import (
	"context"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
)

type ChatRepository interface {
	// FindOrCreate returns the session matching (me, req) or atomically stores
	// a new one. created reports which happened.
	FindOrCreate(ctx context.Context, me string, req service.SessionRequest) (session *entity.ChatSession, created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.ChatSession, error)
	ListByUserID(ctx context.Context, userID string, sessionType entity.SessionType, limit, offset int) ([]*entity.ChatSession, int64, error)
	SetBlocked(ctx context.Context, id string, blocked bool) error

	// AppendMessage stores msg at the end of the session transcript and
	// refreshes the session's last message in the same step. msg.Seq is
	// assigned by the repository. Unknown sessions yield NOT_FOUND.
	AppendMessage(ctx context.Context, sessionID string, msg *entity.Message) error
	ListMessages(ctx context.Context, sessionID string, limit, offset int) ([]*entity.Message, int64, error)
}
