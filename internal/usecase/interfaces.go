package usecase

import (
	"context"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

// Assistant is the hosted language model. Implementations never fail: every
// error is replaced by a fixed fallback value.
type Assistant interface {
	GenerateReply(ctx context.Context, prompt string, lang entity.Language) string
	Translate(ctx context.Context, text string) entity.Translation
	ExtractAndTranslate(ctx context.Context, image []byte, mimeType string) entity.OCRResult
}

// Notifier pushes realtime events to users.
type Notifier interface {
	Publish(ctx context.Context, evt entity.Event, recipients ...string) error
}

// ProfileDirectory resolves identities not stored locally, e.g. Firebase users.
type ProfileDirectory interface {
	GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error)
}

// RateLimiter meters user actions.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
