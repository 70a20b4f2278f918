package repository

import (
	"context"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	Save(ctx context.Context, profile *entity.UserProfile) error
}
