package repository

import (
	"context"
	"sync"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

type memoryUserRepository struct {
	mu       sync.RWMutex
	profiles map[string]entity.UserProfile
}

// NewMemoryUserRepository returns a store pre-loaded with seed profiles.
func NewMemoryUserRepository(seed ...entity.UserProfile) repository.UserRepository {
	r := &memoryUserRepository{profiles: make(map[string]entity.UserProfile, len(seed))}
	for _, p := range seed {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return &p, nil
}

func (r *memoryUserRepository) Save(ctx context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.ID] = *profile
	return nil
}
