package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

func TestGetProfile_LocalProfile(t *testing.T) {
	uc := NewProfileUseCase(repository.NewMemoryUserRepository(meProfile), nil)

	profile, err := uc.GetProfile(context.Background(), meProfile.ID)
	require.NoError(t, err)
	assert.Equal(t, "홍길동", profile.Name)
}

func TestGetProfile_DirectoryLookupIsCached(t *testing.T) {
	directory := &fakeDirectory{profiles: map[string]*entity.UserProfile{
		"fb-uid": {ID: "fb-uid", Name: "Li Wei"},
	}}
	uc := NewProfileUseCase(repository.NewMemoryUserRepository(), directory)
	ctx := context.Background()

	profile, err := uc.GetProfile(ctx, "fb-uid")
	require.NoError(t, err)
	assert.Equal(t, "Li Wei", profile.Name)
	assert.Equal(t, entity.PenaltyNone, profile.PenaltyLevel)

	_, err = uc.GetProfile(ctx, "fb-uid")
	require.NoError(t, err)
	assert.Equal(t, 1, directory.calls)
}

func TestGetProfile_UnknownWithoutDirectory(t *testing.T) {
	uc := NewProfileUseCase(repository.NewMemoryUserRepository(), nil)

	_, err := uc.GetProfile(context.Background(), "nobody")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
