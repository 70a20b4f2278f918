package usecase

import (
	"context"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

type ProfileUseCase struct {
	userRepo  repository.UserRepository
	directory ProfileDirectory
}

// NewProfileUseCase serves profiles from userRepo. directory may be nil; when
// set, unknown users are looked up there and cached in userRepo.
func NewProfileUseCase(userRepo repository.UserRepository, directory ProfileDirectory) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:  userRepo,
		directory: directory,
	}
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	profile, err := uc.userRepo.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, "NOT_FOUND") || uc.directory == nil {
		return nil, err
	}

	profile, err = uc.directory.GetProfile(ctx, userID)
	if err != nil {
		logger.Warn("GetProfile Error: %s not found in directory: %v", userID, err)
		return nil, err
	}
	if profile.PenaltyLevel == "" {
		profile.PenaltyLevel = entity.PenaltyNone
	}
	if err := uc.userRepo.Save(ctx, profile); err != nil {
		logger.Warn("GetProfile: failed to cache profile of %s: %v", userID, err)
	}
	return profile, nil
}
