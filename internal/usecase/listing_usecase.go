package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/ratelimit"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	profiles    *ProfileUseCase
	rateLimiter RateLimiter
	ids         *service.PostIDGenerator
	now         func() time.Time
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	profiles *ProfileUseCase,
	rateLimiter RateLimiter,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		profiles:    profiles,
		rateLimiter: rateLimiter,
		ids:         service.NewPostIDGenerator(time.Now),
		now:         time.Now,
	}
}

// CreateListing maps a submitted post form to a listing owned by userID and
// stores it at the head of its kind's collection.
func (uc *ListingUseCase) CreateListing(ctx context.Context, userID string, kind entity.ListingKind, form service.ListingForm) (entity.Listing, error) {
	if uc.rateLimiter != nil {
		if ok, wait := uc.rateLimiter.Allow(userID, ratelimit.ActionCreatePost); !ok {
			logger.Warn("CreateListing Rate Limited: User %s", userID)
			return nil, errors.TooManyRequests(fmt.Sprintf("Rate limit exceeded. Please wait %v", wait.Round(time.Second)))
		}
	}

	owner, err := uc.profiles.GetProfile(ctx, userID)
	if err != nil {
		logger.Error("CreateListing Error: owner %s: %v", userID, err)
		return nil, err
	}

	listing, err := service.MapListing(kind, form, *owner, uc.ids.Next(), uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		logger.Error("CreateListing Error: %v", err)
		return nil, err
	}
	logger.Info("CreateListing: %s %s by %s", kind, listing.ListingID(), userID)
	return listing, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, kind entity.ListingKind, filter repository.ListingFilter, limit, offset int) ([]entity.Listing, int64, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, 0, errors.Validation("category", "is not a known category")
	}
	return uc.listingRepo.List(ctx, kind, filter, limit, offset)
}

func (uc *ListingUseCase) GetListing(ctx context.Context, kind entity.ListingKind, id string) (entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, kind, id)
}

// Directions returns the map hand-off URL for a shop, labelled with the shop
// name in lang.
func (uc *ListingUseCase) Directions(ctx context.Context, shopID string, mode service.TravelMode, mobile bool, lang entity.Language) (string, error) {
	listing, err := uc.listingRepo.GetByID(ctx, entity.KindShop, shopID)
	if err != nil {
		return "", err
	}
	shop, ok := listing.(*entity.Shop)
	if !ok {
		return "", errors.Internal("Listing is not a shop", nil)
	}

	name := entity.Resolve(shop, "name", lang)
	return service.DirectionsURL(name, shop.Lat, shop.Lng, mode, mobile), nil
}
