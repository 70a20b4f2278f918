package repository

import (
	"context"
	"sync"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

type memoryListingRepository struct {
	mu       sync.RWMutex
	listings map[entity.ListingKind][]entity.Listing
}

func NewMemoryListingRepository() repository.ListingRepository {
	return &memoryListingRepository{
		listings: make(map[entity.ListingKind][]entity.Listing),
	}
}

// Create prepends listing to the collection of its kind.
func (r *memoryListingRepository) Create(ctx context.Context, listing entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := listing.Kind()
	for _, l := range r.listings[kind] {
		if l.ListingID() == listing.ListingID() {
			return errors.Conflict("listing " + listing.ListingID() + " already exists")
		}
	}

	next := make([]entity.Listing, 0, len(r.listings[kind])+1)
	next = append(next, listing)
	next = append(next, r.listings[kind]...)
	r.listings[kind] = next
	return nil
}

func (r *memoryListingRepository) GetByID(ctx context.Context, kind entity.ListingKind, id string) (entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.listings[kind] {
		if l.ListingID() == id {
			return l, nil
		}
	}
	return nil, errors.NotFound("Listing", nil)
}

func (r *memoryListingRepository) List(ctx context.Context, kind entity.ListingKind, filter repository.ListingFilter, limit, offset int) ([]entity.Listing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []entity.Listing
	for _, l := range r.listings[kind] {
		if filter.OwnerID != "" && l.Owner() != filter.OwnerID {
			continue
		}
		if filter.Category != "" {
			shop, ok := l.(*entity.Shop)
			if !ok || shop.Category != filter.Category {
				continue
			}
		}
		matched = append(matched, l)
	}

	start, end := pageBounds(len(matched), limit, offset)
	return append([]entity.Listing(nil), matched[start:end]...), int64(len(matched)), nil
}
