package repository

import (
	"context"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

type ListingFilter struct {
	Category entity.Category
	OwnerID  string
}

type ListingRepository interface {
	Create(ctx context.Context, listing entity.Listing) error
	GetByID(ctx context.Context, kind entity.ListingKind, id string) (entity.Listing, error)
	// List returns listings of kind, newest first.
	List(ctx context.Context, kind entity.ListingKind, filter ListingFilter, limit, offset int) ([]entity.Listing, int64, error)
}
