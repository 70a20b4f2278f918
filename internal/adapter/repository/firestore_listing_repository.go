package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

// listingCollections maps each listing kind to its collection and the field
// holding the owner's uid.
var listingCollections = map[entity.ListingKind]struct {
	name       string
	ownerField string
}{
	entity.KindShop:       {"shops", "ownerId"},
	entity.KindTrade:      {"trade_items", "sellerId"},
	entity.KindJob:        {"job_profiles", "userId"},
	entity.KindRealEstate: {"real_estate_items", "userId"},
}

func newListing(kind entity.ListingKind) entity.Listing {
	switch kind {
	case entity.KindShop:
		return &entity.Shop{}
	case entity.KindTrade:
		return &entity.TradeItem{}
	case entity.KindJob:
		return &entity.JobProfile{}
	case entity.KindRealEstate:
		return &entity.RealEstateItem{}
	}
	return nil
}

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) collection(kind entity.ListingKind) (*firestore.CollectionRef, error) {
	c, ok := listingCollections[kind]
	if !ok {
		return nil, errors.BadRequest("Unknown listing kind "+string(kind), nil)
	}
	return r.client.Collection(c.name), nil
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing entity.Listing) error {
	col, err := r.collection(listing.Kind())
	if err != nil {
		return err
	}

	if _, err := col.Doc(listing.ListingID()).Create(ctx, listing); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("listing " + listing.ListingID() + " already exists")
		}
		return errors.Internal("Failed to create listing", err)
	}
	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, kind entity.ListingKind, id string) (entity.Listing, error) {
	col, err := r.collection(kind)
	if err != nil {
		return nil, err
	}

	doc, err := col.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	listing := newListing(kind)
	if err := doc.DataTo(listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	return listing, nil
}

func (r *firestoreListingRepository) List(ctx context.Context, kind entity.ListingKind, filter repository.ListingFilter, limit, offset int) ([]entity.Listing, int64, error) {
	col, err := r.collection(kind)
	if err != nil {
		return nil, 0, err
	}

	query := col.Query
	if filter.OwnerID != "" {
		query = query.Where(listingCollections[kind].ownerField, "==", filter.OwnerID)
	}
	if filter.Category != "" && kind == entity.KindShop {
		query = query.Where("category", "==", string(filter.Category))
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count listings", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var listings []entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate listings", err)
		}

		listing := newListing(kind)
		if err := doc.DataTo(listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listings = append(listings, listing)
	}

	return listings, total, nil
}
