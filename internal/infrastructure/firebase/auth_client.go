package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// GetProfile builds a profile from the Firebase user record.
func (f *FirebaseAuthClient) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	name := record.DisplayName
	if name == "" {
		name = record.Email
	}
	return &entity.UserProfile{
		ID:           record.UID,
		Name:         name,
		Avatar:       record.PhotoURL,
		PenaltyLevel: entity.PenaltyNone,
	}, nil
}
