package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/langsb16-collab/chinafood0205/pkg/config"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

// Clients bundles what the service needs from a Firebase project.
type Clients struct {
	Auth      *FirebaseAuthClient
	Firestore *firestore.Client
}

func (c *Clients) Close() error {
	return c.Firestore.Close()
}

// Ping reads at most one document to confirm Firestore is reachable.
func (c *Clients) Ping(ctx context.Context) error {
	iter := c.Firestore.Collection("chat_sessions").Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

// credentials prefers inline service-account JSON over a key file. With
// neither, application default credentials are used.
func credentials(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.FirebaseCredentialsJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))}, nil
	}
	if cfg.FirebaseCredentialsPath != "" {
		if _, err := os.Stat(cfg.FirebaseCredentialsPath); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", cfg.FirebaseCredentialsPath, err)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseCredentialsPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseCredentialsPath)}, nil
	}
	logger.Info("Using application default credentials for Firebase")
	return nil, nil
}

func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	opts, err := credentials(cfg)
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase Auth: %w", err)
	}

	fs, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("create Firestore client: %w", err)
	}

	return &Clients{
		Auth:      NewFirebaseAuthClient(authClient),
		Firestore: fs,
	}, nil
}
