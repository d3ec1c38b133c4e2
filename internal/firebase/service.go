// File: internal/firebase/service.go
package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/firestore"
	cloudstorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

// Service wraps the Firebase Admin SDK: identity verification plus handles to
// the Firestore document store and the Cloud Storage bucket.
type Service struct {
	authClient *auth.Client
	firestore  *firestore.Client
	bucket     *cloudstorage.BucketHandle
	bucketName string
	logger     *zap.Logger
}

// NewService initializes the Firebase Admin SDK from the configured service
// account key and opens the Auth, Firestore and Storage clients.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	conf := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}
	app, err := firebase.NewApp(context.Background(), conf, opt)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	fsClient, err := app.Firestore(context.Background())
	if err != nil {
		logger.Error("Failed to get Firestore client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	storageClient, err := app.Storage(context.Background())
	if err != nil {
		logger.Error("Failed to get Cloud Storage client", zap.Error(err))
		return nil, fmt.Errorf("error getting Cloud Storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		logger.Error("Failed to open default storage bucket", zap.Error(err), zap.String("bucket", cfg.StorageBucket))
		return nil, fmt.Errorf("error opening storage bucket %s: %w", cfg.StorageBucket, err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.",
		zap.String("bucket", cfg.StorageBucket))
	return &Service{
		authClient: authClient,
		firestore:  fsClient,
		bucket:     bucket,
		bucketName: cfg.StorageBucket,
		logger:     logger,
	}, nil
}

// VerifyIDToken verifies a Firebase ID token and returns the Identity carried
// in its claims. A missing email claim normalizes to the empty string.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (shared.Identity, error) {
	if idToken == "" {
		return shared.Identity{}, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return shared.Identity{}, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	identity := shared.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.AvatarURL = picture
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", identity.UID))
	return identity, nil
}

// Firestore returns the shared Firestore client.
func (s *Service) Firestore() *firestore.Client {
	return s.firestore
}

// Bucket returns the default Cloud Storage bucket handle.
func (s *Service) Bucket() *cloudstorage.BucketHandle {
	return s.bucket
}

// BucketName returns the configured bucket name.
func (s *Service) BucketName() string {
	return s.bucketName
}

// Close releases the Firestore client. Auth and Storage clients hold no
// connections that need explicit teardown.
func (s *Service) Close() error {
	if s.firestore != nil {
		return s.firestore.Close()
	}
	return nil
}
