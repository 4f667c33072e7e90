package service

import (
	"dining-reviews/internal/config"
	"dining-reviews/internal/storage"
)

// Services bundles the resources the HTTP layer serves.
type Services struct {
	Auth    *AuthService
	Users   *UserService
	Reviews *ReviewService
	Images  *ImageService
}

// Store is everything the services need from the database.
type Store interface {
	UserStore
	ReviewStore
	ImageFileStore
}

func New(store Store, blobs storage.BlobStorage, feed Publisher, cfg *config.Config) (*Services, error) {
	images, err := NewImageService(store, blobs, cfg.Storage.Bucket, cfg.Storage.ChunkSize)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(store, images, cfg.JWT.Secret, cfg.JWT.TTL)

	return &Services{
		Auth:    authService,
		Users:   NewUserService(store, authService, images),
		Reviews: NewReviewService(store, store, images, feed),
		Images:  images,
	}, nil
}
