package service

import (
	"context"

	"dining-reviews/internal/database"
	"dining-reviews/internal/models"
)

// The store interfaces below are satisfied by *database.Store.

type UserStore interface {
	CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserByUsername(ctx context.Context, arg database.UpdateUserParams) (bool, error)
	DeleteUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, arg database.CreateReviewParams) (*models.Review, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error)
	ListReviewsByLocation(ctx context.Context, location string) ([]models.Review, error)
	ListLatestReviews(ctx context.Context, limit int) ([]models.Review, error)
	UpdateReview(ctx context.Context, id int64, arg database.UpdateReviewParams) (models.UpdateResult, error)
	DeleteReview(ctx context.Context, id int64) (*models.Review, error)
}

type ImageFileStore interface {
	CreateImageFile(ctx context.Context, arg database.CreateImageParams) (*models.Image, error)
	GetImageFile(ctx context.Context, bucket, id string) (*models.Image, error)
	ImageFileExists(ctx context.Context, bucket, id string) (bool, error)
	DeleteImageFile(ctx context.Context, bucket, id string) (bool, error)
}

// Publisher receives review lifecycle events for the live feed.
type Publisher interface {
	PublishReview(eventType string, review models.Review)
}

type nopPublisher struct{}

func (nopPublisher) PublishReview(string, models.Review) {}
