package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"dining-reviews/internal/database"
	"dining-reviews/internal/logging"
	"dining-reviews/internal/metrics"
	"dining-reviews/internal/models"
	"dining-reviews/internal/websocket"
)

// IndexFeedSize is how many reviews the front page feed shows.
const IndexFeedSize = 5

// ReviewImages is the part of the image store a review needs to release its photo.
type ReviewImages interface {
	ImageChecker
	Delete(ctx context.Context, id string) error
}

type ReviewService struct {
	reviews ReviewStore
	users   UserStore
	images  ReviewImages
	feed    Publisher
}

func NewReviewService(reviews ReviewStore, users UserStore, images ReviewImages, feed Publisher) *ReviewService {
	if feed == nil {
		feed = nopPublisher{}
	}
	return &ReviewService{reviews: reviews, users: users, images: images, feed: feed}
}

type CreateReviewInput struct {
	UserID        int64
	Rating        int
	Location      string
	ReviewText    string
	VisitedDate   string
	ReviewImageID *string
}

func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, models.MinRating, models.MaxRating)
	}
	if !models.IsKnownLocation(in.Location) {
		return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, in.Location)
	}

	user, err := s.users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d does not exist", ErrInvalidInput, in.UserID)
	}

	if err := checkImageRef(ctx, s.images, in.ReviewImageID); err != nil {
		return nil, err
	}

	review, err := s.reviews.CreateReview(ctx, database.CreateReviewParams{
		UserID:        in.UserID,
		Location:      in.Location,
		ReviewText:    in.ReviewText,
		Rating:        in.Rating,
		VisitedDate:   in.VisitedDate,
		ReviewImageID: in.ReviewImageID,
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.WithLabelValues(review.Location).Inc()
	s.feed.PublishReview(websocket.EventReviewCreated, *review)
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviews.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	return review, nil
}

// ListByUser returns the user's reviews, most recently inserted first.
func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	reviews, err := s.reviews.ListReviewsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	slices.Reverse(reviews)
	return reviews, nil
}

// ListByLocation returns a dining hall's reviews, most recently inserted
// first. The index feed spans every hall and keeps only the last
// IndexFeedSize insertions.
func (s *ReviewService) ListByLocation(ctx context.Context, name string) ([]models.Review, error) {
	switch {
	case name == models.IndexFeed:
		return s.reviews.ListLatestReviews(ctx, IndexFeedSize)
	case models.IsKnownLocation(name):
	default:
		return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, name)
	}

	reviews, err := s.reviews.ListReviewsByLocation(ctx, name)
	if err != nil {
		return nil, err
	}
	slices.Reverse(reviews)
	return reviews, nil
}

type UpdateReviewInput struct {
	Rating      *int
	Location    *string
	ReviewText  *string
	VisitedDate *string
}

func (in UpdateReviewInput) empty() bool {
	return in.Rating == nil && in.Location == nil && in.ReviewText == nil && in.VisitedDate == nil
}

// Update changes only the fields set in in. The id and owner never change.
func (s *ReviewService) Update(ctx context.Context, id int64, in UpdateReviewInput) (models.UpdateResult, error) {
	if in.empty() {
		return models.UpdateResult{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if in.Rating != nil && (*in.Rating < models.MinRating || *in.Rating > models.MaxRating) {
		return models.UpdateResult{}, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, models.MinRating, models.MaxRating)
	}
	if in.Location != nil && !models.IsKnownLocation(*in.Location) {
		return models.UpdateResult{}, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *in.Location)
	}

	result, err := s.reviews.UpdateReview(ctx, id, database.UpdateReviewParams{
		Rating:      in.Rating,
		Location:    in.Location,
		ReviewText:  in.ReviewText,
		VisitedDate: in.VisitedDate,
	})
	if err != nil || result.ModifiedCount == 0 {
		return result, err
	}

	updated, err := s.reviews.GetReviewByID(ctx, id)
	if err != nil {
		logging.Error().Err(err).Int64("review_id", id).Msg("failed to load updated review for feed")
		return result, nil
	}
	if updated != nil {
		s.feed.PublishReview(websocket.EventReviewUpdated, *updated)
	}
	return result, nil
}

// Delete removes a review and then, best effort, the image it referenced.
// A failed image deletion is logged and does not affect the result.
func (s *ReviewService) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	deleted, err := s.reviews.DeleteReview(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if deleted == nil {
		return models.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil
	}

	s.feed.PublishReview(websocket.EventReviewDeleted, *deleted)

	if deleted.ReviewImageID != nil {
		s.releaseImage(context.WithoutCancel(ctx), deleted.ID, *deleted.ReviewImageID)
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (s *ReviewService) releaseImage(ctx context.Context, reviewID int64, imageID string) {
	log := logging.Logger().With().Int64("review_id", reviewID).Str("image_id", imageID).Logger()

	exists, err := s.images.Exists(ctx, imageID)
	if err != nil {
		metrics.ReviewImageCascadeDeletes.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("failed to check image of deleted review")
		return
	}
	if !exists {
		metrics.ReviewImageCascadeDeletes.WithLabelValues("missing").Inc()
		log.Debug().Msg("image of deleted review already gone")
		return
	}

	if err := s.images.Delete(ctx, imageID); err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.ReviewImageCascadeDeletes.WithLabelValues("missing").Inc()
			return
		}
		metrics.ReviewImageCascadeDeletes.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("failed to delete image of deleted review")
		return
	}
	metrics.ReviewImageCascadeDeletes.WithLabelValues("deleted").Inc()
}
