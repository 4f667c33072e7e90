package database

import (
	"context"
	"errors"

	"dining-reviews/internal/models"

	"github.com/jackc/pgx/v5"
)

const reviewColumns = `id, user_id, location, review_text, rating, visited_date, review_image_id, created_date`

func scanReview(row pgx.Row) (*models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.Location,
		&review.ReviewText,
		&review.Rating,
		&review.VisitedDate,
		&review.ReviewImageID,
		&review.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func collectReviews(rows pgx.Rows) ([]models.Review, error) {
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

type CreateReviewParams struct {
	UserID        int64
	Location      string
	ReviewText    string
	Rating        int
	VisitedDate   string
	ReviewImageID *string
}

func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (*models.Review, error) {
	query := `
		INSERT INTO reviews (user_id, location, review_text, rating, visited_date, review_image_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reviewColumns

	return scanReview(q.db.QueryRow(ctx, query,
		arg.UserID,
		arg.Location,
		arg.ReviewText,
		arg.Rating,
		arg.VisitedDate,
		arg.ReviewImageID,
	))
}

// GetReviewByID returns nil, nil when the review does not exist.
func (q *Queries) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(q.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}

// The list queries return rows in insertion order.

func (q *Queries) ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = $1 ORDER BY id ASC`

	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (q *Queries) ListReviewsByLocation(ctx context.Context, location string) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE location = $1 ORDER BY id ASC`

	rows, err := q.db.Query(ctx, query, location)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

// ListLatestReviews returns the limit most recently inserted reviews across
// every location, newest first.
func (q *Queries) ListLatestReviews(ctx context.Context, limit int) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY id DESC LIMIT $1`

	rows, err := q.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

// UpdateReviewParams holds the mutable review fields; nil leaves a field as is.
type UpdateReviewParams struct {
	Rating      *int
	Location    *string
	ReviewText  *string
	VisitedDate *string
}

func (q *Queries) UpdateReview(ctx context.Context, id int64, arg UpdateReviewParams) (models.UpdateResult, error) {
	query := `
		WITH target AS (
			SELECT id FROM reviews WHERE id = $1
		), updated AS (
			UPDATE reviews SET
				rating       = COALESCE($2::integer, rating),
				location     = COALESCE($3::text, location),
				review_text  = COALESCE($4::text, review_text),
				visited_date = COALESCE($5::text, visited_date)
			WHERE id = $1 AND (
				COALESCE($2::integer, rating) IS DISTINCT FROM rating OR
				COALESCE($3::text, location) IS DISTINCT FROM location OR
				COALESCE($4::text, review_text) IS DISTINCT FROM review_text OR
				COALESCE($5::text, visited_date) IS DISTINCT FROM visited_date
			)
			RETURNING id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM updated)
	`

	result := models.UpdateResult{Acknowledged: true}
	err := q.db.QueryRow(ctx, query, id, arg.Rating, arg.Location, arg.ReviewText, arg.VisitedDate).
		Scan(&result.MatchedCount, &result.ModifiedCount)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return result, nil
}

// DeleteReview removes a review and returns the removed row so callers can
// release what it referenced. It returns nil, nil when nothing matched.
func (q *Queries) DeleteReview(ctx context.Context, id int64) (*models.Review, error) {
	query := `DELETE FROM reviews WHERE id = $1 RETURNING ` + reviewColumns

	review, err := scanReview(q.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}
