package database

import (
	"context"
	"errors"

	"dining-reviews/internal/models"

	"github.com/jackc/pgx/v5"
)

type CreateImageParams struct {
	ID          string
	Bucket      string
	Filename    string
	ContentType string
	Length      int64
	ChunkSize   int
}

func (q *Queries) CreateImageFile(ctx context.Context, arg CreateImageParams) (*models.Image, error) {
	query := `
		INSERT INTO image_files (id, bucket, filename, content_type, length, chunk_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, bucket, filename, content_type, length, chunk_size, upload_date
	`
	var img models.Image
	err := q.db.QueryRow(ctx, query,
		arg.ID, arg.Bucket, arg.Filename, arg.ContentType, arg.Length, arg.ChunkSize,
	).Scan(
		&img.ID, &img.Bucket, &img.Filename, &img.ContentType, &img.Length, &img.ChunkSize, &img.UploadDate,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// GetImageFile returns nil, nil when no image with the id exists in bucket.
func (q *Queries) GetImageFile(ctx context.Context, bucket, id string) (*models.Image, error) {
	query := `
		SELECT id, bucket, filename, content_type, length, chunk_size, upload_date
		FROM image_files
		WHERE bucket = $1 AND id = $2
	`
	var img models.Image
	err := q.db.QueryRow(ctx, query, bucket, id).Scan(
		&img.ID, &img.Bucket, &img.Filename, &img.ContentType, &img.Length, &img.ChunkSize, &img.UploadDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (q *Queries) ImageFileExists(ctx context.Context, bucket, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM image_files WHERE bucket = $1 AND id = $2)`
	err := q.db.QueryRow(ctx, query, bucket, id).Scan(&exists)
	return exists, err
}

func (q *Queries) DeleteImageFile(ctx context.Context, bucket, id string) (bool, error) {
	query := `DELETE FROM image_files WHERE bucket = $1 AND id = $2`
	res, err := q.db.Exec(ctx, query, bucket, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
