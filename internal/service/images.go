package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dining-reviews/internal/database"
	"dining-reviews/internal/logging"
	"dining-reviews/internal/metrics"
	"dining-reviews/internal/models"
	"dining-reviews/internal/storage"

	"github.com/jaevor/go-nanoid"
)

const (
	imageIDLength      = 21
	maxIDRetries       = 10
	defaultContentType = "application/octet-stream"
)

type ImageService struct {
	files     ImageFileStore
	blobs     storage.BlobStorage
	bucket    string
	chunkSize int
	newID     func() string
}

func NewImageService(files ImageFileStore, blobs storage.BlobStorage, bucket string, chunkSize int) (*ImageService, error) {
	generateID, err := nanoid.Standard(imageIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return &ImageService{
		files:     files,
		blobs:     blobs,
		bucket:    bucket,
		chunkSize: chunkSize,
		newID:     generateID,
	}, nil
}

func (s *ImageService) generateUniqueID(ctx context.Context) (string, error) {
	for i := 0; i < maxIDRetries; i++ {
		id := s.newID()
		exists, err := s.files.ImageFileExists(ctx, s.bucket, id)
		if err != nil {
			return "", fmt.Errorf("failed to check for image existence: %w", err)
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxIDRetries)
}

// Upload stores data and records its metadata. If the metadata cannot be
// written the stored bytes are removed again.
func (s *ImageService) Upload(ctx context.Context, filename, contentType string, data io.Reader) (*models.Image, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	id, err := s.generateUniqueID(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.blobs.Save(ctx, id, data)
	if err != nil {
		return nil, fmt.Errorf("saving image bytes: %w", err)
	}

	img, err := s.files.CreateImageFile(ctx, database.CreateImageParams{
		ID:          id,
		Bucket:      s.bucket,
		Filename:    filename,
		ContentType: contentType,
		Length:      n,
		ChunkSize:   s.chunkSize,
	})
	if err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), id); delErr != nil {
			logging.Error().Err(delErr).Str("image_id", id).Msg("failed to remove bytes of unrecorded image")
		}
		return nil, fmt.Errorf("recording image metadata: %w", err)
	}

	metrics.ImageUploadBytes.Add(float64(n))
	return img, nil
}

// Open returns the image metadata and a stream of its bytes. The caller owns
// the stream and must close it.
func (s *ImageService) Open(ctx context.Context, id string) (*models.Image, io.ReadCloser, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("%w: image id is required", ErrInvalidInput)
	}

	img, err := s.files.GetImageFile(ctx, s.bucket, id)
	if err != nil {
		return nil, nil, err
	}
	if img == nil {
		return nil, nil, fmt.Errorf("%w: image %s", ErrNotFound, id)
	}

	stream, err := s.blobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, nil, fmt.Errorf("%w: image %s has no stored bytes", ErrNotFound, id)
		}
		return nil, nil, err
	}

	return img, stream, nil
}

func (s *ImageService) Exists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	return s.files.ImageFileExists(ctx, s.bucket, id)
}

// Delete removes the image metadata, then its bytes. Bytes that cannot be
// removed are logged and left behind.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: image id is required", ErrInvalidInput)
	}

	deleted, err := s.files.DeleteImageFile(ctx, s.bucket, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: image %s", ErrNotFound, id)
	}

	if err := s.blobs.Delete(ctx, id); err != nil {
		logging.Warn().Err(err).Str("image_id", id).Msg("image metadata removed but bytes remain")
	}
	return nil
}
