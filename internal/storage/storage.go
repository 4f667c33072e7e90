package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dining-reviews/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStorage holds image bytes keyed by an id chosen by the caller.
type BlobStorage interface {
	// Save stores data under id and returns the number of bytes written.
	Save(ctx context.Context, id string, data io.Reader) (int64, error)
	// Get opens the blob for reading. The caller must close it.
	Get(ctx context.Context, id string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, id string) error
}

// New builds the blob driver selected by cfg.Driver.
func New(cfg config.StorageConfig, pool *pgxpool.Pool) (BlobStorage, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocalStorage(cfg.Path)
	case config.StorageDriverPostgres:
		if pool == nil {
			return nil, errors.New("postgres storage driver requires a database pool")
		}
		return NewChunkStorage(pool, cfg.Bucket, cfg.ChunkSize), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
