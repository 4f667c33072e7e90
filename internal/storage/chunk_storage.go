package storage

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const DefaultChunkSize = 255 * 1024

// DB is the subset of pgxpool.Pool used by ChunkStorage.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// ChunkStorage splits blobs into fixed-size rows of the image_chunks table,
// numbered from zero, under a named bucket.
type ChunkStorage struct {
	db        DB
	bucket    string
	chunkSize int
}

func NewChunkStorage(db DB, bucket string, chunkSize int) *ChunkStorage {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ChunkStorage{db: db, bucket: bucket, chunkSize: chunkSize}
}

// Save writes every chunk in a single transaction, so a failed upload leaves
// no partial blob behind.
func (cs *ChunkStorage) Save(ctx context.Context, id string, data io.Reader) (int64, error) {
	tx, err := cs.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO image_chunks (bucket, files_id, n, data) VALUES ($1, $2, $3, $4)`

	buf := make([]byte, cs.chunkSize)
	var total int64
	for n := 0; ; n++ {
		read, readErr := io.ReadFull(data, buf)
		if read > 0 {
			if _, err := tx.Exec(ctx, query, cs.bucket, id, n, buf[:read]); err != nil {
				return 0, err
			}
			total += int64(read)
		}
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return 0, readErr
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return total, nil
}

// Get streams chunks in order. Each chunk is fetched with its own query as the
// reader drains, so no connection is held while the caller writes to a slow
// client. A blob with no chunks reads as empty; callers decide existence from
// the image metadata.
func (cs *ChunkStorage) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	return &chunkReader{ctx: ctx, cs: cs, id: id}, nil
}

func (cs *ChunkStorage) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM image_chunks WHERE bucket = $1 AND files_id = $2`
	_, err := cs.db.Exec(ctx, query, cs.bucket, id)
	return err
}

type chunkReader struct {
	ctx  context.Context
	cs   *ChunkStorage
	id   string
	next int
	buf  []byte
	done bool
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.done {
			return 0, io.EOF
		}
		if err := r.fetch(); err != nil {
			r.done = true
			return 0, err
		}
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// fetch loads chunk r.next into r.buf. A missing chunk ends the blob.
func (r *chunkReader) fetch() error {
	query := `SELECT data FROM image_chunks WHERE bucket = $1 AND files_id = $2 AND n = $3`

	err := r.cs.db.QueryRow(r.ctx, query, r.cs.bucket, r.id, r.next).Scan(&r.buf)
	if errors.Is(err, pgx.ErrNoRows) {
		r.buf = nil
		return io.EOF
	}
	if err != nil {
		return err
	}
	r.next++
	return nil
}

func (r *chunkReader) Close() error {
	r.done = true
	r.buf = nil
	return nil
}
