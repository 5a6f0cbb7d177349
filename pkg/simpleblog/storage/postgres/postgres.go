package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

// DefaultTable holds one row per collection document
const DefaultTable = "blog_documents"

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Backend stores each key as a row. Upload is a single upsert statement, so
// a document is always replaced as a whole.
type Backend struct {
	db    DBTX
	table string
}

// New creates a PostgreSQL backend using the given table name. An empty
// table uses DefaultTable.
func New(db DBTX, table string) *Backend {
	if table == "" {
		table = DefaultTable
	}
	return &Backend{db: db, table: table}
}

// NewWithPool creates a PostgreSQL backend on a connection pool
func NewWithPool(pool *pgxpool.Pool) *Backend {
	return New(pool, DefaultTable)
}

// EnsureSchema creates the document table if it does not exist
func (b *Backend) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			body BYTEA NOT NULL,
			etag TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, pgx.Identifier{b.table}.Sanitize())

	if _, err := b.db.Exec(ctx, query); err != nil {
		return b.handlePostgresError("ensure_schema", err)
	}
	return nil
}

// GetObjectMeta retrieves metadata for a stored document
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*simpleblog.ObjectMeta, error) {
	query := fmt.Sprintf(`SELECT octet_length(body), etag, updated_at FROM %s WHERE key = $1`,
		pgx.Identifier{b.table}.Sanitize())

	meta := &simpleblog.ObjectMeta{Key: objectKey}
	err := b.db.QueryRow(ctx, query, objectKey).Scan(&meta.Size, &meta.ETag, &meta.UpdatedAt)
	if err != nil {
		return nil, b.handleKeyError("get_meta", objectKey, err)
	}
	return meta, nil
}

// Upload inserts or replaces the document stored under objectKey
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, body, etag, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET body = EXCLUDED.body, etag = EXCLUDED.etag, updated_at = EXCLUDED.updated_at`,
		pgx.Identifier{b.table}.Sanitize())

	if _, err := b.db.Exec(ctx, query, objectKey, body, uuid.NewString(), time.Now().UTC()); err != nil {
		return b.handlePostgresError("upload", err)
	}
	return nil
}

// Download returns the document stored under objectKey
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE key = $1`, pgx.Identifier{b.table}.Sanitize())

	var body []byte
	if err := b.db.QueryRow(ctx, query, objectKey).Scan(&body); err != nil {
		return nil, b.handleKeyError("download", objectKey, err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// Delete removes the document stored under objectKey
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, pgx.Identifier{b.table}.Sanitize())

	tag, err := b.db.Exec(ctx, query, objectKey)
	if err != nil {
		return b.handlePostgresError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", simpleblog.ErrObjectNotFound, objectKey)
	}
	return nil
}

func (b *Backend) handleKeyError(operation, objectKey string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", simpleblog.ErrObjectNotFound, objectKey)
	}
	return b.handlePostgresError(operation, err)
}

// Error handling helper
func (b *Backend) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("table %s does not exist - run EnsureSchema: %w", b.table, err)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s): %w", operation, pgErr.Message, pgErr.Code, err)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}
