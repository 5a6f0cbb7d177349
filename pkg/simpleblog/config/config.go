package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/language"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
	fsstorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/fs"
	memorystorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/memory"
	pgstorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/postgres"
	s3storage "github.com/tendant/simple-blog/pkg/simpleblog/storage/s3"
)

// Storage backend types
const (
	StorageMemory   = "memory"
	StorageFS       = "fs"
	StorageS3       = "s3"
	StoragePostgres = "postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:            "8080",
		Environment:     "development",
		Storage:         StorageConfig{Type: StorageMemory},
		CatalogLanguage: "en",
	}
}

// ServerConfig represents configuration for the simple-blog service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	Storage StorageConfig

	// CollectionPrefix is prepended to every collection key, e.g. "data/"
	CollectionPrefix string

	// CatalogLanguage is the BCP 47 tag used to collate titles
	CatalogLanguage string
}

// StorageConfig selects and configures the blob store holding the collections
type StorageConfig struct {
	Type string // "memory", "fs", "s3", "postgres"

	// Filesystem
	BaseDir string

	// S3
	Bucket                 string
	Region                 string
	KeyPrefix              string
	Endpoint               string
	UsePathStyle           bool
	AccessKeyID            string
	SecretAccessKey        string
	CreateBucketIfNotExist bool

	// Postgres
	DatabaseURL string
	DBSchema    string
	Table       string
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageFS:
		if c.Storage.BaseDir == "" {
			return errors.New("base directory is required for fs storage")
		}
	case StorageS3:
		if c.Storage.Bucket == "" {
			return errors.New("bucket is required for s3 storage")
		}
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("database_url is required for postgres storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}

	if _, err := language.Parse(c.CatalogLanguage); err != nil {
		return fmt.Errorf("invalid catalog language %q: %w", c.CatalogLanguage, err)
	}

	return nil
}

// IsProduction reports whether the environment is production
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// CatalogOptions returns the query options implied by the configuration
func (c *ServerConfig) CatalogOptions() []catalog.Option {
	tag, err := language.Parse(c.CatalogLanguage)
	if err != nil {
		tag = language.English
	}
	return []catalog.Option{catalog.WithLanguage(tag)}
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(ctx context.Context, logger *slog.Logger) (simpleblog.Service, error) {
	store, err := c.BuildBlobStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend %s: %w", c.Storage.Type, err)
	}

	options := []simpleblog.Option{
		simpleblog.WithBlobStore(c.Storage.Type, store),
		simpleblog.WithCollectionPrefix(c.CollectionPrefix),
	}
	if logger != nil {
		options = append(options, simpleblog.WithLogger(logger))
	}

	return simpleblog.New(options...)
}

// BuildBlobStore creates the configured BlobStore. For postgres the pool
// stays open for the life of the process and the document table is created
// if missing.
func (c *ServerConfig) BuildBlobStore(ctx context.Context) (simpleblog.BlobStore, error) {
	s := c.Storage
	switch s.Type {
	case StorageMemory:
		return memorystorage.New(), nil

	case StorageFS:
		return fsstorage.New(fsstorage.Config{BaseDir: s.BaseDir})

	case StorageS3:
		return s3storage.New(s3storage.Config{
			Region:                 s.Region,
			Bucket:                 s.Bucket,
			Prefix:                 s.KeyPrefix,
			AccessKeyID:            s.AccessKeyID,
			SecretAccessKey:        s.SecretAccessKey,
			Endpoint:               s.Endpoint,
			UsePathStyle:           s.UsePathStyle,
			CreateBucketIfNotExist: s.CreateBucketIfNotExist,
		})

	case StoragePostgres:
		pool, err := newPool(ctx, s.DatabaseURL, s.DBSchema)
		if err != nil {
			return nil, err
		}
		backend := pgstorage.New(pool, s.Table)
		if err := backend.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return backend, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", s.Type)
	}
}

func newPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SET search_path TO "+pgx.Identifier{schema}.Sanitize())
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}
