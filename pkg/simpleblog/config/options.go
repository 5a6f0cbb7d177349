package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithStorageURL configures storage from a URL, see ParseStorageURL
func WithStorageURL(raw string) Option {
	return func(c *ServerConfig) error {
		storage, err := ParseStorageURL(raw)
		if err != nil {
			return err
		}
		c.Storage = storage
		return nil
	}
}

// WithMemoryStorage keeps collections in process memory (for testing)
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.Storage = StorageConfig{Type: StorageMemory}
		return nil
	}
}

// WithFilesystemStorage stores collections as files under baseDir
func WithFilesystemStorage(baseDir string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}
		c.Storage = StorageConfig{Type: StorageFS, BaseDir: baseDir}
		return nil
	}
}

// WithS3Storage stores collections as objects in bucket
func WithS3Storage(bucket, region string) Option {
	return func(c *ServerConfig) error {
		if bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if region == "" {
			region = "us-east-1"
		}
		c.Storage = StorageConfig{Type: StorageS3, Bucket: bucket, Region: region}
		return nil
	}
}

// WithS3Endpoint sets a custom S3 endpoint (for MinIO, LocalStack, etc.)
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		if c.Storage.Type != StorageS3 {
			return fmt.Errorf("S3 endpoint requires s3 storage, got %q", c.Storage.Type)
		}
		c.Storage.Endpoint = endpoint
		c.Storage.UsePathStyle = usePathStyle
		return nil
	}
}

// WithS3Credentials sets static AWS credentials for S3 storage
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		if c.Storage.Type != StorageS3 {
			return fmt.Errorf("S3 credentials require s3 storage, got %q", c.Storage.Type)
		}
		c.Storage.AccessKeyID = accessKeyID
		c.Storage.SecretAccessKey = secretAccessKey
		return nil
	}
}

// WithPostgresStorage stores collections as rows in a PostgreSQL table
func WithPostgresStorage(databaseURL, schema string) Option {
	return func(c *ServerConfig) error {
		if databaseURL == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.Storage = StorageConfig{Type: StoragePostgres, DatabaseURL: databaseURL, DBSchema: schema}
		return nil
	}
}

// WithCollectionPrefix sets the key prefix for all collections
func WithCollectionPrefix(prefix string) Option {
	return func(c *ServerConfig) error {
		c.CollectionPrefix = prefix
		return nil
	}
}

// WithCatalogLanguage sets the language used to collate titles
func WithCatalogLanguage(tag string) Option {
	return func(c *ServerConfig) error {
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("invalid catalog language %q: %w", tag, err)
		}
		c.CatalogLanguage = tag
		return nil
	}
}
