package config

import (
	"context"
	"testing"

	"github.com/tendant/simple-blog/pkg/simpleblog"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got: %s", cfg.Port)
	}
	if cfg.Storage.Type != StorageMemory {
		t.Errorf("expected memory storage, got: %s", cfg.Storage.Type)
	}
	if cfg.CatalogLanguage != "en" {
		t.Errorf("expected catalog language en, got: %s", cfg.CatalogLanguage)
	}
	if cfg.IsProduction() {
		t.Error("expected development environment by default")
	}
}

func TestWithPort(t *testing.T) {
	cfg, err := Load(WithPort("9090"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got: %s", cfg.Port)
	}
}

func TestWithPortEmpty(t *testing.T) {
	_, err := Load(WithPort(""))
	if err == nil {
		t.Error("expected error for empty port, got nil")
	}
}

func TestWithEnvironment(t *testing.T) {
	cfg, err := Load(WithEnvironment("production"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production, got: %s", cfg.Environment)
	}
}

func TestStorageOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		wantType  string
		wantError bool
	}{
		{"memory", []Option{WithMemoryStorage()}, StorageMemory, false},
		{"filesystem", []Option{WithFilesystemStorage("/tmp/blog")}, StorageFS, false},
		{"filesystem empty dir", []Option{WithFilesystemStorage("")}, "", true},
		{"s3", []Option{WithS3Storage("bucket", ""), WithS3Endpoint("http://localhost:9000", true), WithS3Credentials("k", "s")}, StorageS3, false},
		{"s3 empty bucket", []Option{WithS3Storage("", "us-west-2")}, "", true},
		{"s3 endpoint without s3", []Option{WithS3Endpoint("http://localhost:9000", true)}, "", true},
		{"postgres", []Option{WithPostgresStorage("postgres://localhost/blog", "blog")}, StoragePostgres, false},
		{"postgres missing url", []Option{WithPostgresStorage("", "")}, "", true},
		{"storage url", []Option{WithStorageURL("file:///var/blog")}, StorageFS, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.opts...)
			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if cfg.Storage.Type != tt.wantType {
				t.Errorf("expected storage type %s, got: %s", tt.wantType, cfg.Storage.Type)
			}
		})
	}
}

func TestWithS3StorageDefaultRegion(t *testing.T) {
	cfg, err := Load(WithS3Storage("bucket", ""))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Storage.Region != "us-east-1" {
		t.Errorf("expected us-east-1, got: %s", cfg.Storage.Region)
	}
}

func TestWithCatalogLanguage(t *testing.T) {
	cfg, err := Load(WithCatalogLanguage("de"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(cfg.CatalogOptions()) != 1 {
		t.Errorf("expected one catalog option")
	}

	if _, err := Load(WithCatalogLanguage("not a language!")); err == nil {
		t.Error("expected error for invalid language, got nil")
	}
}

func TestBuildService_Memory(t *testing.T) {
	cfg, err := Load(WithCollectionPrefix("data/"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	svc, err := cfg.BuildService(context.Background(), nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	tag, err := svc.CreateTag(context.Background(), "go")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if tag.Name != "go" {
		t.Errorf("expected tag go, got %q", tag.Name)
	}
}

func TestBuildService_Filesystem(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(WithFilesystemStorage(dir))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	store, err := cfg.BuildBlobStore(context.Background())
	if err != nil {
		t.Fatalf("build store: %v", err)
	}

	svc, err := simpleblog.New(simpleblog.WithBlobStore(StorageFS, store))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.CreateCategory(context.Background(), "Go"); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := store.GetObjectMeta(context.Background(), simpleblog.CategoriesKey); err != nil {
		t.Errorf("expected categories.json to exist: %v", err)
	}
}
