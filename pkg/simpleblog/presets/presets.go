// Package presets provides ready-made service configurations for common use
// cases. Presets remove boilerplate while remaining customizable.
package presets

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/tendant/simple-blog/pkg/simpleblog"
	fsstorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/fs"
	memorystorage "github.com/tendant/simple-blog/pkg/simpleblog/storage/memory"
)

// NewDevelopment creates a service for local development. Collections are
// stored as JSON files under ./dev-data so they survive restarts and can be
// inspected by hand.
//
// The returned cleanup function removes the storage directory.
//
//	svc, cleanup, err := presets.NewDevelopment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
func NewDevelopment(opts ...DevelopmentOption) (simpleblog.Service, func(), error) {
	cfg := &devConfig{
		storageDir: "./dev-data",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	fsBackend, err := fsstorage.New(fsstorage.Config{
		BaseDir: cfg.storageDir,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create filesystem storage: %w", err)
	}

	svc, err := simpleblog.New(
		simpleblog.WithBlobStore("fs", fsBackend),
		simpleblog.WithCollectionPrefix(cfg.collectionPrefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}

	cleanup := func() {
		os.RemoveAll(cfg.storageDir)
	}

	return svc, cleanup, nil
}

// NewTesting creates an isolated in-memory service for a test. With
// WithTestFixtures the sample data from Fixtures is loaded first.
//
//	func TestMyFeature(t *testing.T) {
//	    svc := presets.NewTesting(t, presets.WithTestFixtures())
//	    ...
//	}
func NewTesting(t testing.TB, opts ...TestingOption) simpleblog.Service {
	t.Helper()

	cfg := &testConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	options := []simpleblog.Option{
		simpleblog.WithBlobStore("memory", memorystorage.New()),
	}
	options = append(options, cfg.serviceOptions...)

	svc, err := simpleblog.New(options...)
	if err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}

	if cfg.fixtures {
		if err := LoadFixtures(context.Background(), svc); err != nil {
			t.Fatalf("failed to load fixtures: %v", err)
		}
	}

	return svc
}

// devConfig holds development preset configuration
type devConfig struct {
	storageDir       string
	collectionPrefix string
}

// testConfig holds testing preset configuration
type testConfig struct {
	fixtures       bool
	serviceOptions []simpleblog.Option
}

// DevelopmentOption is a functional option for NewDevelopment
type DevelopmentOption func(*devConfig)

// WithDevStorage sets the development storage directory
func WithDevStorage(dir string) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.storageDir = dir
	}
}

// WithDevCollectionPrefix stores the collections under prefix inside the
// storage directory
func WithDevCollectionPrefix(prefix string) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.collectionPrefix = prefix
	}
}

// TestingOption is a functional option for NewTesting
type TestingOption func(*testConfig)

// WithTestFixtures loads the sample data from Fixtures
func WithTestFixtures() TestingOption {
	return func(cfg *testConfig) {
		cfg.fixtures = true
	}
}

// WithServiceOptions passes extra options to simpleblog.New, e.g. a fixed clock
func WithServiceOptions(opts ...simpleblog.Option) TestingOption {
	return func(cfg *testConfig) {
		cfg.serviceOptions = append(cfg.serviceOptions, opts...)
	}
}
