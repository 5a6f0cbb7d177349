package filtersync

import (
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
)

type recordingLocation struct {
	raw      string
	replaced []string
	err      error
}

func (l *recordingLocation) RawQuery() string { return l.raw }

func (l *recordingLocation) Replace(raw string) error {
	if l.err != nil {
		return l.err
	}
	l.raw = raw
	l.replaced = append(l.replaced, raw)
	return nil
}

func TestSynchronizer_HydrateOnce(t *testing.T) {
	loc := &recordingLocation{raw: "q=go&page=2"}
	s := New(loc)
	assert.Equal(t, Pending, s.State())

	f := catalog.DefaultFilter()
	assert.True(t, s.Hydrate(&f))
	assert.Equal(t, Synced, s.State())
	assert.Equal(t, "go", f.Q)
	assert.Equal(t, 2, f.Page)

	loc.raw = "q=rust&page=9"
	assert.False(t, s.Hydrate(&f))
	assert.Equal(t, "go", f.Q)
	assert.Equal(t, 2, f.Page)
}

func TestSynchronizer_MirrorBeforeHydrateIsNoop(t *testing.T) {
	loc := &recordingLocation{raw: "q=go"}
	s := New(loc)

	changed, err := s.Mirror(catalog.DefaultFilter())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, loc.replaced)
}

func TestSynchronizer_MirrorSuppressesUnchanged(t *testing.T) {
	loc := &recordingLocation{raw: "q=go&sort=date&order=desc&page=2"}
	s := New(loc)

	f := catalog.DefaultFilter()
	s.Hydrate(&f)

	changed, err := s.Mirror(f)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, loc.replaced)

	f.SetQuery("rust")
	changed, err = s.Mirror(f)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"q=rust&sort=date&order=desc"}, loc.replaced)

	changed, err = s.Mirror(f)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, loc.replaced, 1)
}

func TestSynchronizer_MirrorCanonicalizes(t *testing.T) {
	loc := &recordingLocation{raw: "page=1&q=go"}
	s := New(loc)

	f := catalog.DefaultFilter()
	s.Hydrate(&f)
	changed, err := s.Mirror(f)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "q=go&sort=date&order=desc", loc.raw)
}

func TestSynchronizer_MirrorError(t *testing.T) {
	boom := errors.New("navigation blocked")
	loc := &recordingLocation{err: boom}
	s := New(loc)

	f := catalog.DefaultFilter()
	s.Hydrate(&f)
	changed, err := s.Mirror(f)
	assert.ErrorIs(t, err, boom)
	assert.False(t, changed)
}

func TestSynchronizer_ConcurrentHydrate(t *testing.T) {
	u, err := url.Parse("/blogs?q=go")
	require.NoError(t, err)
	s := New(NewURLLocation(u))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		hydrated int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := catalog.DefaultFilter()
			if s.Hydrate(&f) {
				mu.Lock()
				hydrated++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, hydrated)
}

func TestURLLocation(t *testing.T) {
	u, err := url.Parse("https://example.com/blogs?q=go")
	require.NoError(t, err)
	loc := NewURLLocation(u)

	assert.Equal(t, "q=go", loc.RawQuery())
	require.NoError(t, loc.Replace("q=rust&sort=date&order=desc"))
	assert.Equal(t, "https://example.com/blogs?q=rust&sort=date&order=desc", loc.URL().String())
}
