// Package filtersync keeps a catalog.Filter and a URL query string in step.
// The URL seeds the filter exactly once; afterwards the filter is the source
// of truth and is mirrored back to the URL.
package filtersync

import (
	"net/url"
	"sync"

	"github.com/tendant/simple-blog/pkg/simpleblog/catalog"
)

// Location is the externally visible address whose query string carries
// the filter state.
type Location interface {
	// RawQuery returns the current query string without the leading '?'
	RawQuery() string
	// Replace swaps the query string in place without adding history
	Replace(rawQuery string) error
}

// URLLocation adapts a *url.URL to Location
type URLLocation struct {
	mu sync.RWMutex
	u  *url.URL
}

// NewURLLocation wraps u. Replace modifies u.
func NewURLLocation(u *url.URL) *URLLocation {
	return &URLLocation{u: u}
}

func (l *URLLocation) RawQuery() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.u.RawQuery
}

func (l *URLLocation) Replace(rawQuery string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.u.RawQuery = rawQuery
	return nil
}

// URL returns a copy of the current URL
func (l *URLLocation) URL() *url.URL {
	l.mu.RLock()
	defer l.mu.RUnlock()
	u := *l.u
	return &u
}

// State is the hydration state of a Synchronizer
type State int

const (
	// Pending: the URL has not been read yet and nothing is written back
	Pending State = iota
	// Synced: the filter owns the state and changes are mirrored outward
	Synced
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Synced:
		return "synced"
	default:
		return "unknown"
	}
}

// Synchronizer mediates between a filter and a Location. It is safe for
// concurrent use.
type Synchronizer struct {
	mu    sync.Mutex
	loc   Location
	state State
}

// New creates a Synchronizer in the Pending state
func New(loc Location) *Synchronizer {
	return &Synchronizer{loc: loc}
}

// State returns the current state
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hydrate decodes the location into f in a single assignment and moves to
// Synced. It reports whether hydration happened; once Synced it does
// nothing, even if the location has changed since.
func (s *Synchronizer) Hydrate(f *catalog.Filter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Synced {
		return false
	}

	// ParseQuery keeps every pair it could decode, so a single bad escape
	// does not discard the rest.
	values, _ := url.ParseQuery(s.loc.RawQuery())
	*f = Decode(values, *f)
	s.state = Synced
	return true
}

// Mirror writes Encode(f) to the location when it differs from the current
// query string. It never writes before Hydrate has run.
func (s *Synchronizer) Mirror(f catalog.Filter) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Synced {
		return false, nil
	}

	next := Encode(f)
	if next == s.loc.RawQuery() {
		return false, nil
	}
	if err := s.loc.Replace(next); err != nil {
		return false, err
	}
	return true, nil
}
