// Package idgen generates entity identifiers of the form
// prefix_<base36 unix millis>_<6 base36 random chars>.
//
// IDs sort by creation time within a prefix and are unique in practice within
// a process. They are not guaranteed unique across machines or under clock
// skew; user-facing uniqueness is enforced on names and slugs instead.
package idgen

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength = 6
)

// Generator produces prefixed identifiers. The zero value is not usable;
// create one with New or use the package-level Generate.
type Generator struct {
	mu  sync.Mutex
	now func() time.Time
	rnd *rand.Rand
}

// Option configures a Generator
type Option func(*Generator)

// WithClock sets the time source used for the timestamp segment
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithSeed makes the random suffix deterministic
func WithSeed(seed1, seed2 uint64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewPCG(seed1, seed2))
	}
}

// New creates a Generator using the wall clock and a randomly seeded source
func New(opts ...Option) *Generator {
	g := &Generator{
		now: time.Now,
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new identifier with the given prefix
func (g *Generator) Generate(prefix string) string {
	ms := g.now().UnixMilli()

	g.mu.Lock()
	suffix := make([]byte, suffixLength)
	for i := range suffix {
		suffix[i] = alphabet[g.rnd.IntN(len(alphabet))]
	}
	g.mu.Unlock()

	var b strings.Builder
	b.Grow(len(prefix) + 2 + 9 + suffixLength)
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(ms, 36))
	b.WriteByte('_')
	b.Write(suffix)
	return b.String()
}

var defaultGenerator = New()

// Generate returns a new identifier from the default generator
func Generate(prefix string) string {
	return defaultGenerator.Generate(prefix)
}
