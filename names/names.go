// Package names produces random identifiers that are legal as Java package
// segments, class and member names, and Android resource names.
//
// A Generator never returns a reserved word. It does not guarantee uniqueness
// across calls on its own; callers that need it claim names in a Scope.
package names

import (
	"math/rand/v2"

	"github.com/teranos/padgen/errors"
)

// DefaultMaxAttempts caps every regenerate-on-collision loop.
const DefaultMaxAttempts = 100

const (
	lower        = "abcdefghijklmnopqrstuvwxyz"
	upper        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphanumeric = lower + upper + "0123456789"
	hexDigits    = "0123456789abcdef"
)

// Generator draws identifiers from a single random source.
// It is not safe for concurrent use; give each worker its own.
type Generator struct {
	rng         *rand.Rand
	reserved    map[string]struct{}
	maxAttempts int
}

// Option configures a Generator
type Option func(*Generator)

// WithReserved replaces the reserved-word set.
func WithReserved(words []string) Option {
	return func(g *Generator) {
		g.reserved = make(map[string]struct{}, len(words))
		for _, w := range words {
			g.reserved[w] = struct{}{}
		}
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Values < 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// New creates a Generator reading from rng.
func New(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:         rng,
		reserved:    DefaultReserved(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rand exposes the underlying random source for callers drawing counts and
// dimensions, so a session has exactly one source of randomness.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// IsReserved reports whether s is in the reserved-word set.
func (g *Generator) IsReserved(s string) bool {
	_, ok := g.reserved[s]
	return ok
}

// PackageSegment returns lowercase letters, length in [2,9].
func (g *Generator) PackageSegment() (string, error) {
	return g.legal(2, 9)
}

// Name returns lowercase letters, length in [4,11].
func (g *Generator) Name() (string, error) {
	return g.legal(4, 11)
}

// PrefixedName returns prefix + Name(), redrawn until the combined string
// is not reserved ("s" + "uper" would otherwise spell "super").
func (g *Generator) PrefixedName(prefix string) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		name, err := g.Name()
		if err != nil {
			return "", err
		}
		if full := prefix + name; !g.IsReserved(full) {
			return full, nil
		}
	}
	return "", exhausted(g.maxAttempts, "non-reserved name with prefix "+prefix)
}

// ClassName returns a random capital letter followed by Name().
func (g *Generator) ClassName() (string, error) {
	name, err := g.Name()
	if err != nil {
		return "", err
	}
	return g.Capital() + name, nil
}

// Capital returns one random uppercase letter.
func (g *Generator) Capital() string {
	return string(upper[g.rng.IntN(len(upper))])
}

// Filler returns [0,maxLen) characters of alphanumeric noise.
func (g *Generator) Filler(maxLen int) string {
	n := g.rng.IntN(maxLen)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphanumeric[g.rng.IntN(len(alphanumeric))]
	}
	return string(buf)
}

// Color returns a "#rrggbb" colour.
func (g *Generator) Color() string {
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i := 1; i < len(buf); i++ {
		buf[i] = hexDigits[g.rng.IntN(len(hexDigits))]
	}
	return string(buf)
}

// Unique draws from next until it yields a name scope has not seen, then
// claims it. Fails with ErrNamesExhausted after the attempt cap.
func (g *Generator) Unique(scope *Scope, next func() (string, error)) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		name, err := next()
		if err != nil {
			return "", err
		}
		if scope.Claim(name) {
			return name, nil
		}
	}
	return "", exhausted(g.maxAttempts, "unclaimed name in scope "+scope.Name())
}

func (g *Generator) legal(minLen, maxLen int) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		n := minLen + g.rng.IntN(maxLen-minLen+1)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = lower[g.rng.IntN(len(lower))]
		}
		if name := string(buf); !g.IsReserved(name) {
			return name, nil
		}
	}
	return "", exhausted(g.maxAttempts, "non-reserved identifier")
}

func exhausted(attempts int, what string) error {
	err := errors.Newf("no %s after %d attempts", what, attempts)
	err = errors.Mark(err, errors.ErrNamesExhausted)
	err = errors.Mark(err, errors.ErrInvalidConfig)
	return errors.WithHint(err, "the reserved-word set or claimed scope leaves too few legal names")
}
