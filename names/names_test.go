package names

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/padgen/errors"
)

func newTestGenerator(opts ...Option) *Generator {
	return New(rand.New(rand.NewPCG(7, 11)), opts...)
}

func TestPackageSegment_Shape(t *testing.T) {
	g := newTestGenerator()
	pattern := regexp.MustCompile(`^[a-z]{2,9}$`)

	for i := 0; i < 2000; i++ {
		seg, err := g.PackageSegment()
		require.NoError(t, err)
		assert.Regexp(t, pattern, seg)
		assert.False(t, g.IsReserved(seg), "reserved segment %q", seg)
	}
}

func TestName_Shape(t *testing.T) {
	g := newTestGenerator()
	pattern := regexp.MustCompile(`^[a-z]{4,11}$`)

	for i := 0; i < 2000; i++ {
		name, err := g.Name()
		require.NoError(t, err)
		assert.Regexp(t, pattern, name)
		assert.False(t, g.IsReserved(name), "reserved name %q", name)
	}
}

func TestClassName_Capitalised(t *testing.T) {
	g := newTestGenerator()
	for i := 0; i < 200; i++ {
		name, err := g.ClassName()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z][a-z]{4,11}$`, name)
	}
}

func TestDefaultReserved(t *testing.T) {
	reserved := DefaultReserved()
	for _, w := range []string{"null", "class", "while", "int", "String", "goto"} {
		_, ok := reserved[w]
		assert.True(t, ok, "%q should be reserved", w)
	}
	_, ok := reserved["button"]
	assert.False(t, ok)
}

func TestWithReserved_Rejects(t *testing.T) {
	// Reserve every name the unrestricted generator produces first, then
	// check a generator with the same seed skips all of them.
	probe := newTestGenerator()
	var banned []string
	for i := 0; i < 5; i++ {
		name, err := probe.Name()
		require.NoError(t, err)
		banned = append(banned, name)
	}

	g := newTestGenerator(WithReserved(banned))
	for i := 0; i < 50; i++ {
		name, err := g.Name()
		require.NoError(t, err)
		assert.NotContains(t, banned, name)
	}
}

func TestPrefixedName_ChecksWholeName(t *testing.T) {
	// Reserve "s"+name for everything the unprefixed draw yields first, so
	// only a check on the combined string can skip them.
	probe := newTestGenerator()
	var banned []string
	for i := 0; i < 5; i++ {
		name, err := probe.Name()
		require.NoError(t, err)
		banned = append(banned, "s"+name)
	}

	g := newTestGenerator(WithReserved(banned))
	for i := 0; i < 50; i++ {
		name, err := g.PrefixedName("s")
		require.NoError(t, err)
		assert.Regexp(t, `^s[a-z]{4,11}$`, name)
		assert.NotContains(t, banned, name)
	}
}

func TestFillerAndColor(t *testing.T) {
	g := newTestGenerator()
	for i := 0; i < 200; i++ {
		filler := g.Filler(1000)
		assert.Less(t, len(filler), 1000)
		assert.Regexp(t, `^[a-zA-Z0-9]*$`, filler)
		assert.Regexp(t, `^#[0-9a-f]{6}$`, g.Color())
	}
}

func TestUnique_Claims(t *testing.T) {
	g := newTestGenerator()
	scope := NewScope("ids")

	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		name, err := g.Unique(scope, g.Name)
		require.NoError(t, err)
		assert.False(t, seen[name], "duplicate %q", name)
		seen[name] = true
	}
	assert.Equal(t, 300, scope.Len())
}

func TestUnique_ExhaustedIsBounded(t *testing.T) {
	g := newTestGenerator(WithMaxAttempts(5))
	scope := NewScope("members", "onCreate")

	calls := 0
	_, err := g.Unique(scope, func() (string, error) {
		calls++
		return "onCreate", nil
	})

	require.Error(t, err)
	assert.Equal(t, 5, calls)
	assert.True(t, errors.Is(err, errors.ErrNamesExhausted))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestScope_PrePopulated(t *testing.T) {
	scope := NewScope("classes", "Toast", "View")
	assert.False(t, scope.Claim("Toast"))
	assert.True(t, scope.Claim("Helper"))
	assert.False(t, scope.Claim("Helper"))
	assert.Equal(t, "classes", scope.Name())
}

func TestSameSeedSameNames(t *testing.T) {
	a := newTestGenerator()
	b := newTestGenerator()
	for i := 0; i < 100; i++ {
		na, _ := a.Name()
		nb, _ := b.Name()
		require.Equal(t, na, nb)
	}
}
