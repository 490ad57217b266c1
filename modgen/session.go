// Package modgen generates a self-consistent Android library module full of
// padding code: entry-point classes, helper classes, layouts, vector
// drawables, a string table, a manifest, a build file and shrinker rules.
//
// Every cross-file reference (view ids, string keys, class names, package
// paths) is produced and consumed inside one Session, so the emitted tree is
// consistent by construction:
//
//	res, err := modgen.Run(ctx, modgen.Options{
//	    OutputDir:            "build/out",
//	    AppPackage:           "com.dev.junk.plugin",
//	    PackageCount:         5,
//	    ActivitiesPerPackage: 3,
//	    ResourcePrefix:       "junk_",
//	})
package modgen

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/padgen/logger"
	"github.com/teranos/padgen/names"
)

// Session owns all mutable state of one run. Nothing outlives it, so two
// sessions never share randomness, registries or claimed names.
type Session struct {
	*shared

	names    *names.Generator
	registry *Registry
}

// shared is the part of a session every worker sees.
type shared struct {
	opts   Options
	runID  string
	seed   uint64
	layout ModuleLayout
	log    *zap.SugaredLogger

	// module-wide name scopes
	packages *names.Scope
	bases    *names.Scope
	drawable *names.Scope
	strings  *names.Scope

	classMu sync.Mutex
	classes map[string]*names.Scope

	files    atomic.Int64
	failures atomic.Int64
	ran      atomic.Bool
}

// NewSession validates opts and prepares a run. The module tree is not
// touched until Run.
func NewSession(opts Options) (*Session, error) {
	opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	runID := uuid.NewString()

	log := opts.Logger
	if log == nil {
		log = logger.ComponentLogger("modgen")
	}

	sh := &shared{
		opts:     opts,
		runID:    runID,
		seed:     seed,
		layout:   NewModuleLayout(opts.OutputDir, opts.ModuleName),
		log:      log.With(logger.FieldRunID, runID),
		packages: names.NewScope("packages"),
		bases:    names.NewScope("activity base names"),
		drawable: names.NewScope("drawables"),
		strings:  names.NewScope("string keys"),
		classes:  make(map[string]*names.Scope),
	}

	return &Session{
		shared:   sh,
		names:    names.New(newRand(seed)),
		registry: NewRegistry(),
	}, nil
}

// fork returns a worker session with its own random source and registry
// shard, sharing scopes, writer and layout with s.
func (s *Session) fork(seed uint64) *Session {
	return &Session{
		shared:   s.shared,
		names:    names.New(newRand(seed)),
		registry: NewRegistry(),
	}
}

// RunID identifies the session in logs and results.
func (s *Session) RunID() string { return s.runID }

// Seed is the effective seed; re-running with it reproduces the tree.
func (s *Session) Seed() uint64 { return s.seed }

// Layout returns where the module is written.
func (s *Session) Layout() ModuleLayout { return s.layout }

// Registry returns the session's module registry.
func (s *Session) Registry() *Registry { return s.registry }

func (s *Session) rng() *rand.Rand { return s.names.Rand() }

// classScope returns the class-name scope of pkg, creating it on first use.
func (s *Session) classScope(pkg string) *names.Scope {
	s.classMu.Lock()
	defer s.classMu.Unlock()
	scope, ok := s.classes[pkg]
	if !ok {
		scope = names.NewScope("classes in "+pkg, takenClassNames()...)
		s.classes[pkg] = scope
	}
	return scope
}

func (s *Session) writeFile(path string, content string) error {
	if err := s.opts.Writer.WriteFile(path, []byte(content)); err != nil {
		return err
	}
	s.files.Add(1)
	s.log.Debugw("Wrote file", logger.FieldPath, path)
	return nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
