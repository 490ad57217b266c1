package modgen

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/internal/util"
	"github.com/teranos/padgen/logger"
)

// Result summarises a finished run.
type Result struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Seed      uint64 `json:"seed" yaml:"seed"`
	ModuleDir string `json:"module_dir" yaml:"module_dir"`
	// Packages are the generated sub-packages, in generation order.
	Packages   []string      `json:"packages" yaml:"packages"`
	Activities int           `json:"activities" yaml:"activities"`
	StringKeys int           `json:"string_keys" yaml:"string_keys"`
	Files      int           `json:"files" yaml:"files"`
	Failures   int           `json:"failures" yaml:"failures"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Run generates a module with a fresh session.
func Run(ctx context.Context, opts Options) (*Result, error) {
	s, err := NewSession(opts)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// ErrSessionUsed is returned by a second Run on the same session.
var ErrSessionUsed = errors.New("session already ran")

// Run resets the module directory and generates it from scratch: packages
// of activities, the root-level activities, then the aggregated files.
// The tree is only consistent once Run returns without error. A session
// runs once; its registry and scopes describe that run only.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if !s.ran.CompareAndSwap(false, true) {
		return nil, errors.WithHint(ErrSessionUsed, "create a new session with NewSession or call modgen.Run")
	}
	start := time.Now()
	progress := s.opts.Progress
	root := s.layout.Root

	s.log.Infow("Starting generation",
		logger.FieldModule, root,
		logger.FieldSeed, s.seed,
		logger.FieldWorkers, s.opts.Workers)

	progress.EmitStage(StageReset, fmt.Sprintf("Clearing %s", root))
	if err := s.opts.Writer.RemoveAll(root); err != nil {
		progress.EmitError(StageReset, err)
		return nil, err
	}

	progress.EmitStage(StagePackages, fmt.Sprintf("Generating %d packages", s.opts.PackageCount))
	packages, err := s.generatePackages(ctx)
	if err != nil {
		progress.EmitError(StagePackages, err)
		return nil, err
	}

	rootCount := RootActivityCount(s.rng(), s.opts.ActivitiesPerPackage)
	progress.EmitStage(StageRoot, fmt.Sprintf("Generating %d root activities", rootCount))
	if err := s.generateActivities(ctx, s.opts.AppPackage, rootCount); err != nil {
		progress.EmitError(StageRoot, err)
		return nil, err
	}

	progress.EmitStage(StageAggregate, "Writing manifest, strings, build file and rules")
	if err := s.Aggregate(); err != nil {
		progress.EmitError(StageAggregate, err)
		return nil, err
	}

	res := &Result{
		RunID:      s.runID,
		Seed:       s.seed,
		ModuleDir:  root,
		Packages:   packages,
		Activities: len(s.registry.Activities()),
		StringKeys: len(s.registry.StringKeys()),
		Files:      int(s.files.Load()),
		Failures:   int(s.failures.Load()),
		Duration:   time.Since(start),
	}

	s.log.Infow("Generation complete",
		logger.FieldModule, root,
		logger.FieldCount, res.Activities,
		logger.FieldTotalCount, res.Files,
		logger.FieldDurationMS, res.Duration.Milliseconds())
	progress.EmitComplete(map[string]interface{}{
		"run_id":      res.RunID,
		"module_dir":  res.ModuleDir,
		"packages":    len(res.Packages),
		"activities":  res.Activities,
		"string_keys": res.StringKeys,
		"files":       res.Files,
		"failures":    res.Failures,
		"duration_ms": res.Duration.Milliseconds(),
	})
	return res, nil
}

// generatePackages names every package up front, then generates them on
// up to Workers goroutines. Each package runs on a forked session with its
// own seed and registry shard; shards merge back in package order.
func (s *Session) generatePackages(ctx context.Context) ([]string, error) {
	n := s.opts.PackageCount
	packages := make([]string, n)
	seeds := make([]uint64, n)
	for i := range packages {
		seg, err := s.names.Unique(s.packages, s.names.PackageSegment)
		if err != nil {
			return nil, err
		}
		packages[i] = util.JoinPackage(s.opts.AppPackage, seg)
		seeds[i] = s.rng().Uint64()
	}

	shards := make([]*Session, n)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, pkg := range packages {
		shard := s.fork(seeds[i])
		shards[i] = shard
		g.Go(func() error {
			if err := shard.generateActivities(gctx, pkg, s.opts.ActivitiesPerPackage); err != nil {
				return err
			}
			s.opts.Progress.EmitProgress(int(done.Add(1)), map[string]interface{}{
				"package": pkg,
				"total":   n,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, shard := range shards {
		s.registry.Merge(shard.registry)
	}
	return packages, nil
}

// generateActivities emits count activities under pkg. Under PolicyContinue
// a failed activity is counted and skipped; configuration errors still stop
// the run.
func (s *Session) generateActivities(ctx context.Context, pkg string, count int) error {
	log := s.log.With(logger.FieldPackage, pkg)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		base, err := s.names.Unique(s.bases, s.names.Name)
		if err != nil {
			return err
		}
		if _, err := s.GenerateActivity(pkg, base); err != nil {
			if s.opts.FailurePolicy == PolicyContinue && !errors.Is(err, errors.ErrInvalidConfig) {
				s.failures.Add(1)
				log.Warnw("Skipping failed activity", logger.FieldError, err)
				continue
			}
			return errors.Wrapf(err, "generate activity %d of %d in %s", i+1, count, pkg)
		}
	}
	log.Debugw("Package done", logger.FieldCount, count)
	return nil
}
