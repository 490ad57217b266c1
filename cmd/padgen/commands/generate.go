package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/padgen/am"
	"github.com/teranos/padgen/archive"
	"github.com/teranos/padgen/display"
	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/logger"
	"github.com/teranos/padgen/modgen"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a padding module",
	Long: `Generate a self-consistent Android library module of padding code.

The module directory is deleted and recreated on every run. Settings come
from padgen.toml, PADGEN_* environment variables and the flags below.

Examples:
  padgen generate                          # Use configuration as-is
  padgen generate -p 10 -a 5 --seed 42     # Reproducible, larger module
  padgen generate --archive                # Also write a zip bundle
  padgen generate --watch                  # Regenerate when padgen.toml changes`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addGenerationFlags(GenerateCmd)
	GenerateCmd.Flags().Bool("archive", false, "Pack the module into a zip bundle after generation")
	GenerateCmd.Flags().Bool("watch", false, "Regenerate whenever the config file changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, generationFlags)
	if err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchAndGenerate(cmd, cfg)
	}
	_, err = generate(cmd.Context(), cmd, cfg)
	return err
}

// generate runs one generation and the optional bundle step.
func generate(ctx context.Context, cmd *cobra.Command, cfg *am.Config) (*modgen.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts.Progress = newEmitter(cmd)
	opts.Logger = logger.ComponentLogger("modgen")

	session, err := modgen.NewSession(opts)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithRunID(ctx, session.RunID())

	res, err := session.Run(ctx)
	if err != nil {
		return nil, err
	}

	var bundle string
	if cfg.Archive.Enabled {
		bundle = filepath.Join(cfg.ArchiveDir(),
			archive.BundleName(cfg.Module.Name, cfg.Module.PackageName, cfg.Module.Suffix))
		if err := packBundle(ctx, res.ModuleDir, bundle, opts.Progress); err != nil {
			return res, err
		}
	}

	if !display.ShouldOutputJSON(cmd) {
		rows := [][2]string{
			{"Module", res.ModuleDir},
			{"Seed", strconv.FormatUint(res.Seed, 10)},
			{"Packages", strconv.Itoa(len(res.Packages))},
			{"Activities", strconv.Itoa(res.Activities)},
			{"String keys", strconv.Itoa(res.StringKeys)},
			{"Files", strconv.Itoa(res.Files)},
			{"Failures", strconv.Itoa(res.Failures)},
			{"Duration", res.Duration.String()},
		}
		if bundle != "" {
			rows = append(rows, [2]string{"Bundle", bundle})
		}
		if err := display.Table(cmd.OutOrStdout(), [2]string{"Run", res.RunID}, rows); err != nil {
			return res, err
		}
	}
	return res, nil
}

// packBundle zips the module into bundle, logging under the run id ctx
// carries.
func packBundle(ctx context.Context, moduleDir, bundle string, progress modgen.ProgressEmitter) error {
	n, err := archive.Pack(moduleDir, bundle)
	if err != nil {
		return errors.Wrap(err, "failed to pack module")
	}
	logger.LoggerFromContext(ctx).Infow("Packed module",
		logger.FieldPath, bundle,
		logger.FieldCount, n)
	progress.EmitInfo(fmt.Sprintf("Packed %d files into %s", n, bundle))
	return nil
}

// watchAndGenerate generates once, then again after every change to the
// config file until the command's context is cancelled.
func watchAndGenerate(cmd *cobra.Command, cfg *am.Config) error {
	path := configFlag(cmd)
	if path == "" {
		path = am.FindProjectConfig()
	}
	if path == "" {
		return errors.WithHint(
			errors.New("--watch needs a config file to watch"),
			"run 'padgen am init' or pass --config")
	}

	ctx := cmd.Context()
	if _, err := generate(ctx, cmd, cfg); err != nil {
		// keep watching; the next save may fix it
		logger.Errorw("Generation failed", logger.FieldError, err)
	}

	watcher, err := am.NewConfigWatcher(path)
	if err != nil {
		return err
	}
	defer watcher.Stop()
	am.SetGlobalWatcher(watcher)
	defer am.SetGlobalWatcher(nil)

	watcher.SetLoader(func() (*am.Config, error) {
		am.Reset()
		return loadConfig(cmd, generationFlags)
	})

	// the watcher runs loader and callback under one lock per reload
	watcher.OnReload(func(cfg *am.Config) error {
		_, err := generate(ctx, cmd, cfg)
		return err
	})
	watcher.Start()

	logger.Infow("Watching config for changes", logger.FieldPath, path)
	<-ctx.Done()
	return nil
}
