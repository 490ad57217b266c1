package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/padgen/am"
	"github.com/teranos/padgen/display"
	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/modgen"
)

// flagKeys maps command flags to the configuration keys they override.
type flagKeys map[string]string

var generationFlags = flagKeys{
	"output":     "output.dir",
	"module":     "module.name",
	"package":    "module.package_name",
	"suffix":     "module.suffix",
	"packages":   "generation.package_count",
	"activities": "generation.activities_per_package",
	"prefix":     "generation.resource_prefix",
	"seed":       "generation.seed",
	"workers":    "generation.workers",
	"on-failure": "generation.failure_policy",
	"archive":    "archive.enabled",
}

func addGenerationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "Output directory the module is created in")
	f.String("module", "", "Module directory name")
	f.String("package", "", "Application package name, e.g. com.dev.junk")
	f.String("suffix", "", "Last application package segment")
	f.IntP("packages", "p", 0, "Number of generated sub-packages")
	f.IntP("activities", "a", 0, "Activities per sub-package")
	f.String("prefix", "", "Resource name prefix (empty disables resource keep rules)")
	f.Uint64("seed", 0, "Random seed (0 = fresh seed per run)")
	f.IntP("workers", "w", 0, "Packages generated concurrently")
	f.String("on-failure", "", "Activity failure policy: abort or continue")
}

// bindFlags binds every flag of keys that cmd defines to its config key.
// Unchanged flags fall through to env, files and defaults.
func bindFlags(cmd *cobra.Command, keys flagKeys) error {
	v := am.GetViper()
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", flag)
		}
	}
	return nil
}

// loadConfig runs the full cascade for cmd: files, --config, env, flags.
func loadConfig(cmd *cobra.Command, keys flagKeys) (*am.Config, error) {
	if path := configFlag(cmd); path != "" {
		if err := am.UseConfigFile(path); err != nil {
			return nil, err
		}
	}
	if err := bindFlags(cmd, keys); err != nil {
		return nil, err
	}
	return am.Load()
}

func configFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func verbosity(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetCount("verbose")
	return n
}

func newEmitter(cmd *cobra.Command) modgen.ProgressEmitter {
	if display.ShouldOutputJSON(cmd) {
		return display.NewJSONEmitter(cmd.OutOrStdout())
	}
	return display.NewCLIEmitter(verbosity(cmd))
}
