// Package am holds padgen's configuration: defaults, the TOML file cascade,
// PADGEN_* environment overrides, validation, persistence and a file
// watcher for regenerate-on-change.
package am

import (
	"fmt"

	"github.com/teranos/padgen/internal/util"
	"github.com/teranos/padgen/modgen"
)

// Config represents the padgen configuration
type Config struct {
	Output     OutputConfig     `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Module     ModuleConfig     `mapstructure:"module" toml:"module" json:"module" yaml:"module"`
	Generation GenerationConfig `mapstructure:"generation" toml:"generation" json:"generation" yaml:"generation"`
	Archive    ArchiveConfig    `mapstructure:"archive" toml:"archive" json:"archive" yaml:"archive"`
}

// OutputConfig configures where the module is written
type OutputConfig struct {
	Dir string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`
}

// ModuleConfig names the generated module and its root package
type ModuleConfig struct {
	// Name is the module directory name (default: junk)
	Name string `mapstructure:"name" toml:"name" json:"name" yaml:"name"`
	// PackageName is the application package, e.g. com.dev.junk
	PackageName string `mapstructure:"package_name" toml:"package_name" json:"package_name" yaml:"package_name"`
	// Suffix is appended as the last package segment
	Suffix string `mapstructure:"suffix" toml:"suffix" json:"suffix" yaml:"suffix"`
}

// GenerationConfig controls output volume and run behaviour
type GenerationConfig struct {
	PackageCount         int    `mapstructure:"package_count" toml:"package_count" json:"package_count" yaml:"package_count"`
	ActivitiesPerPackage int    `mapstructure:"activities_per_package" toml:"activities_per_package" json:"activities_per_package" yaml:"activities_per_package"`
	ResourcePrefix       string `mapstructure:"resource_prefix" toml:"resource_prefix" json:"resource_prefix" yaml:"resource_prefix"`
	// Seed 0 draws a fresh seed per run
	Seed uint64 `mapstructure:"seed" toml:"seed" json:"seed" yaml:"seed"`
	// Workers is how many packages generate concurrently (default: 1)
	Workers int `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"`
	// FailurePolicy is "abort" or "continue"
	FailurePolicy string `mapstructure:"failure_policy" toml:"failure_policy" json:"failure_policy" yaml:"failure_policy"`
}

// ArchiveConfig configures the optional zip bundle
type ArchiveConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	// Dir defaults to the output dir
	Dir string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`
}

// AppPackage returns the root Java package: package name plus suffix.
func (c *Config) AppPackage() string {
	return util.JoinPackage(c.Module.PackageName, c.Module.Suffix)
}

// ArchiveDir returns where the bundle goes.
func (c *Config) ArchiveDir() string {
	if c.Archive.Dir == "" {
		return c.Output.Dir
	}
	return c.Archive.Dir
}

// Options converts the configuration into generator options. Writer,
// progress and logger are left for the caller.
func (c *Config) Options() (modgen.Options, error) {
	policy, err := modgen.ParseFailurePolicy(c.Generation.FailurePolicy)
	if err != nil {
		return modgen.Options{}, err
	}
	return modgen.Options{
		OutputDir:            c.Output.Dir,
		ModuleName:           c.Module.Name,
		AppPackage:           c.AppPackage(),
		PackageCount:         c.Generation.PackageCount,
		ActivitiesPerPackage: c.Generation.ActivitiesPerPackage,
		ResourcePrefix:       c.Generation.ResourcePrefix,
		Seed:                 c.Generation.Seed,
		Workers:              c.Generation.Workers,
		FailurePolicy:        policy,
	}, nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Output: %s, Package: %s, Packages: %d, Activities: %d, Prefix: %q}",
		c.Output.Dir, c.AppPackage(), c.Generation.PackageCount,
		c.Generation.ActivitiesPerPackage, c.Generation.ResourcePrefix)
}
