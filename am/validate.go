package am

import (
	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/modgen"
)

// Validate checks that the configuration can drive a generation run.
// Every error is marked errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.InvalidConfigf("output.dir cannot be empty")
	}
	if c.Module.PackageName == "" {
		return errors.InvalidConfigf("module.package_name cannot be empty")
	}
	if c.Generation.PackageCount < 0 {
		return errors.InvalidConfigf("generation.package_count must be >= 0, got %d", c.Generation.PackageCount)
	}
	if c.Generation.ActivitiesPerPackage < 0 {
		return errors.InvalidConfigf("generation.activities_per_package must be >= 0, got %d", c.Generation.ActivitiesPerPackage)
	}
	if c.Generation.Workers < 1 || c.Generation.Workers > modgen.MaxWorkers {
		return errors.InvalidConfigf("generation.workers must be in [1,%d], got %d", modgen.MaxWorkers, c.Generation.Workers)
	}

	opts, err := c.Options()
	if err != nil {
		return err
	}
	return opts.Validate()
}
