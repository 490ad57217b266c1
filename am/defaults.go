package am

import "github.com/spf13/viper"

// Config file locations and permissions
const (
	ConfigFileName        = "padgen.toml"
	UserConfigDir         = ".padgen"
	EnvPrefix             = "PADGEN"
	DefaultDirPermissions = 0755
)

// Default generation parameters
const (
	DefaultOutputDir            = "build/padgen"
	DefaultModuleName           = "junk"
	DefaultPackageName          = "com.dev.junk"
	DefaultSuffix               = "plugin"
	DefaultPackageCount         = 5
	DefaultActivitiesPerPackage = 3
	DefaultResourcePrefix       = "junk_"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", DefaultOutputDir)

	v.SetDefault("module.name", DefaultModuleName)
	v.SetDefault("module.package_name", DefaultPackageName)
	v.SetDefault("module.suffix", DefaultSuffix)

	v.SetDefault("generation.package_count", DefaultPackageCount)
	v.SetDefault("generation.activities_per_package", DefaultActivitiesPerPackage)
	v.SetDefault("generation.resource_prefix", DefaultResourcePrefix)
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.workers", 1)
	v.SetDefault("generation.failure_policy", "abort")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.dir", "")
}

// DefaultConfig returns the configuration SetDefaults describes.
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}
