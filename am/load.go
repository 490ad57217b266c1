package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/teranos/padgen/errors"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper

	// ConfigSources records which file set each key during the last load.
	ConfigSources = map[string]SourceInfo{}
)

// Load reads the padgen configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	if globalConfig != nil {
		defer mu.Unlock()
		return globalConfig, nil
	}
	mu.Unlock()

	config, err := LoadWithViper(GetViper())
	if err != nil {
		return nil, err
	}

	mu.Lock()
	globalConfig = config
	mu.Unlock()
	return config, nil
}

// GetViper returns the Viper instance for flag binding and key access
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	if viperInstance == nil {
		viperInstance = initViper()
	}
	return viperInstance
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path over the
// defaults, without the cascade or environment
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
	homedir.Reset()
}

func initViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)
	return v
}

// UserConfigPath returns ~/.padgen/padgen.toml, or "" without a home dir.
func UserConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, ConfigFileName)
}

// FindProjectConfig searches for padgen.toml from the working directory up
// to the filesystem root. Returns "" when there is none.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ConfigFiles lists the files the cascade reads, lowest precedence first.
// Only existing files are returned.
func ConfigFiles() []SourceInfo {
	var files []SourceInfo
	if user := UserConfigPath(); user != "" {
		if _, err := os.Stat(user); err == nil {
			files = append(files, SourceInfo{Source: SourceUser, Path: user})
		}
	}
	if project := FindProjectConfig(); project != "" {
		// the user file found again from inside $HOME is not a project file
		if len(files) == 0 || files[0].Path != project {
			files = append(files, SourceInfo{Source: SourceProject, Path: project})
		}
	}
	return files
}

// mergeConfigFiles merges user then project config into v.
// Precedence (lowest to highest): defaults < user < project < env vars
func mergeConfigFiles(v *viper.Viper) {
	for _, file := range ConfigFiles() {
		tempViper := viper.New()
		tempViper.SetConfigFile(file.Path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}
		// config layer, so PADGEN_* and bound flags still win
		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			continue
		}
		for _, key := range tempViper.AllKeys() {
			ConfigSources[key] = file
		}
	}
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}

// UseConfigFile merges an explicit config file (the --config flag) over the
// user and project files. Environment and bound flags still take precedence.
func UseConfigFile(path string) error {
	v := GetViper()

	tempViper := viper.New()
	tempViper.SetConfigFile(path)
	tempViper.SetConfigType("toml")
	if err := tempViper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge %s", path)
	}

	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	for _, key := range tempViper.AllKeys() {
		ConfigSources[key] = SourceInfo{Source: SourceProject, Path: path}
	}
	return nil
}
