package am

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/padgen/errors"
)

// UnknownKeys decodes path strictly against Config and returns the keys
// Config has no field for, sorted. Viper silently ignores these, so a typo
// like "generation.package_cuont" would otherwise fall back to a default.
func UnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	var keys []string
	for _, k := range md.Undecoded() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys, nil
}
