package modgen

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/names"
)

// Limits on caller-supplied counts. Anything above is treated as a typo
// rather than a request for a multi-gigabyte module.
const (
	MaxPackageCount         = 1000
	MaxActivitiesPerPackage = 1000
	MaxWorkers              = 64
)

// FailurePolicy decides what a failed activity does to the rest of the run.
type FailurePolicy string

const (
	// PolicyAbort stops the run at the first failed activity.
	PolicyAbort FailurePolicy = "abort"
	// PolicyContinue skips the failed activity and keeps generating.
	PolicyContinue FailurePolicy = "continue"
)

// ParseFailurePolicy maps a config string to a FailurePolicy ("" means abort).
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicyContinue:
		return PolicyContinue, nil
	}
	return "", errors.WithHint(
		errors.InvalidConfigf("unknown failure policy %q", s),
		"use \"abort\" or \"continue\"")
}

// Options configures one generation run.
type Options struct {
	// OutputDir is the directory the module directory is created in.
	OutputDir string
	// ModuleName is the module directory name (default "junk").
	ModuleName string
	// AppPackage is the root Java package, e.g. "com.dev.junk.plugin".
	AppPackage string

	PackageCount         int
	ActivitiesPerPackage int
	// ResourcePrefix is prepended to every layout, drawable and string name.
	// Empty disables the resource-retention rule.
	ResourcePrefix string

	// Seed fixes the random source; 0 draws a fresh seed per run.
	Seed uint64
	// Workers > 1 generates packages concurrently.
	Workers       int
	FailurePolicy FailurePolicy

	Writer   FileWriter
	Progress ProgressEmitter
	Logger   *zap.SugaredLogger
}

var (
	modulePattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	segmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	prefixPattern  = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// Validate rejects options that cannot produce a well-formed module.
// Every returned error is marked errors.ErrInvalidConfig.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.OutputDir) == "" {
		return errors.InvalidConfigf("output directory is required")
	}
	if !modulePattern.MatchString(o.ModuleName) {
		return errors.InvalidConfigf("module name %q must be letters, digits, '-' or '_'", o.ModuleName)
	}
	if err := ValidatePackage(o.AppPackage); err != nil {
		return err
	}
	if o.PackageCount < 0 || o.PackageCount > MaxPackageCount {
		return errors.InvalidConfigf("package count must be in [0,%d], got %d", MaxPackageCount, o.PackageCount)
	}
	if o.ActivitiesPerPackage < 0 || o.ActivitiesPerPackage > MaxActivitiesPerPackage {
		return errors.InvalidConfigf("activities per package must be in [0,%d], got %d",
			MaxActivitiesPerPackage, o.ActivitiesPerPackage)
	}
	if o.ResourcePrefix != "" && !prefixPattern.MatchString(o.ResourcePrefix) {
		return errors.WithHint(
			errors.InvalidConfigf("resource prefix %q is not a legal resource name start", o.ResourcePrefix),
			"use lowercase letters, digits and '_', starting with a letter or '_'")
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.InvalidConfigf("workers must be in [1,%d] (0 means 1), got %d", MaxWorkers, o.Workers)
	}
	if _, err := ParseFailurePolicy(string(o.FailurePolicy)); err != nil {
		return err
	}
	return nil
}

// ValidatePackage checks a dotted Java package name: every segment a legal
// identifier and none of them a reserved word.
func ValidatePackage(pkg string) error {
	if pkg == "" {
		return errors.InvalidConfigf("application package name is required")
	}
	reserved := names.DefaultReserved()
	for _, seg := range strings.Split(pkg, ".") {
		if !segmentPattern.MatchString(seg) {
			return errors.InvalidConfigf("package %q has illegal segment %q", pkg, seg)
		}
		if _, ok := reserved[seg]; ok {
			return errors.InvalidConfigf("package %q uses reserved word %q", pkg, seg)
		}
	}
	return nil
}

func (o *Options) withDefaults() {
	if o.ModuleName == "" {
		o.ModuleName = DefaultModuleName
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.FailurePolicy == "" {
		o.FailurePolicy = PolicyAbort
	}
	if o.Writer == nil {
		o.Writer = DiskWriter{}
	}
	if o.Progress == nil {
		o.Progress = nopEmitter{}
	}
}
