package modgen

import "math/rand/v2"

// RootActivityCount is how many activities go directly under the root
// package: rand[0,perPackage) + perPackage/2. Zero when perPackage is zero.
func RootActivityCount(rng *rand.Rand, perPackage int) int {
	if perPackage <= 0 {
		return 0
	}
	return rng.IntN(perPackage) + perPackage/2
}

// Files emitted per activity (class, helper, layout, drawable) and per module
// (manifest, strings, build file, code rules).
const (
	filesPerActivity = 4
	fixedFiles       = 4
)

// Volume describes the size range a configuration can produce.
type Volume struct {
	MinActivities      int     `json:"min_activities" yaml:"min_activities"`
	MaxActivities      int     `json:"max_activities" yaml:"max_activities"`
	ExpectedActivities float64 `json:"expected_activities" yaml:"expected_activities"`
	MinFiles           int     `json:"min_files" yaml:"min_files"`
	MaxFiles           int     `json:"max_files" yaml:"max_files"`
	ExpectedFiles      float64 `json:"expected_files" yaml:"expected_files"`
}

// Estimate predicts output volume without generating anything. The root
// activity count is the only random term.
func Estimate(packageCount, perPackage int, resourcePrefix string) Volume {
	base := packageCount * perPackage
	v := Volume{MinActivities: base, MaxActivities: base, ExpectedActivities: float64(base)}
	if perPackage > 0 {
		v.MinActivities += perPackage / 2
		v.MaxActivities += perPackage - 1 + perPackage/2
		v.ExpectedActivities += float64(perPackage-1)/2 + float64(perPackage/2)
	}

	fixed := fixedFiles
	if resourcePrefix != "" {
		fixed++
	}
	v.MinFiles = v.MinActivities*filesPerActivity + fixed
	v.MaxFiles = v.MaxActivities*filesPerActivity + fixed
	v.ExpectedFiles = v.ExpectedActivities*filesPerActivity + float64(fixed)
	return v
}
