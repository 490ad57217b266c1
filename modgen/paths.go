package modgen

import (
	"os"
	"path/filepath"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/internal/util"
)

// DefaultModuleName is the module directory created under the output dir.
const DefaultModuleName = "junk"

// Fixed file names inside a generated module.
const (
	BuildFileName    = "build.gradle"
	ConsumerRules    = "consumer-rules.pro"
	ManifestFileName = "AndroidManifest.xml"
	StringsFileName  = "strings.xml"
	keepFileSuffix   = "keep.xml"
)

// ModuleLayout resolves where each artefact lives in the module tree:
//
//	<root>/build.gradle
//	<root>/consumer-rules.pro
//	<root>/src/main/AndroidManifest.xml
//	<root>/src/main/java/<package path>/<Class>.java
//	<root>/src/main/res/{layout,drawable}/<name>.xml
//	<root>/src/main/res/values/strings.xml
//	<root>/src/main/res/raw/<prefix>keep.xml
type ModuleLayout struct {
	Root string
}

// NewModuleLayout roots a module named moduleName under outputDir.
func NewModuleLayout(outputDir, moduleName string) ModuleLayout {
	return ModuleLayout{Root: filepath.Join(outputDir, moduleName)}
}

func (l ModuleLayout) main() string { return filepath.Join(l.Root, "src", "main") }

// JavaRoot is the source root that mirrors package paths.
func (l ModuleLayout) JavaRoot() string { return filepath.Join(l.main(), "java") }

// ResRoot is the Android resource root.
func (l ModuleLayout) ResRoot() string { return filepath.Join(l.main(), "res") }

// Source returns the .java path of a class.
func (l ModuleLayout) Source(pkg, className string) string {
	return filepath.Join(l.JavaRoot(), util.PackageDir(pkg), className+".java")
}

// Resource returns res/<kind>/<name>.xml.
func (l ModuleLayout) Resource(kind, name string) string {
	return filepath.Join(l.ResRoot(), kind, name+".xml")
}

func (l ModuleLayout) Manifest() string  { return filepath.Join(l.main(), ManifestFileName) }
func (l ModuleLayout) Strings() string   { return filepath.Join(l.ResRoot(), "values", StringsFileName) }
func (l ModuleLayout) BuildFile() string { return filepath.Join(l.Root, BuildFileName) }
func (l ModuleLayout) CodeRules() string { return filepath.Join(l.Root, ConsumerRules) }

// ResourceRules returns res/raw/<prefix>keep.xml.
func (l ModuleLayout) ResourceRules(prefix string) string {
	return filepath.Join(l.ResRoot(), "raw", prefix+keepFileSuffix)
}

// FileWriter is the only way generators touch the filesystem.
type FileWriter interface {
	WriteFile(path string, data []byte) error
	RemoveAll(path string) error
}

// DiskWriter writes straight to the local filesystem, creating parents.
type DiskWriter struct{}

// WriteFile creates parent directories and writes data.
func (DiskWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// RemoveAll deletes path recursively; a missing path is not an error.
func (DiskWriter) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}
