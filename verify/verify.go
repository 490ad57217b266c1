// Package verify re-reads a generated module tree and checks that its files
// agree with each other: every view a layout declares is bound by its
// activity, every string an activity resolves exists, the manifest declares
// exactly the activities that have sources, no identifier is a reserved
// word, and the retention rules are anchored on the resource prefix.
package verify

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/modgen"
	"github.com/teranos/padgen/names"
)

// Check names, as they appear in Violation.Check.
const (
	CheckViewWiring     = "view-wiring"
	CheckStringKeys     = "string-keys"
	CheckManifest       = "manifest"
	CheckKeywordSafety  = "keyword-safety"
	CheckRetention      = "retention"
	CheckResourceLayout = "resources"
)

// Violation is one broken cross-file contract.
type Violation struct {
	Check   string `json:"check" yaml:"check"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return fmt.Sprintf("[%s] %s", v.Check, v.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Check, v.Path, v.Message)
}

// Report is the outcome of Module.
type Report struct {
	ModuleDir  string      `json:"module_dir" yaml:"module_dir"`
	Package    string      `json:"package" yaml:"package"`
	Activities int         `json:"activities" yaml:"activities"`
	Helpers    int         `json:"helpers" yaml:"helpers"`
	StringKeys int         `json:"string_keys" yaml:"string_keys"`
	ViewIDs    int         `json:"view_ids" yaml:"view_ids"`
	Digest     string      `json:"digest" yaml:"digest"`
	Violations []Violation `json:"violations" yaml:"violations"`
}

// OK reports whether no check failed.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

func (r *Report) add(check, path, format string, args ...interface{}) {
	r.Violations = append(r.Violations, Violation{Check: check, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Module checks the module rooted at dir. prefix is the resource prefix
// the module was generated with ("" when retention was not requested).
//
// Structural problems are reported as violations; the error return is
// reserved for a tree that cannot be read at all.
func Module(dir, prefix string) (*Report, error) {
	layout := modgen.ModuleLayout{Root: dir}
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, "module directory %s", dir)
	}

	report := &Report{ModuleDir: dir}
	reserved := names.DefaultReserved()

	manifest, err := readManifest(layout.Manifest())
	if err != nil {
		return nil, err
	}
	report.Package = manifest.Package

	keys, err := readStringKeys(layout.Strings())
	if err != nil {
		return nil, err
	}
	report.StringKeys = len(keys)
	for key, n := range keys {
		if n > 1 {
			report.add(CheckStringKeys, layout.Strings(), "key %q defined %d times", key, n)
		}
		if _, bad := reserved[key]; bad {
			report.add(CheckKeywordSafety, layout.Strings(), "string key %q is reserved", key)
		}
	}

	sources, err := readSources(layout.JavaRoot())
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool, len(manifest.Activities))
	for _, a := range manifest.Activities {
		if declared[a] {
			report.add(CheckManifest, layout.Manifest(), "activity %s declared twice", a)
		}
		declared[a] = true
	}

	for _, src := range sources {
		checkIdentifiers(report, src, reserved)

		if !src.Activity {
			report.Helpers++
			continue
		}
		report.Activities++

		if !declared[src.QualifiedName()] {
			report.add(CheckManifest, src.Path, "activity %s is not declared", src.QualifiedName())
		}
		delete(declared, src.QualifiedName())

		for _, key := range src.StringRefs {
			if keys[key] == 0 {
				report.add(CheckStringKeys, src.Path, "string %q is not in the string table", key)
			}
		}

		checkWiring(report, layout, src, reserved)
	}

	var missing []string
	for a := range declared {
		missing = append(missing, a)
	}
	sort.Strings(missing)
	for _, a := range missing {
		report.add(CheckManifest, layout.Manifest(), "declared activity %s has no source", a)
	}

	checkRetention(report, layout, manifest.Package, prefix)

	report.Digest, err = Digest(dir)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func checkIdentifiers(report *Report, src *Source, reserved map[string]struct{}) {
	for _, seg := range strings.Split(src.Package, ".") {
		if _, bad := reserved[seg]; bad {
			report.add(CheckKeywordSafety, src.Path, "package segment %q is reserved", seg)
		}
	}
	if _, bad := reserved[src.ClassName]; bad {
		report.add(CheckKeywordSafety, src.Path, "class name %q is reserved", src.ClassName)
	}
	for _, m := range src.Methods {
		if _, bad := reserved[m]; bad {
			report.add(CheckKeywordSafety, src.Path, "method name %q is reserved", m)
		}
	}
}

// checkWiring compares the ids an activity binds with the ids its layout
// declares, in order, and checks the layout's drawable exists.
func checkWiring(report *Report, layout modgen.ModuleLayout, src *Source, reserved map[string]struct{}) {
	if src.Layout == "" {
		report.add(CheckViewWiring, src.Path, "activity binds no layout")
		return
	}
	path := layout.Resource("layout", src.Layout)
	res, err := readLayout(path)
	if err != nil {
		report.add(CheckViewWiring, src.Path, "layout %s: %v", src.Layout, err)
		return
	}
	report.ViewIDs += len(res.IDs)

	for _, id := range res.IDs {
		if _, bad := reserved[id]; bad {
			report.add(CheckKeywordSafety, path, "view id %q is reserved", id)
		}
	}

	if len(src.Bindings) != len(res.IDs) {
		report.add(CheckViewWiring, src.Path, "binds %d views, layout %s declares %d",
			len(src.Bindings), src.Layout, len(res.IDs))
	} else {
		for i := range res.IDs {
			if src.Bindings[i] != res.IDs[i] {
				report.add(CheckViewWiring, src.Path, "binding %d is %q, layout declares %q",
					i, src.Bindings[i], res.IDs[i])
				break
			}
		}
	}

	for _, d := range res.Drawables {
		if _, bad := reserved[d]; bad {
			report.add(CheckKeywordSafety, path, "drawable name %q is reserved", d)
		}
		if _, err := os.Stat(layout.Resource("drawable", d)); err != nil {
			report.add(CheckResourceLayout, path, "background @drawable/%s does not exist", d)
		}
	}
}

// checkRetention requires the package keep rule, and a resource keep file
// exactly when prefix is set, with every pattern anchored on prefix.
func checkRetention(report *Report, layout modgen.ModuleLayout, pkg, prefix string) {
	rules, err := os.ReadFile(layout.CodeRules())
	if err != nil {
		report.add(CheckRetention, layout.CodeRules(), "missing code rules")
	} else if !strings.Contains(string(rules), "-keep class "+pkg+".**") {
		report.add(CheckRetention, layout.CodeRules(), "no keep rule for %s", pkg)
	}

	keepFiles, _ := filepath.Glob(filepath.Join(layout.ResRoot(), "raw", "*keep.xml"))
	if prefix == "" {
		for _, f := range keepFiles {
			report.add(CheckRetention, f, "resource keep file present without a resource prefix")
		}
		return
	}
	if len(keepFiles) == 0 {
		report.add(CheckRetention, layout.ResourceRules(prefix), "missing resource keep file")
		return
	}
	for _, f := range keepFiles {
		patterns, err := readKeepPatterns(f)
		if err != nil {
			report.add(CheckRetention, f, "%v", err)
			continue
		}
		if len(patterns) == 0 {
			report.add(CheckRetention, f, "tools:keep is empty")
		}
		for _, p := range patterns {
			slash := strings.Index(p, "/")
			if !strings.HasPrefix(p, "@") || slash < 0 || !strings.HasPrefix(p[slash+1:], prefix) {
				report.add(CheckRetention, f, "pattern %q is not anchored on %q", p, prefix)
			}
		}
	}
}

type manifestFile struct {
	Package    string
	Activities []string
}

func readManifest(path string) (*manifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	var doc struct {
		Package     string `xml:"package,attr"`
		Application struct {
			Activities []struct {
				Name string `xml:"http://schemas.android.com/apk/res/android name,attr"`
			} `xml:"activity"`
		} `xml:"application"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	m := &manifestFile{Package: doc.Package}
	for _, a := range doc.Application.Activities {
		m.Activities = append(m.Activities, a.Name)
	}
	return m, nil
}

// readStringKeys counts how often each key is defined.
func readStringKeys(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read string table")
	}
	var doc struct {
		Strings []struct {
			Name string `xml:"name,attr"`
		} `xml:"string"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	keys := make(map[string]int, len(doc.Strings))
	for _, s := range doc.Strings {
		keys[s.Name]++
	}
	return keys, nil
}

type layoutFile struct {
	IDs       []string
	Drawables []string
}

// readLayout collects android:id values in document order.
func readLayout(path string) (*layoutFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := &layoutFile{}
	seen := map[string]bool{}
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, errors.Wrapf(err, "parse %s", path)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Space != modgen.AndroidSchema {
				continue
			}
			switch attr.Name.Local {
			case "id":
				out.IDs = append(out.IDs, strings.TrimPrefix(attr.Value, "@+id/"))
			case "background":
				d := strings.TrimPrefix(attr.Value, "@drawable/")
				if !seen[d] {
					seen[d] = true
					out.Drawables = append(out.Drawables, d)
				}
			}
		}
	}
}

func readKeepPatterns(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Keep string `xml:"http://schemas.android.com/tools keep,attr"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	var patterns []string
	for _, p := range strings.Split(doc.Keep, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}

// walkFiles visits regular files under root in lexical order.
func walkFiles(root string, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return fn(path)
	})
}
