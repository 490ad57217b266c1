package verify

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/teranos/padgen/errors"
	"github.com/teranos/padgen/internal/util"
)

// Source is what verification needs from one generated .java file.
type Source struct {
	Path      string
	Package   string
	ClassName string
	Activity  bool
	Layout    string
	// Bindings are the ids passed to findViewById, in source order.
	Bindings   []string
	StringRefs []string
	Methods    []string
}

// QualifiedName returns package + "." + class name.
func (s *Source) QualifiedName() string { return s.Package + "." + s.ClassName }

var (
	packageDecl  = regexp.MustCompile(`(?m)^package\s+([\w.]+);`)
	classDecl    = regexp.MustCompile(`(?m)^public class (\w+)( extends Activity)?\s*\{`)
	contentView  = regexp.MustCompile(`setContentView\(R\.layout\.(\w+)\)`)
	viewBinding  = regexp.MustCompile(`findViewById\(R\.id\.(\w+)\)`)
	stringRef    = regexp.MustCompile(`R\.string\.(\w+)`)
	memberMethod = regexp.MustCompile(`(?m)^\s+void (\w+)\(\)\s*\{`)
)

// ParseSource extracts declarations and resource references from src.
func ParseSource(path string, src []byte) (*Source, error) {
	text := string(src)

	pkg := packageDecl.FindStringSubmatch(text)
	if pkg == nil {
		return nil, errors.Newf("%s: no package declaration", path)
	}
	class := classDecl.FindStringSubmatch(text)
	if class == nil {
		return nil, errors.Newf("%s: no public class", path)
	}

	s := &Source{
		Path:      path,
		Package:   pkg[1],
		ClassName: class[1],
		Activity:  class[2] != "",
	}
	if m := contentView.FindStringSubmatch(text); m != nil {
		s.Layout = m[1]
	}
	s.Bindings = submatches(viewBinding, text)
	s.StringRefs = submatches(stringRef, text)
	s.Methods = submatches(memberMethod, text)
	return s, nil
}

func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// readSources parses every .java file under root. A file whose location
// does not match its package and class is an error.
func readSources(root string) ([]*Source, error) {
	var sources []*Source
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}
	err := walkFiles(root, func(path string) error {
		if filepath.Ext(path) != ".java" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		src, err := ParseSource(path, data)
		if err != nil {
			return err
		}
		want := filepath.Join(root, util.PackageDir(src.Package), src.ClassName+".java")
		if filepath.Clean(path) != want {
			return errors.Newf("%s declares %s, expected at %s",
				path, src.QualifiedName(), strings.TrimPrefix(want, root+string(filepath.Separator)))
		}
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}
