package modgen

import (
	"fmt"
	"strings"
)

// maxHelperFields bounds the random field draw: [0,maxHelperFields).
const maxHelperFields = 20

// HelperClass is a plain data holder an activity instantiates and fills.
type HelperClass struct {
	Package string
	Name    string
	// Fields are unique; there may be fewer than were drawn.
	Fields []string
}

// GenerateHelperClass writes a class with up to 19 public String fields.
//
// A drawn field name that repeats one already in the class is skipped, not
// regenerated, so the field count is "at most the draw, all unique".
func (s *Session) GenerateHelperClass(pkg, className string) (*HelperClass, error) {
	draw := s.rng().IntN(maxHelperFields)

	seen := make(map[string]struct{}, draw)
	fields := make([]string, 0, draw)
	for i := 0; i < draw; i++ {
		name, err := s.names.Name()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "package %s;\n\n", pkg)
	fmt.Fprintf(&sb, "public class %s {\n", className)
	if len(fields) > 0 {
		sb.WriteString("\n")
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, "    public String %s;\n", f)
	}
	fmt.Fprintf(&sb, "\n    public %s() {\n    }\n}\n", className)

	if err := s.writeFile(s.layout.Source(pkg, className), sb.String()); err != nil {
		return nil, err
	}
	return &HelperClass{Package: pkg, Name: className, Fields: fields}, nil
}
