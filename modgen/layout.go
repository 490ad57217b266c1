package modgen

import (
	"fmt"
	"strings"

	"github.com/teranos/padgen/names"
)

// Layout bounds: [0,maxLayoutChildren) children, dimensions in [0,maxDimension).
const (
	maxLayoutChildren = 20
	maxDimension      = 1000
)

// GeneratedLayout describes a written layout resource.
type GeneratedLayout struct {
	ResourceName string
	DrawableName string
	// ViewIDs are in declaration order; activities bind them 1:1.
	ViewIDs []string
	Widgets []string
}

// GenerateLayout writes res/layout/<name>.xml: a vertical LinearLayout of
// random children that all use one freshly generated drawable as background.
func (s *Session) GenerateLayout(name string) (*GeneratedLayout, error) {
	drawableName, err := s.names.Unique(s.drawable, s.prefixedName)
	if err != nil {
		return nil, err
	}
	if err := s.GenerateDrawable(drawableName); err != nil {
		return nil, err
	}

	rng := s.rng()
	out := &GeneratedLayout{ResourceName: name, DrawableName: drawableName}
	ids := names.NewScope("view ids in " + name)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&sb, "<LinearLayout xmlns:android=%q\n", AndroidSchema)
	fmt.Fprintf(&sb, "    android:layout_width=\"%ddp\"\n", rng.IntN(maxDimension))
	fmt.Fprintf(&sb, "    android:layout_height=\"%ddp\"\n", rng.IntN(maxDimension))
	sb.WriteString("    android:orientation=\"vertical\">\n")

	children := rng.IntN(maxLayoutChildren)
	for i := 0; i < children; i++ {
		widget := Widgets[rng.IntN(len(Widgets))]
		id, err := s.names.Unique(ids, s.names.Name)
		if err != nil {
			return nil, err
		}
		text, err := s.names.Name()
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(&sb, "\n    <%s\n", widget.Name)
		fmt.Fprintf(&sb, "        android:id=\"@+id/%s\"\n", id)
		fmt.Fprintf(&sb, "        android:layout_width=\"%ddp\"\n", rng.IntN(maxDimension))
		fmt.Fprintf(&sb, "        android:layout_height=\"%ddp\"\n", rng.IntN(maxDimension))
		fmt.Fprintf(&sb, "        android:background=\"@drawable/%s\"\n", drawableName)
		if widget.Orientable {
			orientation := "vertical"
			if rng.IntN(2) == 0 {
				orientation = "horizontal"
			}
			fmt.Fprintf(&sb, "        android:orientation=\"%s\"\n", orientation)
		}
		fmt.Fprintf(&sb, "        android:text=\"%s\" />\n", text)

		out.ViewIDs = append(out.ViewIDs, id)
		out.Widgets = append(out.Widgets, widget.Name)
	}
	sb.WriteString("</LinearLayout>\n")

	if err := s.writeFile(s.layout.Resource("layout", name), sb.String()); err != nil {
		return nil, err
	}
	return out, nil
}

// prefixedName draws a resource name carrying the configured prefix.
func (s *Session) prefixedName() (string, error) {
	return s.names.PrefixedName(s.opts.ResourcePrefix)
}
