package modgen

import (
	"fmt"
	"strings"
)

// Drawable bounds: dimensions and coordinates are in [0,drawableBound),
// the path has [0,maxPathPoints) coordinate pairs.
const (
	drawableBound = 100
	maxPathPoints = 40
)

// GenerateDrawable writes res/drawable/<name>.xml: a vector image with
// random size and viewport, one solid random colour, and a closed path.
func (s *Session) GenerateDrawable(name string) error {
	rng := s.rng()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&sb, "<vector xmlns:android=%q\n", AndroidSchema)
	fmt.Fprintf(&sb, "    android:width=\"%ddp\"\n", rng.IntN(drawableBound))
	fmt.Fprintf(&sb, "    android:height=\"%ddp\"\n", rng.IntN(drawableBound))
	fmt.Fprintf(&sb, "    android:viewportWidth=\"%d\"\n", rng.IntN(drawableBound))
	fmt.Fprintf(&sb, "    android:viewportHeight=\"%d\">\n", rng.IntN(drawableBound))
	sb.WriteString("\n    <path\n")
	fmt.Fprintf(&sb, "        android:fillColor=\"%s\"\n", s.names.Color())
	fmt.Fprintf(&sb, "        android:pathData=\"%s\" />\n", s.pathData())
	sb.WriteString("</vector>\n")

	return s.writeFile(s.layout.Resource("drawable", name), sb.String())
}

// pathData builds "M x,y x,y ... z". With no drawn points the path still
// opens at the origin so it parses.
func (s *Session) pathData() string {
	rng := s.rng()
	n := rng.IntN(maxPathPoints)

	points := make([]string, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, fmt.Sprintf("%d,%d", rng.IntN(drawableBound), rng.IntN(drawableBound)))
	}
	if len(points) == 0 {
		points = append(points, "0,0")
	}
	return "M" + strings.Join(points, " ") + "z"
}
