package util

import (
	"path/filepath"
	"strings"
)

// PackageDir converts a dotted Java package name to a relative directory
// path using the host separator ("com.dev.junk" -> "com/dev/junk").
func PackageDir(pkg string) string {
	return filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/"))
}

// Underscored replaces package dots with underscores ("com.dev" -> "com_dev").
func Underscored(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "_")
}

// JoinPackage joins non-empty package parts with dots.
func JoinPackage(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}
