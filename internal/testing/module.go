package testing

import (
	"context"
	"testing"

	"github.com/teranos/padgen/modgen"
)

// GenerateModule runs the generator into a temp dir and returns the result.
// Unset fields get small defaults and a fixed seed; the tree is removed by
// t.TempDir cleanup.
func GenerateModule(t *testing.T, opts modgen.Options) *modgen.Result {
	t.Helper()

	if opts.OutputDir == "" {
		opts.OutputDir = t.TempDir()
	}
	if opts.AppPackage == "" {
		opts.AppPackage = "com.dev.junk.plugin"
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}

	res, err := modgen.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Failed to generate test module: %v", err)
	}
	return res
}
