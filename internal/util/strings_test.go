package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageDir(t *testing.T) {
	assert.Equal(t, filepath.Join("com", "dev", "junk"), PackageDir("com.dev.junk"))
	assert.Equal(t, "single", PackageDir("single"))
}

func TestUnderscored(t *testing.T) {
	assert.Equal(t, "com_dev_junk", Underscored("com.dev.junk"))
}

func TestJoinPackage(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"com.dev.junk", "plugin"}, "com.dev.junk.plugin"},
		{[]string{"com.dev.junk", ""}, "com.dev.junk"},
		{[]string{"", "plugin", "abc"}, "plugin.abc"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinPackage(tt.parts...))
	}
}
