package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestShortAndString(t *testing.T) {
	info := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-01", Version: "v0.3.0"}
	assert.Equal(t, "0123456", info.Short())
	assert.Equal(t, "padgen v0.3.0 (commit 0123456, built 2026-01-01)", info.String())

	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}
