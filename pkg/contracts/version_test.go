package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"reporttable/internal/config"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, config.AppName, info.Name)
	assert.Equal(t, config.AppVersion, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
}

func TestGetFullVersionString(t *testing.T) {
	full := GetFullVersionString()
	assert.True(t, strings.HasPrefix(full, "maketable "+config.AppVersion+" (built: "))
	assert.Contains(t, full, "commit: "+GitCommit)
}
