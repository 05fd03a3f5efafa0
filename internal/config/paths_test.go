package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInputPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	existing := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty path", in: "", want: ""},
		{name: "existing absolute path", in: existing, want: existing},
		{name: "missing absolute path", in: "/definitely/not/here.txt", want: "/definitely/not/here.txt"},
		{name: "missing relative path", in: "table one.txt", want: filepath.Join(cwd, "table one.txt")},
		{name: "existing relative path", in: "paths.go", want: "paths.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveInputPath(tt.in))
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "deeper", "table.tex")

	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureParentDir("table.tex"))
}
