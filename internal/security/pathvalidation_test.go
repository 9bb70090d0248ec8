package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"file in dir", filepath.Join(dir, "layout.png"), false},
		{"nested new dir", filepath.Join(dir, "plots", "a", "layout.png"), false},
		{"dir itself", dir, false},
		{"parent", filepath.Join(dir, ".."), true},
		{"traversal", filepath.Join(dir, "..", "escape.png"), true},
		{"root", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.path, dir)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePathWithinDirectory_Symlink(t *testing.T) {
	safe := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(safe, "out")
	require.NoError(t, os.Symlink(outside, link))

	assert.Error(t, ValidatePathWithinDirectory(filepath.Join(link, "layout.png"), safe))
}

func TestValidatePathWithinDirectory_MissingSafeDir(t *testing.T) {
	assert.Error(t, ValidatePathWithinDirectory("x.png", filepath.Join(t.TempDir(), "missing")))
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("layout.png"))
	assert.NoError(t, ValidateOutputPath(filepath.Join(t.TempDir(), "layout.png")))
	assert.Error(t, ValidateOutputPath("/proc/self/layout.png"))
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"van":              "van",
		"front rig #2":     "front_rig_2",
		"../../etc/passwd": "etc_passwd",
		"  ":               "",
		"a__b":             "a__b",
		"rig-1.v2":         "rig-1.v2",
		"ünïcode":          "n_code",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeName(in), "input %q", in)
	}
	assert.Len(t, SanitizeName(strings.Repeat("a", 200)), maxNameLen)
}
