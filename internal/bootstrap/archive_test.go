package bootstrap

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeJoin(t *testing.T) {
	dest := filepath.Join("tmp", "install")

	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain file", "ffmpeg", false},
		{"nested", "a/b/ffmpeg", false},
		{"dot segments inside", "a/../ffmpeg", false},
		{"parent escape", "../ffmpeg", true},
		{"deep escape", "a/../../ffmpeg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := safeJoin(dest, tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindExecutable_DepthFirst(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, writeFile(filepath.Join(root, "a", "bin", "ffmpeg"), strings.NewReader("x"), 0755))
	assert.NoError(t, writeFile(filepath.Join(root, "b", "ffmpeg"), strings.NewReader("x"), 0755))

	path, err := findExecutable(root, "ffmpeg")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "bin", "ffmpeg"), path)
}
