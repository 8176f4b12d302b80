package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", " YES \n", false, true},
		{"no", "n\n", false, false},
		{"empty", "\n", false, false},
		{"eof", "", false, false},
		{"flag", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &promptConfirmer{in: strings.NewReader(tt.input), out: &out, yes: tt.yes}
			assert.Equal(t, tt.want, c.Confirm(context.Background(), "Title", "Question?"))
			if !tt.yes {
				assert.Contains(t, out.String(), "Question? [y/N]")
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 GiB", formatBytes(2<<30))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"download", "doctor", "install-ffmpeg", "history"} {
		assert.True(t, names[want], want)
	}
}
