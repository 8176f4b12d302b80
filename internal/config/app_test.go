package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	assert.Equal(t, "node", cfg.Toolchain.RuntimeCommand)
	assert.Equal(t, 5*time.Second, cfg.Toolchain.ProbeTimeout)
	assert.NotEmpty(t, cfg.Toolchain.ArchiveURL)
	assert.NotEmpty(t, cfg.Toolchain.ArchiveSizeHint)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 3, cfg.Network.RetryMax)
}

func TestDefaultArchive(t *testing.T) {
	for _, goos := range []string{"windows", "darwin", "linux", "freebsd"} {
		url, size := DefaultArchive(goos)
		assert.Contains(t, url, "https://", goos)
		assert.NotEmpty(t, size, goos)
	}

	winURL, _ := DefaultArchive("windows")
	assert.Contains(t, winURL, ".zip")
}

func TestLoadAppConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: json
toolchain:
  ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
  probe_timeout: 2s
  install_dir: ` + filepath.Join(dir, "ffmpeg") + `
history:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.Toolchain.FFmpegPath)
	assert.Equal(t, 2*time.Second, cfg.Toolchain.ProbeTimeout)
	assert.Equal(t, filepath.Join(dir, "ffmpeg"), cfg.Toolchain.InstallDir)
	assert.False(t, cfg.History.Enabled)

	// Untouched keys keep their defaults
	assert.Equal(t, "node", cfg.Toolchain.RuntimeCommand)
	assert.Equal(t, 3, cfg.Network.RetryMax)
}

func TestLoadAppConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644))

	t.Setenv("YTDP_TOOLCHAIN_RUNTIME_COMMAND", "deno")
	t.Setenv("YTDP_NETWORK_RETRY_MAX", "7")

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "deno", cfg.Toolchain.RuntimeCommand)
	assert.Equal(t, 7, cfg.Network.RetryMax)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toolchain:\n  probe_timeout: 0s\n"), 0644))

	_, err := LoadAppConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe timeout")
}

func TestLoadAppConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "videos"), ExpandPath("~/videos"))
	assert.Equal(t, home+"/.yt-downloader-pro", ExpandPath("$HOME/.yt-downloader-pro"))
	assert.Equal(t, "/plain/path", ExpandPath("/plain/path"))
	assert.Equal(t, "", ExpandPath(""))
}
