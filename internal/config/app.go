package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. YTDP_TOOLCHAIN_FFMPEG_PATH
const EnvPrefix = "YTDP"

// AppConfig holds the file/env configuration that is not edited from the UI
type AppConfig struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Toolchain ToolchainConfig `mapstructure:"toolchain"`
	Network   NetworkConfig   `mapstructure:"network"`
	History   HistoryConfig   `mapstructure:"history"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// ToolchainConfig configures ffmpeg and JS runtime detection and the ffmpeg installer
type ToolchainConfig struct {
	FFmpegPath      string        `mapstructure:"ffmpeg_path"` // explicit override, tried first
	RuntimeCommand  string        `mapstructure:"runtime_command"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
	ArchiveURL      string        `mapstructure:"archive_url"`
	ArchiveSizeHint string        `mapstructure:"archive_size_hint"`
	InstallDir      string        `mapstructure:"install_dir"`
}

// NetworkConfig configures the retrying HTTP client used for archives and thumbnails
type NetworkConfig struct {
	RetryMax     int           `mapstructure:"retry_max"`
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// HistoryConfig configures the local download history
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// DefaultAppConfig returns a configuration with default values
func DefaultAppConfig() *AppConfig {
	archiveURL, sizeHint := DefaultArchive(runtime.GOOS)
	return &AppConfig{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
		Toolchain: ToolchainConfig{
			RuntimeCommand:  "node",
			ProbeTimeout:    5 * time.Second,
			ArchiveURL:      archiveURL,
			ArchiveSizeHint: sizeHint,
			InstallDir:      "$HOME/.yt-downloader-pro/ffmpeg",
		},
		Network: NetworkConfig{
			RetryMax:     3,
			RetryWaitMin: 1 * time.Second,
			RetryWaitMax: 5 * time.Second,
			Timeout:      10 * time.Minute,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.yt-downloader-pro/history.db",
		},
	}
}

// DefaultArchive returns the packaged ffmpeg archive URL and its approximate size for an OS
func DefaultArchive(goos string) (url, sizeHint string) {
	switch goos {
	case "windows":
		return "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.zip", "~80 MB"
	case "darwin":
		return "https://evermeet.cx/ffmpeg/getrelease/zip", "~25 MB"
	default:
		return "https://ffmpeg.martin-riedl.de/redirect/latest/linux/amd64/release/ffmpeg.zip", "~30 MB"
	}
}

// LoadAppConfig loads configuration from file and environment
func LoadAppConfig(configPath string) (*AppConfig, error) {
	config := DefaultAppConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.yt-downloader-pro")
	}

	// Register every key so AutomaticEnv can see env-only overrides on Unmarshal
	setDefaults(v, config)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, c *AppConfig) {
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
	v.SetDefault("logging.output_path", c.Logging.OutputPath)

	v.SetDefault("toolchain.ffmpeg_path", c.Toolchain.FFmpegPath)
	v.SetDefault("toolchain.runtime_command", c.Toolchain.RuntimeCommand)
	v.SetDefault("toolchain.probe_timeout", c.Toolchain.ProbeTimeout)
	v.SetDefault("toolchain.archive_url", c.Toolchain.ArchiveURL)
	v.SetDefault("toolchain.archive_size_hint", c.Toolchain.ArchiveSizeHint)
	v.SetDefault("toolchain.install_dir", c.Toolchain.InstallDir)

	v.SetDefault("network.retry_max", c.Network.RetryMax)
	v.SetDefault("network.retry_wait_min", c.Network.RetryWaitMin)
	v.SetDefault("network.retry_wait_max", c.Network.RetryWaitMax)
	v.SetDefault("network.timeout", c.Network.Timeout)

	v.SetDefault("history.enabled", c.History.Enabled)
	v.SetDefault("history.database_path", c.History.DatabasePath)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *AppConfig) *AppConfig {
	config.Toolchain.FFmpegPath = ExpandPath(config.Toolchain.FFmpegPath)
	config.Toolchain.InstallDir = ExpandPath(config.Toolchain.InstallDir)
	config.History.DatabasePath = ExpandPath(config.History.DatabasePath)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = ExpandPath(config.Logging.OutputPath)
	}

	return config
}

// ExpandPath expands environment variables and ~ in paths
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	// os.ExpandEnv leaves $HOME empty when HOME is unset (Windows), resolve it explicitly
	if strings.Contains(path, "$HOME") {
		if home, err := os.UserHomeDir(); err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *AppConfig) error {
	if config.Toolchain.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}

	if strings.TrimSpace(config.Toolchain.RuntimeCommand) == "" {
		return fmt.Errorf("runtime command not configured")
	}

	if config.Toolchain.InstallDir == "" {
		return fmt.Errorf("ffmpeg install directory not configured")
	}

	if config.Network.RetryMax < 0 {
		return fmt.Errorf("retry max cannot be negative")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
