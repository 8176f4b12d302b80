package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/app"
	"github.com/ytget/yt-downloader-pro/internal/config"
	"github.com/ytget/yt-downloader-pro/internal/logger"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-downloader-pro"
	AppName = "YT Downloader Pro"
)

var (
	configPath string
	logLevel   string
	rootCmd    = &cobra.Command{
		Use:     "yt-downloader",
		Short:   "YT Downloader Pro - download video or audio with yt-dlp and ffmpeg",
		Long:    `Paste a video URL, preview it, choose MP4 or MP3 and a quality, and download. Without a subcommand the desktop window opens.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./configs/config.yaml or ~/.yt-downloader-pro/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the app config and builds the logger
func loadConfig() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// newApp wires the services for a CLI command
func newApp(ctx context.Context, opts app.Options) (*app.App, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log.Info("Starting", zap.String("app", AppName), zap.String("version", version))
	return app.New(ctx, cfg, log, opts)
}
