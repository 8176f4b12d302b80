// Package app wires the services shared by the GUI and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/bootstrap"
	"github.com/ytget/yt-downloader-pro/internal/config"
	"github.com/ytget/yt-downloader-pro/internal/download"
	"github.com/ytget/yt-downloader-pro/internal/history"
	"github.com/ytget/yt-downloader-pro/internal/httpclient"
	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/preview"
	"github.com/ytget/yt-downloader-pro/internal/toolchain"
)

// Options tunes how the services are built
type Options struct {
	// InstalledTranscoder is the ffmpeg path persisted by a previous install
	InstalledTranscoder string

	// Backend replaces the yt-dlp backend, nil for production
	Backend download.Backend

	// InstallProgress receives archive download progress
	InstallProgress bootstrap.ProgressFunc
}

// App holds the wired services
type App struct {
	Config    *config.AppConfig
	Logger    *zap.Logger
	Probe     *toolchain.Probe
	Installer *bootstrap.Installer
	Runner    *download.Runner
	Downloads *download.Service
	Preview   *preview.Service
	History   history.Store
	Toolchain model.Toolchain
}

// New probes the environment and builds every service
func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultAppConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := httpclient.New(cfg.Network, logger.Named("http"))

	installer := bootstrap.NewInstaller(bootstrap.Options{
		ArchiveURL: cfg.Toolchain.ArchiveURL,
		SizeHint:   cfg.Toolchain.ArchiveSizeHint,
		InstallDir: cfg.Toolchain.InstallDir,
		Progress:   opts.InstallProgress,
	}, client, logger.Named("bootstrap"))

	probeOpts := toolchain.DefaultOptions()
	probeOpts.OverridePath = cfg.Toolchain.FFmpegPath
	probeOpts.InstalledPath = opts.InstalledTranscoder
	if probeOpts.InstalledPath == "" {
		probeOpts.InstalledPath = installer.Installed()
	}
	probeOpts.RuntimeCommand = cfg.Toolchain.RuntimeCommand
	probeOpts.Timeout = cfg.Toolchain.ProbeTimeout
	probe := toolchain.NewProbe(probeOpts, logger.Named("toolchain"))

	tc := probe.Detect(ctx)

	backend := opts.Backend
	if backend == nil {
		backend = download.NewYtdlpBackend(logger.Named("ytdlp"))
	}
	runner := download.NewRunner(backend, logger.Named("runner"))
	downloads := download.NewService(runner, tc, logger.Named("download"))

	store, err := history.Open(cfg.History.Enabled, cfg.History.DatabasePath)
	if err != nil {
		logger.Warn("History disabled", zap.Error(err))
		store = history.NopStore{}
	}
	downloads.SetRecorder(store)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Probe:     probe,
		Installer: installer,
		Runner:    runner,
		Downloads: downloads,
		Preview:   preview.NewService(preview.YtdlpFetcher{}, client, logger.Named("preview")),
		History:   store,
		Toolchain: tc,
	}, nil
}

// Warnings lists the startup problems the user should be told about
func (a *App) Warnings() []string {
	var out []string
	if !a.Toolchain.HasTranscoder() {
		out = append(out, WarningNoTranscoder)
	}
	if !a.Toolchain.RuntimePresent {
		out = append(out, fmt.Sprintf(WarningNoRuntimeFormat, a.Config.Toolchain.RuntimeCommand))
	}
	return out
}

// Startup warning texts
const (
	WarningNoTranscoder    = "FFmpeg was not found. Video downloads are disabled until it is installed."
	WarningNoRuntimeFormat = "JavaScript runtime %q was not found. Some sites may fail to extract."
)

// InstallTranscoder offers the ffmpeg download and, once the unpacked
// executable answers -version, makes it available to new jobs.
// A declined offer returns an empty path.
func (a *App) InstallTranscoder(ctx context.Context, c bootstrap.Confirmer) (string, error) {
	path, err := a.Installer.OfferAndInstall(ctx, c)
	if err != nil || path == "" {
		return "", err
	}
	if err := a.Probe.Verify(ctx, path); err != nil {
		a.Logger.Error("Installed transcoder does not run", zap.String("path", path), zap.Error(err))
		return "", &bootstrap.Error{Stage: bootstrap.StageLocate, Err: err}
	}
	a.Toolchain = a.Toolchain.WithTranscoder(path)
	a.Downloads.SetToolchain(a.Toolchain)
	return path, nil
}

// EnsureExtractor makes sure a yt-dlp binary is available, downloading it when missing
func (a *App) EnsureExtractor(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		a.Logger.Warn("yt-dlp is not available", zap.Error(err))
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// Close releases resources held by the services
func (a *App) Close() error {
	return a.History.Close()
}
