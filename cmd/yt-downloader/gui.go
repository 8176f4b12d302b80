package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/app"
	"github.com/ytget/yt-downloader-pro/internal/config"
	"github.com/ytget/yt-downloader-pro/internal/platform"
	"github.com/ytget/yt-downloader-pro/internal/ui"
)

// runGUI opens the desktop window and blocks until it is closed
func runGUI() error {
	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	ctx := context.Background()
	a, err := newApp(ctx, app.Options{InstalledTranscoder: settings.GetTranscoderPath()})
	if err != nil {
		return err
	}
	defer a.Close()

	go func() {
		// The extractor binary is fetched on first run; a failure only disables downloads
		_ = a.EnsureExtractor(ctx)
	}()

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	root := ui.NewRootUI(myWindow, myApp, ui.Deps{
		Downloads: a.Downloads,
		Preview:   a.Preview,
		Installer: a,
		Toolchain: a.Toolchain,
		Warnings:  a.Warnings(),
		Logger:    a.Logger.Named("ui"),
	})

	myWindow.Show()
	root.ShowStartup()
	myApp.Run()

	a.Logger.Info("Window closed", zap.Int("active_jobs", a.Downloads.ActiveCount()))
	return nil
}
