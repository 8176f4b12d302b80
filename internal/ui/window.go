package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/bootstrap"
	"github.com/ytget/yt-downloader-pro/internal/config"
	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/options"
	"github.com/ytget/yt-downloader-pro/internal/platform"
	"github.com/ytget/yt-downloader-pro/internal/preview"
)

// Downloader submits jobs and reports task updates
type Downloader interface {
	Submit(req model.DownloadRequest) (model.DownloadTask, error)
	SetUpdateCallback(func(model.DownloadTask))
}

// Previewer loads the thumbnail of a URL
type Previewer interface {
	Fetch(ctx context.Context, url string) (*preview.Thumbnail, error)
}

// TranscoderInstaller offers and performs the ffmpeg install
type TranscoderInstaller interface {
	InstallTranscoder(ctx context.Context, c bootstrap.Confirmer) (string, error)
}

// Deps are the services the window talks to
type Deps struct {
	Downloads Downloader
	Preview   Previewer
	Installer TranscoderInstaller
	Toolchain model.Toolchain
	Warnings  []string
	Logger    *zap.Logger
}

// RootUI is the main window
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger

	downloads Downloader
	previewer Previewer
	installer TranscoderInstaller
	toolchain model.Toolchain
	warnings  []string

	// form
	urlEntry      *widget.Entry
	previewBtn    *widget.Button
	thumbnail     *canvas.Image
	previewTitle  *widget.Label
	formatLabel   *widget.Label
	formatSelect  *widget.Select
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	folderLabel   *widget.Label
	folderEntry   *widget.Entry
	browseBtn     *widget.Button
	progressBar   *widget.ProgressBar
	speedLabel    *widget.Label
	statusLabel   *widget.Label
	downloadBtn   *widget.Button
	openFolderBtn *widget.Button
	jobs          *JobList

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// currentTaskID is only touched on the UI goroutine
	currentTaskID string
	installMu     sync.Mutex
	installing    bool
}

// NewRootUI builds the window content and subscribes to task updates
func NewRootUI(window fyne.Window, app fyne.App, deps Deps) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logger,
		downloads:    deps.Downloads,
		previewer:    deps.Preview,
		installer:    deps.Installer,
		toolchain:    deps.Toolchain,
		warnings:     deps.Warnings,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.downloads.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onPreviewClick() }
	ui.previewBtn = widget.NewButton("", ui.onPreviewClick)
	urlRow := container.NewBorder(nil, nil, nil, ui.previewBtn, ui.urlEntry)

	ui.thumbnail = canvas.NewImageFromResource(nil)
	ui.thumbnail.FillMode = canvas.ImageFillContain
	ui.thumbnail.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))
	ui.previewTitle = widget.NewLabel("")
	ui.previewTitle.Wrapping = fyne.TextWrapWord
	ui.previewTitle.Alignment = fyne.TextAlignCenter

	ui.formatLabel = widget.NewLabel("")
	ui.formatSelect = widget.NewSelect(formatLabels(), ui.onFormatChanged)
	ui.qualityLabel = widget.NewLabel("")
	ui.qualitySelect = widget.NewSelect(qualityLabels(), nil)

	ui.folderLabel = widget.NewLabel("")
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton("", ui.onBrowseClick)
	folderRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.folderEntry)

	optionsGrid := container.New(
		layout.NewFormLayout(),
		ui.formatLabel, ui.formatSelect,
		ui.qualityLabel, ui.qualitySelect,
		ui.folderLabel, folderRow,
	)

	ui.progressBar = widget.NewProgressBar()
	ui.speedLabel = widget.NewLabel(model.SpeedTextUnknown)
	ui.statusLabel = widget.NewLabel(model.StatusTextIdle)
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.openFolderBtn = widget.NewButton("", ui.onOpenFolderClick)
	ui.openFolderBtn.Disable()

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationContainer = container.NewBorder(nil, nil, nil, nil,
		container.NewVBox(ui.notificationLabel, ui.notificationSpinner))
	ui.notificationContainer.Hide()

	ui.jobs = NewJobList(ui.localization)

	// Restore the last selections after the select callbacks exist
	ui.formatSelect.SetSelected(ui.settings.GetFormat().Label())
	ui.qualitySelect.SetSelected(ui.settings.GetQuality().Label())

	top := container.NewVBox(
		urlRow,
		ui.notificationContainer,
		container.NewCenter(ui.thumbnail),
		ui.previewTitle,
		optionsGrid,
		ui.progressBar,
		container.NewBorder(nil, nil, nil, ui.speedLabel, ui.statusLabel),
		container.NewHBox(ui.downloadBtn, ui.openFolderBtn),
		widget.NewSeparator(),
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.jobs.Container()))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	installItem := fyne.NewMenuItem(ui.localization.GetText(KeyInstallFFmpeg), ui.onInstallMenu)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyTools), installItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.window.SetTitle(t(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.previewBtn.SetText(t(KeyLoadPreview))
	ui.formatLabel.SetText(t(KeyFormat))
	ui.qualityLabel.SetText(t(KeyQuality))
	ui.folderLabel.SetText(t(KeyDownloadDirectory))
	ui.browseBtn.SetText(IconFolder + " " + t(KeyBrowse))
	ui.downloadBtn.SetText(t(KeyDownload))
	ui.openFolderBtn.SetText(t(KeyOpenFolder))
	ui.jobs.Refresh()
}

// ShowStartup reports missing tools and offers the ffmpeg install
func (ui *RootUI) ShowStartup() {
	if len(ui.warnings) > 0 {
		dialog.ShowInformation(ui.localization.GetText(KeyStartupWarnings), strings.Join(ui.warnings, "\n"), ui.window)
	}
	if !ui.toolchain.HasTranscoder() {
		ui.offerTranscoderInstall()
	}
}

// validateURL validates the entered URL. Empty is allowed while typing.
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	req := model.DownloadRequest{SourceURL: input, OutputDir: ".", Format: model.FormatVideo, Quality: model.QualityBest}
	return req.Validate()
}

// buildRequest reads the form
func (ui *RootUI) buildRequest() (model.DownloadRequest, error) {
	format, err := model.ParseFormat(ui.formatSelect.Selected)
	if err != nil {
		format = config.DefaultFormat
	}
	quality, err := model.ParseQuality(ui.qualitySelect.Selected)
	if err != nil {
		quality = config.DefaultQuality
	}

	req := model.DownloadRequest{
		SourceURL: strings.TrimSpace(ui.urlEntry.Text),
		OutputDir: strings.TrimSpace(ui.folderEntry.Text),
		Format:    format,
		Quality:   quality,
	}
	return req, req.Validate()
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	t := ui.localization.GetText

	req, err := ui.buildRequest()
	switch {
	case errors.Is(err, model.ErrEmptyURL):
		dialog.ShowInformation(t(KeyDownload), t(KeyPleaseEnterURL), ui.window)
		return
	case errors.Is(err, model.ErrInvalidURL):
		dialog.ShowError(fmt.Errorf("%s: %w", t(KeyInvalidURL), err), ui.window)
		return
	case err != nil:
		dialog.ShowError(err, ui.window)
		return
	}

	if err := platform.EnsureWritableDirectory(req.OutputDir); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", t(KeyFolderNotWritable), err), ui.window)
		return
	}

	task, err := ui.downloads.Submit(req)
	if errors.Is(err, options.ErrMissingTranscoder) {
		if ui.installer == nil {
			dialog.ShowError(errors.New(t(KeyMissingTranscoder)), ui.window)
			return
		}
		ui.offerTranscoderInstall()
		return
	}
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.logger.Info("Download submitted", zap.String("task", task.ID), zap.String("url", req.SourceURL))

	ui.settings.SetFormat(req.Format)
	ui.settings.SetQuality(req.Quality)
	ui.settings.SetDownloadDirectory(req.OutputDir)

	ui.currentTaskID = task.ID
	ui.openFolderBtn.Disable()
	if latest, ok := ui.jobs.Get(task.ID); ok {
		task = latest
	}
	ui.jobs.Update(task)
	ui.renderTask(task)
}

// onTaskUpdate receives task copies from worker goroutines
func (ui *RootUI) onTaskUpdate(task model.DownloadTask) {
	fyne.Do(func() {
		prev, known := ui.jobs.Get(task.ID)
		ui.jobs.Update(task)

		// Only the transition into Error opens a dialog
		if task.Status == model.TaskStatusError && (!known || prev.Status != model.TaskStatusError) {
			dialog.ShowError(fmt.Errorf("%s: %s", task.GetDisplayTitle(), task.LastError), ui.window)
		}

		if task.ID != ui.currentTaskID {
			return
		}
		ui.renderTask(task)
		if task.Status == model.TaskStatusCompleted {
			ui.openFolderBtn.Enable()
		}
	})
}

// renderTask maps a task onto the progress bar, speed label and status label
func (ui *RootUI) renderTask(task model.DownloadTask) {
	ui.progressBar.SetValue(float64(task.Percent) / 100)
	ui.speedLabel.SetText(task.SpeedText())
	if task.StatusText != "" {
		ui.statusLabel.SetText(task.StatusText)
	}
}

// onFormatChanged disables the quality ceiling for audio
func (ui *RootUI) onFormatChanged(label string) {
	if ui.qualitySelect == nil {
		return
	}
	if f, err := model.ParseFormat(label); err == nil && f == model.FormatAudio {
		ui.qualitySelect.Disable()
	} else {
		ui.qualitySelect.Enable()
	}
}

// onPreviewClick loads the thumbnail in the background
func (ui *RootUI) onPreviewClick() {
	t := ui.localization.GetText
	url := strings.TrimSpace(ui.urlEntry.Text)
	if url == "" {
		dialog.ShowInformation(t(KeyLoadPreview), t(KeyPleaseEnterURL), ui.window)
		return
	}
	if err := validateURL(url); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", t(KeyInvalidURL), err), ui.window)
		return
	}
	if ui.previewer == nil {
		return
	}

	ui.previewBtn.Disable()
	ui.previewTitle.SetText(t(KeyLoadingPreview))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PreviewTimeout)
		defer cancel()

		thumb, err := ui.previewer.Fetch(ctx, url)
		fyne.Do(func() {
			ui.previewBtn.Enable()
			if err != nil {
				ui.previewTitle.SetText("")
				dialog.ShowError(fmt.Errorf("%s: %w", t(KeyPreviewFailed), err), ui.window)
				return
			}
			ui.showThumbnail(thumb)
		})
	}()
}

// showThumbnail displays a loaded preview
func (ui *RootUI) showThumbnail(thumb *preview.Thumbnail) {
	ui.thumbnail.Resource = fyne.NewStaticResource("thumbnail", thumb.Image)
	ui.thumbnail.Refresh()

	caption := thumb.Title
	if thumb.Uploader != "" {
		caption += MiddleDotSeparator + thumb.Uploader
	}
	ui.previewTitle.SetText(caption)
}

// onBrowseClick picks the output folder
func (ui *RootUI) onBrowseClick() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
		ui.settings.SetDownloadDirectory(uri.Path())
	}, ui.window)
}

// onOpenFolderClick opens the output folder in the file manager
func (ui *RootUI) onOpenFolderClick() {
	if err := platform.OpenFolder(ui.folderEntry.Text); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFolder), err), ui.window)
	}
}

// onInstallMenu handles Tools > Install FFmpeg
func (ui *RootUI) onInstallMenu() {
	if ui.toolchain.HasTranscoder() {
		dialog.ShowInformation(ui.localization.GetText(KeyInstallFFmpeg),
			ui.localization.GetText(KeyFFmpegPresent)+"\n"+ui.toolchain.TranscoderPath, ui.window)
		return
	}
	ui.offerTranscoderInstall()
}

// offerTranscoderInstall asks for and runs the ffmpeg install on a worker goroutine
func (ui *RootUI) offerTranscoderInstall() {
	if ui.installer == nil {
		return
	}

	ui.installMu.Lock()
	if ui.installing {
		ui.installMu.Unlock()
		return
	}
	ui.installing = true
	ui.installMu.Unlock()

	t := ui.localization.GetText
	confirmer := &dialogConfirmer{
		window:   ui.window,
		onAccept: func() { ui.showNotification(t(KeyInstallingFFmpeg)) },
	}

	go func() {
		defer func() {
			ui.installMu.Lock()
			ui.installing = false
			ui.installMu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), InstallTimeout)
		defer cancel()

		path, err := ui.installer.InstallTranscoder(ctx, confirmer)
		fyne.Do(func() {
			ui.hideNotification()
			ui.onInstallFinished(path, err)
		})
	}()
}

// onInstallFinished runs on the UI goroutine
func (ui *RootUI) onInstallFinished(path string, err error) {
	t := ui.localization.GetText
	if err != nil {
		ui.logger.Error("FFmpeg install failed", zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", t(KeyInstallFailed), err), ui.window)
		return
	}
	if path == "" {
		return
	}
	ui.toolchain = ui.toolchain.WithTranscoder(path)
	ui.settings.SetTranscoderPath(path)
	dialog.ShowInformation(t(KeyFFmpegInstalled), path, ui.window)
}

// showNotification displays a message with a spinner under the URL row
func (ui *RootUI) showNotification(message string) {
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		ui.notificationContainer.Show()
	})
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	ui.notificationContainer.Hide()
}

func formatLabels() []string {
	labels := make([]string, 0, len(model.Formats))
	for _, f := range model.Formats {
		labels = append(labels, f.Label())
	}
	return labels
}

func qualityLabels() []string {
	labels := make([]string, 0, len(model.Qualities))
	for _, q := range model.Qualities {
		labels = append(labels, q.Label())
	}
	return labels
}
