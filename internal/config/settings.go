package config

import (
	"os"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyFormat         = "format"
	KeyQuality        = "quality"
	KeyLanguage       = "app_language"
	KeyTranscoderPath = "transcoder_path"
)

// Default values
const (
	DefaultFormat   = model.FormatVideo
	DefaultQuality  = model.QualityBest
	DefaultLanguage = "system"
)

// Settings manages the UI state persisted between launches
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir, err = os.Getwd()
			if err != nil {
				defaultDir = os.TempDir()
			}
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetFormat returns the last selected output format
func (s *Settings) GetFormat() model.Format {
	f := model.Format(s.app.Preferences().String(KeyFormat))
	if !f.IsValid() {
		s.SetFormat(DefaultFormat)
		return DefaultFormat
	}
	return f
}

// SetFormat stores the selected output format
func (s *Settings) SetFormat(f model.Format) {
	s.app.Preferences().SetString(KeyFormat, string(f))
}

// GetQuality returns the last selected quality ceiling
func (s *Settings) GetQuality() model.Quality {
	q := model.Quality(s.app.Preferences().String(KeyQuality))
	if !q.IsValid() {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return q
}

// SetQuality stores the selected quality ceiling
func (s *Settings) SetQuality(q model.Quality) {
	s.app.Preferences().SetString(KeyQuality, string(q))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetTranscoderPath returns the ffmpeg path stored by a previous install, if any
func (s *Settings) GetTranscoderPath() string {
	return s.app.Preferences().String(KeyTranscoderPath)
}

// SetTranscoderPath remembers an installed ffmpeg so the next probe tries it first
func (s *Settings) SetTranscoderPath(path string) {
	s.app.Preferences().SetString(KeyTranscoderPath, path)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
