package ui

import (
	"strings"

	"github.com/jeandeaual/go-locale"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeyFile               = "file"
	KeyTools              = "tools"
	KeyLanguage           = "language"
	KeyQuit               = "quit"
	KeyDownloadDirectory  = "download_directory"
	KeyBrowse             = "browse"
	KeyOpenFolder         = "open_folder"
	KeyEnterURL           = "enter_url"
	KeyLoadPreview        = "load_preview"
	KeyLoadingPreview     = "loading_preview"
	KeyPreviewFailed      = "preview_failed"
	KeyFormat             = "format"
	KeyQuality            = "quality"
	KeyInvalidURL         = "invalid_url"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyDownloadStarted    = "download_started"
	KeyDownloadCompleted  = "download_completed"
	KeyDownloadFailed     = "download_failed"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyFolderNotWritable  = "folder_not_writable"
	KeyMissingTranscoder  = "missing_transcoder"
	KeyStartupWarnings    = "startup_warnings"
	KeyInstallFFmpeg      = "install_ffmpeg"
	KeyInstallingFFmpeg   = "installing_ffmpeg"
	KeyFFmpegInstalled    = "ffmpeg_installed"
	KeyFFmpegPresent      = "ffmpeg_present"
	KeyInstallFailed      = "install_failed"
	KeyRecentJobs         = "recent_jobs"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the OS locale when it is supported.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage returns the two-letter OS language, or "en"
func systemLanguage() string {
	tag, err := locale.GetLanguage()
	if err != nil || tag == "" {
		return "en"
	}
	return strings.ToLower(tag)
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "YT Downloader Pro",
		KeyDownload:           "Download",
		KeyFile:               "File",
		KeyTools:              "Tools",
		KeyLanguage:           "Language",
		KeyQuit:               "Quit",
		KeyDownloadDirectory:  "Save to",
		KeyBrowse:             "Browse",
		KeyOpenFolder:         "Open folder",
		KeyEnterURL:           "Paste a video URL (https://...)",
		KeyLoadPreview:        "Load Preview",
		KeyLoadingPreview:     "Loading preview...",
		KeyPreviewFailed:      "Preview failed",
		KeyFormat:             "Format",
		KeyQuality:            "Quality",
		KeyInvalidURL:         "Invalid URL",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeyDownloadStarted:    "Download started",
		KeyDownloadCompleted:  "Download completed",
		KeyDownloadFailed:     "Download failed",
		KeyErrorOpeningFolder: "Error opening folder",
		KeyFolderNotWritable:  "Cannot write to the selected folder",
		KeyMissingTranscoder:  "FFmpeg is required for video downloads. Install it from the Tools menu or choose MP3.",
		KeyStartupWarnings:    "Environment check",
		KeyInstallFFmpeg:      "Install FFmpeg...",
		KeyInstallingFFmpeg:   "Installing FFmpeg...",
		KeyFFmpegInstalled:    "FFmpeg installed",
		KeyFFmpegPresent:      "FFmpeg is already available",
		KeyInstallFailed:      "FFmpeg installation failed",
		KeyRecentJobs:         "Downloads",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "YT Загрузчик Pro",
		KeyDownload:           "Скачать",
		KeyFile:               "Файл",
		KeyTools:              "Инструменты",
		KeyLanguage:           "Язык",
		KeyQuit:               "Выход",
		KeyDownloadDirectory:  "Сохранить в",
		KeyBrowse:             "Обзор",
		KeyOpenFolder:         "Открыть папку",
		KeyEnterURL:           "Вставьте URL видео (https://...)",
		KeyLoadPreview:        "Предпросмотр",
		KeyLoadingPreview:     "Загрузка превью...",
		KeyPreviewFailed:      "Не удалось загрузить превью",
		KeyFormat:             "Формат",
		KeyQuality:            "Качество",
		KeyInvalidURL:         "Неверный URL",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeyDownloadStarted:    "Загрузка начата",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeyDownloadFailed:     "Ошибка загрузки",
		KeyErrorOpeningFolder: "Ошибка открытия папки",
		KeyFolderNotWritable:  "Нет доступа на запись в выбранную папку",
		KeyMissingTranscoder:  "Для загрузки видео нужен FFmpeg. Установите его через меню «Инструменты» или выберите MP3.",
		KeyStartupWarnings:    "Проверка окружения",
		KeyInstallFFmpeg:      "Установить FFmpeg...",
		KeyInstallingFFmpeg:   "Установка FFmpeg...",
		KeyFFmpegInstalled:    "FFmpeg установлен",
		KeyFFmpegPresent:      "FFmpeg уже доступен",
		KeyInstallFailed:      "Не удалось установить FFmpeg",
		KeyRecentJobs:         "Загрузки",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "YT Downloader Pro",
		KeyDownload:           "Baixar",
		KeyFile:               "Arquivo",
		KeyTools:              "Ferramentas",
		KeyLanguage:           "Idioma",
		KeyQuit:               "Sair",
		KeyDownloadDirectory:  "Salvar em",
		KeyBrowse:             "Navegar",
		KeyOpenFolder:         "Abrir pasta",
		KeyEnterURL:           "Cole a URL do vídeo (https://...)",
		KeyLoadPreview:        "Pré-visualizar",
		KeyLoadingPreview:     "Carregando pré-visualização...",
		KeyPreviewFailed:      "Falha na pré-visualização",
		KeyFormat:             "Formato",
		KeyQuality:            "Qualidade",
		KeyInvalidURL:         "URL inválida",
		KeyPleaseEnterURL:     "Por favor, digite uma URL",
		KeyDownloadStarted:    "Download iniciado",
		KeyDownloadCompleted:  "Download concluído",
		KeyDownloadFailed:     "Falha no download",
		KeyErrorOpeningFolder: "Erro ao abrir pasta",
		KeyFolderNotWritable:  "Não é possível gravar na pasta selecionada",
		KeyMissingTranscoder:  "O FFmpeg é necessário para baixar vídeos. Instale pelo menu Ferramentas ou escolha MP3.",
		KeyStartupWarnings:    "Verificação do ambiente",
		KeyInstallFFmpeg:      "Instalar FFmpeg...",
		KeyInstallingFFmpeg:   "Instalando FFmpeg...",
		KeyFFmpegInstalled:    "FFmpeg instalado",
		KeyFFmpegPresent:      "O FFmpeg já está disponível",
		KeyInstallFailed:      "Falha ao instalar o FFmpeg",
		KeyRecentJobs:         "Downloads",
	}
}
