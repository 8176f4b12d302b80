package ui

import "time"

// Icons (emojis/symbols)
const (
	IconFolder   = "📁"
	IconLanguage = "🌐"
	IconMusic    = "🎵"
	IconVideo    = "🎬"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	WindowWidth  float32 = 720
	WindowHeight float32 = 640

	ThumbnailWidth  float32 = 320
	ThumbnailHeight float32 = 180

	JobListMinHeight float32 = 140
)

// Timeouts for background work started from the UI
const (
	PreviewTimeout = 45 * time.Second
	InstallTimeout = 30 * time.Minute
)
