package model

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Format is the kind of media the user wants to keep
type Format string

const (
	// FormatAudio extracts the audio track only (mp3)
	FormatAudio Format = "audio"

	// FormatVideo downloads video+audio merged into a single container (mp4)
	FormatVideo Format = "video"
)

// Quality is the upper bound on the video height
type Quality string

const (
	QualityBest  Quality = "best"
	Quality1080p Quality = "1080"
	Quality720p  Quality = "720"
	Quality480p  Quality = "480"
)

// Formats lists the selectable formats in display order
var Formats = []Format{FormatVideo, FormatAudio}

// Qualities lists the selectable quality ceilings in display order
var Qualities = []Quality{QualityBest, Quality1080p, Quality720p, Quality480p}

// Request validation errors
var (
	ErrEmptyURL       = errors.New("source URL is empty")
	ErrInvalidURL     = errors.New("URL must start with http:// or https://")
	ErrEmptyOutputDir = errors.New("output directory is empty")
)

// DownloadRequest is what the user asked for. It is treated as immutable once a job starts.
type DownloadRequest struct {
	SourceURL string
	OutputDir string
	Format    Format
	Quality   Quality
}

// Validate checks the request fields without touching the network or filesystem
func (r DownloadRequest) Validate() error {
	raw := strings.TrimSpace(r.SourceURL)
	if raw == "" {
		return ErrEmptyURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidURL
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return ErrEmptyOutputDir
	}
	if !r.Format.IsValid() {
		return fmt.Errorf("unknown format: %q", r.Format)
	}
	if !r.Quality.IsValid() {
		return fmt.Errorf("unknown quality: %q", r.Quality)
	}
	return nil
}

// IsValid reports whether f is a known format
func (f Format) IsValid() bool {
	return f == FormatAudio || f == FormatVideo
}

// Label returns the container name shown in the UI
func (f Format) Label() string {
	switch f {
	case FormatAudio:
		return "MP3"
	case FormatVideo:
		return "MP4"
	default:
		return string(f)
	}
}

// ParseFormat accepts either the enum value or the UI label (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio", "mp3":
		return FormatAudio, nil
	case "video", "mp4":
		return FormatVideo, nil
	}
	return "", fmt.Errorf("unknown format: %q", s)
}

// IsValid reports whether q is a known quality ceiling
func (q Quality) IsValid() bool {
	for _, known := range Qualities {
		if q == known {
			return true
		}
	}
	return false
}

// MaxHeight returns the height ceiling in pixels, or 0 for QualityBest
func (q Quality) MaxHeight() int {
	if q == QualityBest {
		return 0
	}
	h, err := strconv.Atoi(string(q))
	if err != nil {
		return 0
	}
	return h
}

// Label returns the value shown in the UI
func (q Quality) Label() string {
	if q == QualityBest {
		return "Best"
	}
	return string(q)
}

// ParseQuality accepts "best", "1080", "1080p" and the like
func ParseQuality(s string) (Quality, error) {
	v := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "p")
	q := Quality(v)
	if !q.IsValid() {
		return "", fmt.Errorf("unknown quality: %q", s)
	}
	return q, nil
}
