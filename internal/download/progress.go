package download

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/acarl005/stripansi"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// Raw status values reported by the extractor
const (
	RawStatusDownloading    = "downloading"
	RawStatusFinished       = "finished"
	RawStatusPostProcessing = "post_processing"
)

// RawProgress is one progress payload as reported by the extractor.
// Percent and Speed may carry terminal colour codes and padding.
type RawProgress struct {
	Status  string
	Percent string // e.g. " 42.3%"
	Speed   string // e.g. "1.2MiB/s"
	Title   string
}

// Adapt converts a raw payload into a progress event.
// It returns false for payloads that carry nothing usable.
func Adapt(raw RawProgress) (model.ProgressEvent, bool) {
	switch strings.ToLower(strings.TrimSpace(raw.Status)) {
	case RawStatusDownloading:
		percent, ok := parsePercent(raw.Percent)
		if !ok {
			return model.ProgressEvent{}, false
		}
		return model.Downloading(percent, cleanSpeed(raw.Speed)), true
	case RawStatusFinished, RawStatusPostProcessing:
		return model.Finalizing(), true
	default:
		return model.ProgressEvent{}, false
	}
}

// parsePercent strips colour codes, whitespace and the percent sign, then truncates
func parsePercent(s string) (int, bool) {
	s = stripansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '%' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	p := int(math.Trunc(v))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p, true
}

func cleanSpeed(s string) string {
	return strings.TrimSpace(stripansi.Strip(s))
}
