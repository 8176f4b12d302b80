// Package options translates a download request into declarative job options
// for the extractor: format selector, output template and post-processing.
package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// ErrMissingTranscoder is returned for video requests when no ffmpeg was resolved
var ErrMissingTranscoder = errors.New("ffmpeg is required for video downloads but was not found")

// Output and post-processing constants
const (
	OutputTemplate   = "%(title)s.%(ext)s"
	VideoContainer   = "mp4"
	AudioCodec       = "mp3"
	AudioBitrateKbps = 192
	AudioSelector    = "bestaudio/best"
)

// Segmented (HLS) transports are excluded on the pair tiers only
const noSegmented = "[protocol!*=m3u8]"

// Build derives the job options for req. It is pure and deterministic.
func Build(req model.DownloadRequest, transcoderPath string) (model.JobOptions, error) {
	if err := req.Validate(); err != nil {
		return model.JobOptions{}, err
	}

	opts := model.JobOptions{
		SourceURL:          strings.TrimSpace(req.SourceURL),
		OutputTemplate:     filepath.Join(req.OutputDir, OutputTemplate),
		TranscoderLocation: transcoderPath,
	}

	switch req.Format {
	case model.FormatAudio:
		opts.Selector = AudioSelector
		opts.PostProcessors = []model.PostProcessor{{
			Kind:        model.PostProcessExtractAudio,
			Codec:       AudioCodec,
			BitrateKbps: AudioBitrateKbps,
		}}
	case model.FormatVideo:
		if transcoderPath == "" {
			return model.JobOptions{}, ErrMissingTranscoder
		}
		opts.Selector = VideoSelector(req.Quality)
		opts.MergeFormat = VideoContainer
		opts.PostProcessors = []model.PostProcessor{{
			Kind:      model.PostProcessRemux,
			Container: VideoContainer,
		}}
	}

	return opts, nil
}

// VideoSelector builds the tiered format selector for a quality ceiling.
//
// Tier 1 prefers an mp4 video and m4a audio pair, tier 2 any pair, both on
// non-segmented transports. A ceiling adds a capped single-file tier and then
// falls back to the best single file regardless of height.
func VideoSelector(q model.Quality) string {
	height := ""
	if h := q.MaxHeight(); h > 0 {
		height = fmt.Sprintf("[height<=%d]", h)
	}

	tiers := []string{
		"bestvideo[ext=mp4]" + height + noSegmented + "+bestaudio[ext=m4a]" + noSegmented,
		"bestvideo" + height + noSegmented + "+bestaudio" + noSegmented,
	}
	if height != "" {
		tiers = append(tiers, "best"+height)
	}
	tiers = append(tiers, "best")

	return strings.Join(tiers, "/")
}
