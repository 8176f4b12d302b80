package download

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// ProgressInterval is how often yt-dlp progress is sampled
const ProgressInterval = 500 * time.Millisecond

// YtdlpBackend runs jobs through the yt-dlp binary
type YtdlpBackend struct {
	logger *zap.Logger
}

// NewYtdlpBackend creates the production backend
func NewYtdlpBackend(logger *zap.Logger) *YtdlpBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YtdlpBackend{logger: logger}
}

// Download implements Backend
func (b *YtdlpBackend) Download(ctx context.Context, opts model.JobOptions, onProgress func(RawProgress)) (Result, error) {
	dl := b.command(opts)

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		onProgress(rawFromUpdate(update))
	})

	result, err := dl.Run(ctx, opts.SourceURL)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if result != nil {
		info, err := result.GetExtractedInfo()
		if err == nil && len(info) > 0 {
			if info[0].Title != nil {
				res.Title = *info[0].Title
			}
			if info[0].Filename != nil {
				res.OutputPath = *info[0].Filename
			}
		}
	}
	return res, nil
}

// command translates job options into yt-dlp flags
func (b *YtdlpBackend) command(opts model.JobOptions) *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		Format(opts.Selector).
		Output(opts.OutputTemplate)

	if opts.MergeFormat != "" {
		dl.MergeOutputFormat(opts.MergeFormat)
	}
	if opts.TranscoderLocation != "" {
		dl.FFmpegLocation(opts.TranscoderLocation)
	}

	for _, pp := range opts.PostProcessors {
		switch pp.Kind {
		case model.PostProcessExtractAudio:
			dl.ExtractAudio().AudioFormat(pp.Codec)
			if pp.BitrateKbps > 0 {
				dl.AudioQuality(fmt.Sprintf("%dK", pp.BitrateKbps))
			}
		case model.PostProcessRemux:
			dl.RemuxVideo(pp.Container)
		default:
			b.logger.Warn("Unknown post-processor", zap.String("kind", string(pp.Kind)))
		}
	}
	return dl
}

// rawFromUpdate renders a yt-dlp progress update the way its progress line does
func rawFromUpdate(update ytdlp.ProgressUpdate) RawProgress {
	raw := RawProgress{Status: string(update.Status)}

	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		raw.Percent = fmt.Sprintf("%5.1f%%", percent)
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			raw.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if update.Info != nil && update.Info.Title != nil {
		raw.Title = *update.Info.Title
	}
	return raw
}
