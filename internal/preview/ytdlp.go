package preview

import (
	"context"
	"errors"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// YtdlpFetcher reads metadata with yt-dlp --skip-download --dump-json
type YtdlpFetcher struct{}

// FetchMetadata implements MetadataFetcher
func (YtdlpFetcher) FetchMetadata(ctx context.Context, url string) (Metadata, error) {
	result, err := ytdlp.New().
		NoPlaylist().
		SkipDownload().
		DumpJSON().
		Run(ctx, url)
	if err != nil {
		return Metadata{}, err
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return Metadata{}, err
	}
	if len(info) == 0 {
		return Metadata{}, errors.New("extractor returned no metadata")
	}

	var meta Metadata
	first := info[0]
	if first.Title != nil {
		meta.Title = *first.Title
	}
	if first.Uploader != nil {
		meta.Uploader = *first.Uploader
	}
	if first.Duration != nil {
		meta.Duration = time.Duration(*first.Duration * float64(time.Second))
	}
	if first.Thumbnail != nil {
		meta.ThumbnailURL = *first.Thumbnail
	}
	return meta, nil
}
