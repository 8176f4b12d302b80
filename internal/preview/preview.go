// Package preview loads the title and thumbnail of a video before it is
// downloaded. Failures are reported as *Error and never affect download jobs.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxImageBytes caps the thumbnail download
const MaxImageBytes = 8 << 20

// Preview failure stages
const (
	OpMetadata  = "metadata"
	OpThumbnail = "thumbnail"
)

// ErrNoThumbnail is wrapped when the extractor reports no thumbnail URL
var ErrNoThumbnail = errors.New("no thumbnail available")

// Error is returned for every preview failure
type Error struct {
	URL string
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("preview %s for %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Metadata is the subset of extractor info shown next to the thumbnail
type Metadata struct {
	Title        string
	Uploader     string
	Duration     time.Duration
	ThumbnailURL string
}

// MetadataFetcher resolves metadata for a page URL without downloading media
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (Metadata, error)
}

// Thumbnail is a loaded preview
type Thumbnail struct {
	Metadata
	Image       []byte
	ContentType string
}

// Service fetches previews
type Service struct {
	meta   MetadataFetcher
	client *http.Client
	logger *zap.Logger
}

// NewService creates a preview service. A nil client uses http.DefaultClient.
func NewService(meta MetadataFetcher, client *http.Client, logger *zap.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{meta: meta, client: client, logger: logger}
}

// Fetch resolves metadata and downloads the thumbnail image
func (s *Service) Fetch(ctx context.Context, url string) (*Thumbnail, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, &Error{URL: url, Op: OpMetadata, Err: errors.New("empty URL")}
	}

	meta, err := s.meta.FetchMetadata(ctx, url)
	if err != nil {
		s.logger.Warn("Preview metadata failed", zap.String("url", url), zap.Error(err))
		return nil, &Error{URL: url, Op: OpMetadata, Err: err}
	}
	if meta.ThumbnailURL == "" {
		return nil, &Error{URL: url, Op: OpThumbnail, Err: ErrNoThumbnail}
	}

	img, contentType, err := s.download(ctx, meta.ThumbnailURL)
	if err != nil {
		s.logger.Warn("Thumbnail download failed",
			zap.String("url", url),
			zap.String("thumbnail", meta.ThumbnailURL),
			zap.Error(err))
		return nil, &Error{URL: url, Op: OpThumbnail, Err: err}
	}

	s.logger.Debug("Preview loaded",
		zap.String("title", meta.Title),
		zap.Int("bytes", len(img)))

	return &Thumbnail{Metadata: meta, Image: img, ContentType: contentType}, nil
}

func (s *Service) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty image")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
