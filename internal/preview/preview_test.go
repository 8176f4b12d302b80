package preview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// pngHeader is enough for content sniffing
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeFetcher struct {
	meta Metadata
	err  error
}

func (f fakeFetcher) FetchMetadata(context.Context, string) (Metadata, error) {
	return f.meta, f.err
}

func imageServer(t *testing.T, status int, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/jpeg", []byte("jpeg-bytes"))
	meta := Metadata{
		Title:        "Never Gonna Give You Up",
		Uploader:     "Rick Astley",
		Duration:     213 * time.Second,
		ThumbnailURL: srv.URL + "/maxresdefault.jpg",
	}
	s := NewService(fakeFetcher{meta: meta}, srv.Client(), zaptest.NewLogger(t))

	thumb, err := s.Fetch(context.Background(), " https://youtube.com/watch?v=dQw4w9WgXcQ ")
	require.NoError(t, err)
	assert.Equal(t, meta, thumb.Metadata)
	assert.Equal(t, []byte("jpeg-bytes"), thumb.Image)
	assert.Equal(t, "image/jpeg", thumb.ContentType)
}

func TestFetch_SniffsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write(pngHeader)
	}))
	defer srv.Close()

	s := NewService(fakeFetcher{meta: Metadata{ThumbnailURL: srv.URL}}, srv.Client(), nil)

	thumb, err := s.Fetch(context.Background(), "https://example.com/v")
	require.NoError(t, err)
	assert.Equal(t, "image/png", thumb.ContentType)
}

func TestFetch_MetadataError(t *testing.T) {
	s := NewService(fakeFetcher{err: errors.New("unsupported URL")}, nil, zaptest.NewLogger(t))

	_, err := s.Fetch(context.Background(), "https://example.com/v")

	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, OpMetadata, pErr.Op)
	assert.Contains(t, err.Error(), "unsupported URL")
}

func TestFetch_EmptyURL(t *testing.T) {
	s := NewService(fakeFetcher{}, nil, nil)

	_, err := s.Fetch(context.Background(), "   ")

	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, OpMetadata, pErr.Op)
}

func TestFetch_NoThumbnail(t *testing.T) {
	s := NewService(fakeFetcher{meta: Metadata{Title: "x"}}, nil, nil)

	_, err := s.Fetch(context.Background(), "https://example.com/v")
	assert.ErrorIs(t, err, ErrNoThumbnail)
}

func TestFetch_ImageErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
	}{
		{"not found", http.StatusNotFound, []byte("nope")},
		{"empty body", http.StatusOK, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := imageServer(t, tt.status, "image/jpeg", tt.body)
			s := NewService(fakeFetcher{meta: Metadata{ThumbnailURL: srv.URL}}, srv.Client(), zaptest.NewLogger(t))

			thumb, err := s.Fetch(context.Background(), "https://example.com/v")
			assert.Nil(t, thumb)

			var pErr *Error
			require.ErrorAs(t, err, &pErr)
			assert.Equal(t, OpThumbnail, pErr.Op)
		})
	}
}
