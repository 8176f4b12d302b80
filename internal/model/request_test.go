package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadRequest_Validate(t *testing.T) {
	valid := DownloadRequest{
		SourceURL: "https://example.test/v1",
		OutputDir: "/tmp/out",
		Format:    FormatVideo,
		Quality:   Quality720p,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(r *DownloadRequest)
		wantErr error
	}{
		{"empty url", func(r *DownloadRequest) { r.SourceURL = "   " }, ErrEmptyURL},
		{"ftp url", func(r *DownloadRequest) { r.SourceURL = "ftp://example.test/v" }, ErrInvalidURL},
		{"empty dir", func(r *DownloadRequest) { r.OutputDir = "" }, ErrEmptyOutputDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), tt.wantErr)
		})
	}

	r := valid
	r.Format = "flac"
	assert.Error(t, r.Validate())

	r = valid
	r.Quality = "360"
	assert.Error(t, r.Validate())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"MP3":   FormatAudio,
		"audio": FormatAudio,
		"mp4":   FormatVideo,
		"Video": FormatVideo,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("webm")
	assert.Error(t, err)
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{
		"Best":  QualityBest,
		"1080":  Quality1080p,
		"720p":  Quality720p,
		" 480 ": Quality480p,
	} {
		got, err := ParseQuality(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseQuality("4k")
	assert.Error(t, err)
}

func TestQuality_MaxHeight(t *testing.T) {
	assert.Equal(t, 0, QualityBest.MaxHeight())
	assert.Equal(t, 1080, Quality1080p.MaxHeight())
	assert.Equal(t, 720, Quality720p.MaxHeight())
	assert.Equal(t, 480, Quality480p.MaxHeight())
}
