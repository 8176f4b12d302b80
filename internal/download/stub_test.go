package download

import (
	"context"
	"errors"
	"sync"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// stubBackend replays a fixed list of raw payloads then returns err
type stubBackend struct {
	payloads []RawProgress
	result   Result
	err      error
	block    chan struct{} // when set, Download waits for it to close

	mu   sync.Mutex
	seen []model.JobOptions
}

func (b *stubBackend) Download(ctx context.Context, opts model.JobOptions, onProgress func(RawProgress)) (Result, error) {
	b.mu.Lock()
	b.seen = append(b.seen, opts)
	b.mu.Unlock()

	if b.block != nil {
		<-b.block
	}
	for _, p := range b.payloads {
		onProgress(p)
	}
	return b.result, b.err
}

func (b *stubBackend) jobs() []model.JobOptions {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.JobOptions(nil), b.seen...)
}

func downloading(percent string) RawProgress {
	return RawProgress{Status: RawStatusDownloading, Percent: percent, Speed: "1.0MiB/s"}
}

var errExtractor = errors.New("ERROR: Unsupported URL")
