package download

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// Result describes a finished job
type Result struct {
	Title      string
	OutputPath string
}

// Backend performs one extraction and reports raw progress
type Backend interface {
	Download(ctx context.Context, opts model.JobOptions, onProgress func(RawProgress)) (Result, error)
}

// Runner executes jobs on a Backend and emits progress events
type Runner struct {
	backend Backend
	logger  *zap.Logger
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(backend Backend, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{backend: backend, logger: logger}
}

// Run executes one job and blocks until it ends. Exactly one terminal event
// (Completed or Failed) is emitted last. Errors are *ExtractionError values.
func (r *Runner) Run(ctx context.Context, opts model.JobOptions, emit func(model.ProgressEvent)) (Result, error) {
	var (
		mu       sync.Mutex
		sentFull bool
		title    string
		done     bool
	)

	hook := func(raw RawProgress) {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Debug("Progress hook panicked", zap.Any("panic", rec))
			}
		}()

		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}

		if raw.Title != "" {
			title = raw.Title
		}

		ev, ok := Adapt(raw)
		if !ok {
			r.logger.Debug("Ignoring malformed progress payload",
				zap.String("status", raw.Status),
				zap.String("percent", raw.Percent))
			return
		}
		if ev.Kind == model.EventDownloading && ev.Percent == 100 {
			sentFull = true
		}
		emit(ev)
	}

	r.logger.Info("Starting job",
		zap.String("url", opts.SourceURL),
		zap.String("selector", opts.Selector))

	res, err := r.backend.Download(ctx, opts, hook)

	mu.Lock()
	defer mu.Unlock()
	done = true

	if res.Title == "" {
		res.Title = title
	}

	if err != nil {
		extErr := &ExtractionError{URL: opts.SourceURL, Err: err}
		r.logger.Error("Job failed", zap.String("url", opts.SourceURL), zap.Error(err))
		emit(model.Failed(extErr.Message()))
		return res, extErr
	}

	if !sentFull {
		emit(model.Downloading(100, ""))
	}
	emit(model.Completed())

	r.logger.Info("Job completed",
		zap.String("url", opts.SourceURL),
		zap.String("title", res.Title))
	return res, nil
}

// Start runs the job on its own goroutine. The channel is closed after the terminal event.
func (r *Runner) Start(ctx context.Context, opts model.JobOptions) <-chan model.ProgressEvent {
	events := make(chan model.ProgressEvent, 16)
	go func() {
		defer close(events)
		defer func() {
			if rec := recover(); rec != nil {
				events <- model.Failed(fmt.Sprintf("internal error: %v", rec))
			}
		}()
		r.Run(ctx, opts, func(ev model.ProgressEvent) {
			events <- ev
		})
	}()
	return events
}
