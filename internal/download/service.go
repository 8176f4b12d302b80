package download

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/options"
)

// Recorder persists task lifecycle events. Errors are logged and never fail a job.
type Recorder interface {
	RecordStarted(task model.DownloadTask) error
	RecordFinished(task model.DownloadTask) error
}

// Service handles download operations
type Service struct {
	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
	runner     *Runner
	toolchain  model.Toolchain
	recorder   Recorder
	onUpdate   func(model.DownloadTask) // callback for UI updates
	logger     *zap.Logger
	now        func() time.Time
	wg         sync.WaitGroup
}

// NewService creates a new download service
func NewService(runner *Runner, toolchain model.Toolchain, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:     make(map[string]*model.DownloadTask),
		runner:    runner,
		toolchain: toolchain,
		logger:    logger,
		now:       time.Now,
	}
}

// SetUpdateCallback sets the callback function for task updates.
// The callback receives a copy and runs on the worker goroutine.
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetRecorder attaches a history recorder
func (s *Service) SetRecorder(r Recorder) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.recorder = r
}

// SetToolchain replaces the toolchain used for jobs submitted from now on
func (s *Service) SetToolchain(tc model.Toolchain) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.toolchain = tc
}

// Toolchain returns the toolchain used for new jobs
func (s *Service) Toolchain() model.Toolchain {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.toolchain
}

// Submit validates the request, builds its job options and starts an
// independent worker. Video requests fail with options.ErrMissingTranscoder
// when no ffmpeg is known.
func (s *Service) Submit(req model.DownloadRequest) (model.DownloadTask, error) {
	opts, err := options.Build(req, s.Toolchain().TranscoderPath)
	if err != nil {
		return model.DownloadTask{}, err
	}

	task := &model.DownloadTask{
		ID:         uuid.NewString(),
		Request:    req,
		Status:     model.TaskStatusPending,
		StatusText: model.StatusTextIdle,
		StartedAt:  s.now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	snapshot := *task
	recorder := s.recorder
	s.tasksMutex.Unlock()

	if recorder != nil {
		if err := recorder.RecordStarted(snapshot); err != nil {
			s.logger.Warn("Failed to record task start", zap.String("task", task.ID), zap.Error(err))
		}
	}

	s.logger.Info("Task submitted",
		zap.String("task", task.ID),
		zap.String("url", req.SourceURL),
		zap.String("format", string(req.Format)),
		zap.String("quality", string(req.Quality)))

	s.notifyUpdate(snapshot)

	s.wg.Add(1)
	go s.runTask(task.ID, opts)

	return snapshot, nil
}

// runTask drives one job to its terminal event
func (s *Service) runTask(id string, opts model.JobOptions) {
	defer s.wg.Done()

	res, err := s.runner.Run(context.Background(), opts, func(ev model.ProgressEvent) {
		s.applyEvent(id, ev)
	})

	s.tasksMutex.Lock()
	task := s.tasks[id]
	changed := false
	if res.Title != "" && res.Title != task.Title {
		task.Title = res.Title
		changed = true
	}
	if err == nil && res.OutputPath != "" {
		task.OutputPath = res.OutputPath
		changed = true
	}
	snapshot := *task
	recorder := s.recorder
	s.tasksMutex.Unlock()

	if err != nil {
		s.logger.Warn("Task failed", zap.String("task", id), zap.Error(err))
	}

	// A failed task was already reported by its terminal event
	if changed && snapshot.Status != model.TaskStatusError {
		s.notifyUpdate(snapshot)
	}

	if recorder != nil {
		if err := recorder.RecordFinished(snapshot); err != nil {
			s.logger.Warn("Failed to record task result", zap.String("task", id), zap.Error(err))
		}
	}
}

// applyEvent folds a progress event into the task and notifies listeners
func (s *Service) applyEvent(id string, ev model.ProgressEvent) {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return
	}
	task.Apply(ev, s.now())
	snapshot := *task
	s.tasksMutex.Unlock()

	s.notifyUpdate(snapshot)
}

// GetTask returns a copy of a task by ID
func (s *Service) GetTask(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return *task, true
}

// GetAllTasks returns copies of all tasks ordered by submission time
func (s *Service) GetAllTasks() []model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// ActiveCount returns the number of tasks that have not reached a terminal event
func (s *Service) ActiveCount() int {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	n := 0
	for _, task := range s.tasks {
		if task.Status.IsActive() {
			n++
		}
	}
	return n
}

// Wait blocks until every submitted task has finished or ctx is done
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for tasks: %w", ctx.Err())
	}
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}
