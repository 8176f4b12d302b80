package model

import (
	"strings"
	"time"
)

// DownloadTask represents a single submitted download job as seen by the UI
type DownloadTask struct {
	ID         string
	Request    DownloadRequest
	Status     TaskStatus
	Percent    int       // 0 to 100
	Speed      string    // speed descriptor from the extractor (e.g., "1.2MiB/s")
	StatusText string    // last status line rendered for the user
	LastError  string    // last error message if any
	Title      string    // media title, if reported
	OutputPath string    // file written by the extractor, known once the job succeeded
	StartedAt  time.Time // when the task was submitted
	FinishedAt time.Time // when the task reached a terminal event
}

// Apply folds a progress event into the task state
func (dt *DownloadTask) Apply(ev ProgressEvent, now time.Time) {
	dt.StatusText = ev.StatusText()
	switch ev.Kind {
	case EventDownloading:
		dt.Status = TaskStatusDownloading
		dt.Percent = ev.Percent
		dt.Speed = ev.Speed
	case EventFinalizing:
		dt.Status = TaskStatusFinalizing
		dt.Percent = ev.Percent
		dt.Speed = ""
	case EventCompleted:
		dt.Status = TaskStatusCompleted
		dt.Percent = 100
		dt.Speed = ""
		dt.FinishedAt = now
	case EventFailed:
		dt.Status = TaskStatusError
		dt.LastError = ev.Message
		dt.Speed = ""
		dt.FinishedAt = now
	}
}

// GetDisplayTitle returns the title, or the URL when no title is known
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}
	return dt.Request.SourceURL
}

// SpeedText renders the speed label; the speed is only known while downloading
func (dt *DownloadTask) SpeedText() string {
	if dt.Status == TaskStatusDownloading && dt.Speed != "" {
		return "Speed: " + dt.Speed
	}
	return SpeedTextUnknown
}
