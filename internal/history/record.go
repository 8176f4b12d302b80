// Package history keeps a local record of submitted downloads in SQLite.
package history

import (
	"time"

	"github.com/ytget/yt-downloader-pro/internal/model"
)

// Record is one submitted download
type Record struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	URL         string       `json:"url" gorm:"not null"`
	Title       string       `json:"title,omitempty"`
	Format      model.Format `json:"format" gorm:"not null"`
	Quality     string       `json:"quality"`
	OutputDir   string       `json:"output_dir"`
	OutputPath  string       `json:"output_path,omitempty"`
	Status      string       `json:"status" gorm:"not null;index"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime;index"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// NewRecord builds a record from a freshly submitted task
func NewRecord(task model.DownloadTask) *Record {
	return &Record{
		ID:        task.ID,
		URL:       task.Request.SourceURL,
		Title:     task.Title,
		Format:    task.Request.Format,
		Quality:   string(task.Request.Quality),
		OutputDir: task.Request.OutputDir,
		Status:    task.Status.String(),
		CreatedAt: task.StartedAt,
	}
}

// DisplayTitle returns the title, or the URL when no title is known
func (r *Record) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.URL
}
