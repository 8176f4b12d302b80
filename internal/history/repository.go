package history

import (
	"fmt"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ytget/yt-downloader-pro/internal/model"
	"github.com/ytget/yt-downloader-pro/internal/platform"
)

// DefaultListLimit is used when List is called with a non-positive limit
const DefaultListLimit = 50

// Store is implemented by the SQLite repository and the no-op store
type Store interface {
	RecordStarted(task model.DownloadTask) error
	RecordFinished(task model.DownloadTask) error
	List(limit int) ([]*Record, error)
	Close() error
}

// SQLiteRepository stores history records in SQLite
type SQLiteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository opens (and migrates) the database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Create inserts a new record
func (r *SQLiteRepository) Create(record *Record) error {
	return r.db.Create(record).Error
}

// Outcome is the terminal state written by Finish
type Outcome struct {
	Status     string
	Title      string
	OutputPath string
	Error      string
	At         time.Time
}

// Finish stores the terminal state of a record. Empty title and output path keep the stored values.
func (r *SQLiteRepository) Finish(id string, out Outcome) error {
	updates := map[string]interface{}{
		"status":       out.Status,
		"error":        out.Error,
		"completed_at": out.At,
	}
	if out.Title != "" {
		updates["title"] = out.Title
	}
	if out.OutputPath != "" {
		updates["output_path"] = out.OutputPath
	}

	res := r.db.Model(&Record{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("history record not found: %s", id)
	}
	return nil
}

// FindByID finds a record by ID
func (r *SQLiteRepository) FindByID(id string) (*Record, error) {
	var record Record
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns the most recent records first
func (r *SQLiteRepository) List(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var records []*Record
	err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// RecordStarted stores a newly submitted task
func (r *SQLiteRepository) RecordStarted(task model.DownloadTask) error {
	return r.Create(NewRecord(task))
}

// RecordFinished stores the terminal state of a task
func (r *SQLiteRepository) RecordFinished(task model.DownloadTask) error {
	at := task.FinishedAt
	if at.IsZero() {
		at = time.Now()
	}
	return r.Finish(task.ID, Outcome{
		Status:     task.Status.String(),
		Title:      task.Title,
		OutputPath: task.OutputPath,
		Error:      task.LastError,
		At:         at,
	})
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NopStore is used when history is disabled
type NopStore struct{}

func (NopStore) RecordStarted(model.DownloadTask) error  { return nil }
func (NopStore) RecordFinished(model.DownloadTask) error { return nil }
func (NopStore) List(int) ([]*Record, error)             { return nil, nil }
func (NopStore) Close() error                            { return nil }

// Open returns the SQLite store when enabled and a NopStore otherwise
func Open(enabled bool, dbPath string) (Store, error) {
	if !enabled {
		return NopStore{}, nil
	}
	return NewSQLiteRepository(dbPath)
}
