package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task was created but its worker has not reported yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means streams are being fetched
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusFinalizing means the fetch is done and merge/post-processing is running
	TaskStatusFinalizing TaskStatus = "Finalizing"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusDownloading || ts == TaskStatusFinalizing
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
