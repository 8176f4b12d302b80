package model

import "fmt"

// FinalizingPercent is reported once all streams are fetched and merge/post-processing remains
const FinalizingPercent = 95

// Status and speed texts rendered by the UI
const (
	StatusTextIdle        = "Idle"
	StatusTextDownloading = "Downloading..."
	StatusTextFinalizing  = "Processing finalizing..."
	StatusTextCompleted   = "Completed"
	SpeedTextUnknown      = "Speed: --"
)

// EventKind tags the variant held by a ProgressEvent
type EventKind int

const (
	EventDownloading EventKind = iota
	EventFinalizing
	EventCompleted
	EventFailed
)

// String returns the lowercase name of the kind
func (k EventKind) String() string {
	switch k {
	case EventDownloading:
		return "downloading"
	case EventFinalizing:
		return "finalizing"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressEvent is a tagged variant emitted by the job runner.
// Percent is meaningful for Downloading and Finalizing, Speed for Downloading,
// Message for Failed.
type ProgressEvent struct {
	Kind    EventKind
	Percent int
	Speed   string
	Message string
}

// Downloading builds a Downloading event with percent clamped to [0,100]
func Downloading(percent int, speed string) ProgressEvent {
	return ProgressEvent{Kind: EventDownloading, Percent: clampPercent(percent), Speed: speed}
}

// Finalizing builds the fixed intermediate event
func Finalizing() ProgressEvent {
	return ProgressEvent{Kind: EventFinalizing, Percent: FinalizingPercent}
}

// Completed builds the terminal success event
func Completed() ProgressEvent {
	return ProgressEvent{Kind: EventCompleted, Percent: 100}
}

// Failed builds the terminal failure event
func Failed(message string) ProgressEvent {
	return ProgressEvent{Kind: EventFailed, Message: message}
}

// IsTerminal reports whether no further events follow this one
func (e ProgressEvent) IsTerminal() bool {
	return e.Kind == EventCompleted || e.Kind == EventFailed
}

// StatusText maps the event to the status label signal
func (e ProgressEvent) StatusText() string {
	switch e.Kind {
	case EventDownloading:
		return StatusTextDownloading
	case EventFinalizing:
		return StatusTextFinalizing
	case EventCompleted:
		return StatusTextCompleted
	case EventFailed:
		return "Error: " + e.Message
	}
	return ""
}

// ProgressPercent maps the event to the progress bar signal.
// The second value is false when the event carries no percentage.
func (e ProgressEvent) ProgressPercent() (int, bool) {
	switch e.Kind {
	case EventDownloading, EventFinalizing, EventCompleted:
		return e.Percent, true
	}
	return 0, false
}

// SpeedText maps the event to the speed label signal
func (e ProgressEvent) SpeedText() string {
	if e.Kind == EventDownloading && e.Speed != "" {
		return "Speed: " + e.Speed
	}
	return SpeedTextUnknown
}

// String is used in logs
func (e ProgressEvent) String() string {
	switch e.Kind {
	case EventDownloading:
		return fmt.Sprintf("downloading(%d%%, %s)", e.Percent, e.Speed)
	case EventFinalizing:
		return fmt.Sprintf("finalizing(%d%%)", e.Percent)
	case EventFailed:
		return fmt.Sprintf("failed(%s)", e.Message)
	default:
		return e.Kind.String()
	}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
