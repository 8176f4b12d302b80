package bootstrap

import (
	"errors"
	"fmt"
)

// Stage names the installer step that failed
type Stage string

const (
	StageDownload Stage = "download"
	StageExtract  Stage = "extract"
	StageLocate   Stage = "locate"
)

// Sentinels matched by errors.Is against an *Error of the same stage
var (
	ErrDownload = errors.New("failed to download transcoder archive")
	ErrExtract  = errors.New("failed to extract transcoder archive")
	ErrNotFound = errors.New("transcoder executable not found in archive")
)

// Error is returned for every installer failure
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%v: %v", e.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the stage
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Stage {
	case StageDownload:
		return ErrDownload
	case StageExtract:
		return ErrExtract
	default:
		return ErrNotFound
	}
}
