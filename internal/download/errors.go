package download

import "fmt"

// ExtractionError is returned when the extractor fails a job
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user
func (e *ExtractionError) Message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}
