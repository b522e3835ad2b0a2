package form

import (
	"errors"
	"strings"
)

// ErrNoContentID is returned by SaveEdit when nothing has been generated yet.
var ErrNoContentID = errors.New("no content ID found for saving")

// ErrRequestInFlight is returned when a generate or save is triggered while
// another request from the same controller is still outstanding.
var ErrRequestInFlight = errors.New("a request is already in progress")

// ErrNothingToEdit is returned by BeginEdit when there is no result yet.
var ErrNothingToEdit = errors.New("nothing to edit: generate content first")

// ErrNotEditing is returned by SaveEdit outside edit mode.
var ErrNotEditing = errors.New("not in edit mode")

// ValidationError lists the labels of required inputs left blank.
// It is raised before any network call.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return e.Reason
	}
	return "Please provide: " + strings.Join(e.Missing, ", ")
}

// GenerationError wraps a failed generate request.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

// SaveError wraps a failed edit save. The edit buffer is left intact.
type SaveError struct {
	Message string
	Err     error
}

func (e *SaveError) Error() string { return e.Message }

func (e *SaveError) Unwrap() error { return e.Err }

// userMessage prefers the error's own text and falls back when it has none.
func userMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
