package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingURL is returned for a blank url parameter.
	ErrMissingURL = errors.New("missing url")
	// ErrFormatUnavailable is returned when nothing can satisfy the requested token.
	ErrFormatUnavailable = errors.New("format unavailable")
)

// Failure kinds reported to clients when every tier failed.
const (
	KindVideo = "Video download failed"
	KindAudio = "Audio conversion failed"
)

// FailedError reports that every retrieval tier failed.
type FailedError struct {
	Kind   string
	Detail string
	Err    error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

// UnavailableError is ErrFormatUnavailable carrying near-miss labels.
type UnavailableError struct {
	Token       string
	Suggestions []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("format %q unavailable", e.Token)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrFormatUnavailable
}
