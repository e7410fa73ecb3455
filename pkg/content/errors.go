package content

import "errors"

var (
	// ErrNoContent signals that there is nothing to send. It is a skip, not a failure.
	ErrNoContent = errors.New("content: no report files found")

	// ErrReadFailed is returned when a report file or directory exists but cannot be read.
	ErrReadFailed = errors.New("content: failed to read report files")
)
