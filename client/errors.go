package client

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotCreated is returned when a log file's parent directory
	// cannot be created.
	ErrDirectoryNotCreated = errors.New("directory not created")
	// ErrDirectoryNotWritable is returned when a log file cannot be created
	// in its directory.
	ErrDirectoryNotWritable = errors.New("directory not writable")
	// ErrFailedOpeningLogFile is returned when a log file cannot be opened
	// for append.
	ErrFailedOpeningLogFile = errors.New("failed opening log file")
	// ErrHandleInit is returned when the engine cannot open a handle.
	ErrHandleInit = errors.New("handle init failed")
	// ErrFailedWritingLog is returned when the diagnostic sink rejects a
	// write. The transfer result is still valid.
	ErrFailedWritingLog = errors.New("failed writing log")
	// ErrResponseLogDirNotExist is returned when the response directory is
	// missing. The transfer result is still valid.
	ErrResponseLogDirNotExist = errors.New("response log directory does not exist")
	// ErrFailedRequest is the sentinel wrapped by [RequestError].
	ErrFailedRequest = errors.New("failed request")
)

// PathError ties a filesystem failure to the path it happened on.
type PathError struct {
	Path  string
	Err   error
	Cause error
}

func (e *PathError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %s", e.Err, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Err, e.Path, e.Cause)
}

func (e *PathError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// RequestError is returned by [Exec] for a transfer that did not succeed.
type RequestError struct {
	URL    string
	Reason string
	Info   string
	Err    error
}

func (e *RequestError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unsuccessful response"
	}
	return fmt.Sprintf("%v: %s: %s\n%s", e.Err, e.URL, reason, e.Info)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
