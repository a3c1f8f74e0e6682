package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// logDirMode is the permission used for log directories created on demand.
const logDirMode = 0o750

// fileSink appends to a log file. Writes hold an advisory lock on a
// sidecar file so processes sharing the log do not interleave records.
type fileSink struct {
	mu   sync.Mutex
	file *os.File
	lock *flock.Flock
}

func openLogFile(path string) (*fileSink, error) {
	if _, err := os.Stat(path); err != nil {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, logDirMode); err != nil {
			return nil, &PathError{Path: dir, Err: ErrDirectoryNotCreated, Cause: err}
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, &PathError{Path: path, Err: ErrDirectoryNotWritable, Cause: err}
		}
		if err := f.Close(); err != nil {
			return nil, &PathError{Path: path, Err: ErrDirectoryNotWritable, Cause: err}
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return nil, &PathError{Path: path, Err: ErrFailedOpeningLogFile, Cause: err}
	}

	return &fileSink{
		file: file,
		lock: flock.New(path + ".lock"),
	}, nil
}

func (s *fileSink) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("locking %s: %w", s.lock.Path(), err)
	}
	defer func() {
		if uerr := s.lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("unlocking %s: %w", s.lock.Path(), uerr)
		}
	}()

	return s.file.Write(p)
}

func (s *fileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.file.Close(), s.lock.Close())
}
