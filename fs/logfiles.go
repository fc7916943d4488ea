package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// LogName is the file name of a year's harvest log.
const LogName = "log.txt"

// LogFiles hands out append-only writers for <root>/<year>/log.txt.
// Each file is opened once and kept open until Close.
//
// LogFiles is safe for concurrent use.
type LogFiles struct {
	root string

	mu     sync.Mutex
	files  map[int]*os.File
	closed bool
}

// NewLogFiles creates LogFiles rooted at root. No file is opened until a
// year's writer is requested.
func NewLogFiles(root string) *LogFiles {
	return &LogFiles{
		root:  root,
		files: make(map[int]*os.File),
	}
}

// Path returns the log file location of year.
func (l *LogFiles) Path(year int) string {
	return filepath.Join(l.root, strconv.Itoa(year), LogName)
}

// Writer returns the writer of year's log, creating the file if needed.
func (l *LogFiles) Writer(year int) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, errors.New("log files closed")
	}
	if f, ok := l.files[year]; ok {
		return f, nil
	}

	path := l.Path(year)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	l.files[year] = f
	return f, nil
}

// Close closes every open log file. Close is safe to call multiple times.
func (l *LogFiles) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	for year, f := range l.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log of %d: %w", year, err))
		}
	}
	l.files = nil
	return errors.Join(errs...)
}
