package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// OpenLogFile opens dir/app-YYYY-MM-DD.log for appending, creating dir if needed.
func OpenLogFile(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	name := filepath.Join(dir, fmt.Sprintf("app-%s.log", now.Format("2006-01-02")))
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// LogWriter returns stderr, teed into a daily file when dir is set.
func LogWriter(dir string, now time.Time) (io.Writer, io.Closer, error) {
	if dir == "" {
		return os.Stderr, io.NopCloser(nil), nil
	}
	f, err := OpenLogFile(dir, now)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stderr, f), f, nil
}
