package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Default size limits for log files. When a file grows past MaxLogSizeBytes
// only the newest KeepLogSizeBytes are kept.
const (
	MaxLogSizeBytes  = 6 * 1024 * 1024
	KeepLogSizeBytes = 5 * 1024 * 1024
)

// FileWriter appends to a size-capped log file.
type FileWriter struct {
	file      *os.File
	maxBytes  int64
	keepBytes int64
	mu        sync.Mutex
}

// OpenFile opens or creates path with the default limits.
func OpenFile(path string) (*FileWriter, error) {
	return OpenFileWithLimits(path, MaxLogSizeBytes, KeepLogSizeBytes)
}

// OpenFileWithLimits opens or creates path, truncating it to keepBytes whenever
// it exceeds maxBytes.
func OpenFileWithLimits(path string, maxBytes, keepBytes int64) (*FileWriter, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	writer := &FileWriter{file: file, maxBytes: maxBytes, keepBytes: keepBytes}
	if err := writer.truncateIfNeeded(); err != nil {
		file.Close()
		return nil, err
	}
	return writer, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *FileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxBytes || size <= w.keepBytes {
		return nil
	}

	buf := make([]byte, w.keepBytes)
	if _, err := w.file.ReadAt(buf, size-w.keepBytes); err != nil && err != io.EOF {
		return err
	}

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes always go to the end, so the truncated file is refilled
	// from offset zero.
	_, err = w.file.Write(buf)
	return err
}
