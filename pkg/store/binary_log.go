package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// BinaryLog is an append-only log of checksummed records of type T.
//
// The reader verifies a frame by re-encoding the value it decoded, so T must
// decode back into the same shape it was written from. A struct stored in a
// BinaryLog[any] comes back as a map with sorted keys and fails its checksum.
type BinaryLog[T any] struct {
	config LogConfig
	file   *os.File
	writer *FrameWriter
	mutex  sync.Mutex
	closed bool
}

// OpenBinaryLog opens the log file for appending, creating it and its parent
// directories if needed
func OpenBinaryLog[T any](config LogConfig) (*BinaryLog[T], error) {
	config = config.withDefaults()

	file, err := openAppend(config.FilePath)
	if err != nil {
		return nil, err
	}

	return &BinaryLog[T]{
		config: config,
		file:   file,
		writer: NewFrameWriter(config.Codec, config.BufferSize, config.Fsync),
	}, nil
}

func openAppend(path string) (*os.File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// Append writes one record to the end of the log. A failed append leaves the
// handle usable.
func (l *BinaryLog[T]) Append(record T) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return ErrClosed
	}

	_, err := l.writer.Append(l.file, record)
	return err
}

// Records reopens the file from the start and returns a fresh reader. The
// caller must Close it unless it is drained through All.
func (l *BinaryLog[T]) Records() (*FrameReader[T], error) {
	file, err := os.Open(l.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log for reading: %w", err)
	}
	return NewFrameReader[T](file, file, l.config), nil
}

// ReadAll returns every verified record and the halt diagnostic
func (l *BinaryLog[T]) ReadAll() ([]T, Halt, error) {
	reader, err := l.Records()
	if err != nil {
		return nil, Halt{}, err
	}

	var records []T
	for record := range reader.All() {
		records = append(records, record)
	}
	return records, reader.Halt(), nil
}

// Size returns the current size of the log file in bytes
func (l *BinaryLog[T]) Size() (int64, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return 0, ErrClosed
	}

	stat, err := l.file.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// Path returns the file path
func (l *BinaryLog[T]) Path() string {
	return l.config.FilePath
}

// Codec returns the name of the codec in use
func (l *BinaryLog[T]) Codec() string {
	return l.config.Codec.Name()
}

// Close closes the append handle
func (l *BinaryLog[T]) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}
