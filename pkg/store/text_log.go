package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"
)

// TextLog is an append-only log of back-to-back JSON values. Unlike
// BinaryLog it carries no checksum, so decode failures are reported per
// element instead of ending the stream silently.
type TextLog[T any] struct {
	config LogConfig
	file   *os.File
	mutex  sync.Mutex
	closed bool
}

// TextResult is one element of a text log read: a value or the error for
// that position
type TextResult[T any] struct {
	Value  T
	Offset int64 // Byte offset just past the element
	Err    error
}

// OpenTextLog opens the log file for appending, creating it if needed
func OpenTextLog[T any](config LogConfig) (*TextLog[T], error) {
	config = config.withDefaults()

	file, err := openAppend(config.FilePath)
	if err != nil {
		return nil, err
	}
	return &TextLog[T]{config: config, file: file}, nil
}

// Append writes the JSON encoding of v with no separator
func (l *TextLog[T]) Append(v T) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return ErrClosed
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}

	w := bufio.NewWriterSize(l.file, l.config.BufferSize)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write value: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write value: %w", err)
	}
	if l.config.Fsync {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync value: %w", err)
		}
	}
	return nil
}

// Records reopens the file from the start and returns a fresh iterator
func (l *TextLog[T]) Records() (*TextIterator[T], error) {
	file, err := os.Open(l.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log for reading: %w", err)
	}
	return NewTextIterator[T](file, file, l.config.BufferSize), nil
}

// Path returns the file path
func (l *TextLog[T]) Path() string {
	return l.config.FilePath
}

// Close closes the append handle
func (l *TextLog[T]) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

// TextIterator decodes JSON values one at a time
type TextIterator[T any] struct {
	dec    *json.Decoder
	closer io.Closer
	result TextResult[T]
	done   bool
}

// NewTextIterator reads JSON values from r
func NewTextIterator[T any](r io.Reader, closer io.Closer, bufferSize int) *TextIterator[T] {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &TextIterator[T]{
		dec:    json.NewDecoder(bufio.NewReaderSize(r, bufferSize)),
		closer: closer,
	}
}

// Next advances to the next element. A value that is valid JSON but does not
// fit T yields an error element and iteration continues. A syntax error or a
// torn tail yields one error element and ends iteration.
func (it *TextIterator[T]) Next() bool {
	if it.done {
		return false
	}

	var raw json.RawMessage
	if err := it.dec.Decode(&raw); err != nil {
		it.done = true
		if errors.Is(err, io.EOF) {
			it.result = TextResult[T]{}
			_ = it.Close()
			return false
		}
		it.result = TextResult[T]{Offset: it.dec.InputOffset(), Err: fmt.Errorf("invalid JSON value: %w", err)}
		return true
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		it.result = TextResult[T]{Offset: it.dec.InputOffset(), Err: fmt.Errorf("cannot decode value: %w", err)}
		return true
	}
	it.result = TextResult[T]{Value: v, Offset: it.dec.InputOffset()}
	return true
}

// Result returns the element produced by the last Next
func (it *TextIterator[T]) Result() TextResult[T] {
	return it.result
}

// All returns the remaining elements as a sequence and closes the iterator
// afterwards
func (it *TextIterator[T]) All() iter.Seq[TextResult[T]] {
	return func(yield func(TextResult[T]) bool) {
		defer it.Close()
		for it.Next() {
			if !yield(it.result) {
				return
			}
		}
	}
}

// Close releases the underlying file. It is safe to call more than once.
func (it *TextIterator[T]) Close() error {
	it.done = true
	if it.closer == nil {
		return nil
	}
	err := it.closer.Close()
	it.closer = nil
	return err
}
