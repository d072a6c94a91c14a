package store

import (
	"errors"
	"log/slog"

	"github.com/ssargent/objlog/pkg/codec"
)

// DefaultBufferSize is the bufio size used when LogConfig.BufferSize is 0
const DefaultBufferSize = 4096

// LogConfig holds configuration for a binary or text log handle
type LogConfig struct {
	FilePath   string       // Path to the log file
	BufferSize int          // Read/write buffer size
	Fsync      bool         // fsync after every append
	Codec      codec.Codec  // Binary encoding; ignored by text logs
	Logger     *slog.Logger // Receives halt diagnostics
}

func (c LogConfig) withDefaults() LogConfig {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.Codec == nil {
		c.Codec = codec.NewMsgpackCodec()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// RecordIterator provides streaming access to records
type RecordIterator[T any] interface {
	Next() bool
	Record() T
	Close() error
}

// Errors
var (
	ErrClosed       = errors.New("log is closed")
	ErrEmptyPath    = errors.New("log file path is required")
	ErrUnknownCodec = errors.New("no raw record type for codec")
)
