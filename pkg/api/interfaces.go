// Package api provides the HTTP surface over a pair of object logs
package api

import (
	"context"
	"log/slog"

	"github.com/ssargent/objlog/pkg/store"
)

// BinaryEntryLog is the binary log as the server uses it
type BinaryEntryLog interface {
	Append(Entry) error
	ReadAll() ([]Entry, store.Halt, error)
	Path() string
	Codec() string
}

// TextEntryLog is the text log as the server uses it
type TextEntryLog interface {
	Append(Entry) error
	Records() (*store.TextIterator[Entry], error)
	Path() string
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled or the listener fails
	StartServer(ctx context.Context, binary BinaryEntryLog, text TextEntryLog, config ServerConfig, logger *slog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
