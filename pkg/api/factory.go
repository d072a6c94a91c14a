package api

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter registers metrics on the default prometheus registry
// and runs StartServer
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	binary BinaryEntryLog,
	text TextEntryLog,
	config ServerConfig,
	logger *slog.Logger,
) error {
	metrics := NewMetrics(prometheus.DefaultRegisterer)
	return StartServer(ctx, NewServer(binary, text, config, metrics, logger))
}
