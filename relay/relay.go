// Package relay implements the serve and connect modes of gochat.
//
// Serve mode binds a TCP listener, spawns one reader goroutine per
// accepted connection, and runs the session authority (internal/hub)
// that all readers feed.  Connect mode is a line-based client for the
// same protocol.
package relay

import (
	"context"

	"github.com/KartikSindura/chat/config"
	"github.com/KartikSindura/chat/internal/metrics"
	"github.com/KartikSindura/chat/util"
)

// Relay orchestrates a single run in either mode.
type Relay struct {
	Config  *config.Config
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// New returns a ready-to-run Relay.
func New(cfg *config.Config, logger *util.Logger, collector *metrics.Collector) *Relay {
	return &Relay{Config: cfg, Logger: logger, Metrics: collector}
}

// Run dispatches to the configured mode.
func (r *Relay) Run(ctx context.Context) error {
	if r.Config.Listen {
		return r.serve(ctx)
	}
	return r.connect(ctx)
}
