// Package resolve merges entities, relationships and topics observed
// in different videos into collection-wide records with provenance.
package resolve

import (
	"log/slog"

	"github.com/siherrmann/fuser/model"
)

// Resolver performs cross-video resolution for one collection run.
type Resolver struct {
	config model.ResolutionConfig
	log    *slog.Logger
}

// NewResolver creates a Resolver with the given configuration.
func NewResolver(config model.ResolutionConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{config: config, log: logger}
}
