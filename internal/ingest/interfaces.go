package ingest

import (
	"context"
	"slices"

	"github.com/agentic-research/navtree/api"
)

// Provider supplies the flat record set navigation is resolved from.
// Implementations read their backing store on every call; callers that need
// a stable snapshot should hold on to the returned slice.
type Provider interface {
	Records(ctx context.Context) ([]api.Record, error)
}

// Static serves a fixed, in-memory record set.
type Static []api.Record

// Records implements Provider. The returned slice is a copy.
func (s Static) Records(ctx context.Context) ([]api.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}
