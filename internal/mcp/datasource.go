package mcp

import (
	"context"

	"github.com/claude/fitgen/internal/generate"
	"github.com/claude/fitgen/internal/workout"
)

// Planner abstracts where plans come from for MCP tools. Both
// *generate.Client (local, talks to Gemini directly) and HTTPClient (remote,
// via a fitgen server's JSON API) satisfy this interface.
type Planner interface {
	Generate(ctx context.Context, req workout.Request) (*workout.Plan, error)
}

// Compile-time check: *generate.Client satisfies Planner.
var _ Planner = (*generate.Client)(nil)
