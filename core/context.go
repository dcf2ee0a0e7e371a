package core

import "context"

// Context keys for pipeline options
type contextKey string

const quietKey contextKey = "quiet"

// WithQuiet marks ctx so that progress lines are not printed on stderr.
// The MCP and HTTP servers use it since their callers never see stderr.
func WithQuiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey, true)
}

// isQuiet returns whether progress lines are suppressed for ctx
func isQuiet(ctx context.Context) bool {
	val := ctx.Value(quietKey)
	if val == nil {
		return false // default: show progress
	}
	quiet, ok := val.(bool)
	return ok && quiet
}
