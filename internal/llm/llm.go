package llm

import (
	"context"
	"errors"
)

// Request carries a single completion request to a provider.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	JSONOutput  bool
}

// Client abstracts generative-model providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
