package ai

import (
	"context"
)

// Client is a generative text backend: prompt in, raw text out. There is
// no contractual guarantee the output is JSON; callers go through the
// parser and fall back on failure.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
