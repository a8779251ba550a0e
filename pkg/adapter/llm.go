package adapter

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/utils/logging"
)

// LLM is the provider-neutral text generation interface. One implementation
// exists per provider; the provider is selected once at construction by
// configuration, so adding a provider means adding an implementation.
type LLM interface {
	// Generate sends a prompt and returns the model's text response
	Generate(ctx context.Context, prompt string) (string, error)
}

// defaultTimeout bounds a single upstream LLM call
const defaultTimeout = 60 * time.Second

// generateOnce runs fn under the call timeout
func generateOnce(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return fn(callCtx)
}

// generateWithRetry runs fn with a bounded timeout and at most one retry.
// The parent context aborts both attempts.
func generateWithRetry(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	text, err := generateOnce(ctx, fn)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", goerr.Wrap(err, "LLM call aborted")
	}

	logging.From(ctx).Warn("LLM call failed, retrying once", "error", err)

	text, retryErr := generateOnce(ctx, fn)
	if retryErr != nil {
		return "", goerr.Wrap(retryErr, "LLM call failed after retry")
	}
	return text, nil
}
