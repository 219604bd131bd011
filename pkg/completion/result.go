package completion

import "context"

// Degradation reasons carried on Result for logging. Callers decide what,
// if anything, to surface.
const (
	ReasonNotConfigured = "provider not configured"
	ReasonProviderError = "provider error"
)

// Result is the outcome of a completion attempt. Degraded results carry no
// text; the caller supplies its own fallback copy.
type Result struct {
	Text     string
	Degraded bool
	Reason   string
	Err      error
}

// Complete runs the provider and absorbs every failure mode into a Result,
// so a chat turn can always finish.
func Complete(ctx context.Context, provider Provider, history []Message, options ...Option) Result {
	if provider == nil {
		return Result{Degraded: true, Reason: ReasonNotConfigured}
	}

	text, err := provider.Chat(ctx, history, options...)
	if err != nil {
		return Result{Degraded: true, Reason: ReasonProviderError, Err: err}
	}
	if text == "" {
		return Result{Degraded: true, Reason: ReasonProviderError}
	}

	return Result{Text: text}
}
