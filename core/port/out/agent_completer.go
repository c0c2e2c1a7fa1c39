package out

import "context"

// Completer is the narrow contract for the external text-completion
// service. Implementations classify failures as apperr.Transient
// (retryable) or apperr.Permanent (surfaced immediately) and never cache
// responses.
type Completer interface {
	// Complete sends one instruction plus content round trip and returns
	// the raw model output.
	Complete(ctx context.Context, instruction, content string) (string, error)
}
