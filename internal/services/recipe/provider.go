package recipe

import "context"

// Completer sends a prompt to a text-completion service and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
