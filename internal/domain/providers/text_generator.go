package providers

import "context"

// TextGenerator is a text-generation backend. Its output is untrusted text.
type TextGenerator interface {
	// Name identifies the backend in logs and metrics
	Name() string

	// Generate returns the raw completion for prompt
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnswerReviewer is implemented by generators that keep answers around, such as caches.
// The extraction chain reports whether each answer passed validation.
type AnswerReviewer interface {
	// Accepted is called once an answer for prompt passed validation
	Accepted(ctx context.Context, prompt, answer string)

	// Rejected is called when the answer for prompt was unusable
	Rejected(ctx context.Context, prompt string)
}
