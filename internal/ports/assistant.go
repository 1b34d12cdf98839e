package ports

// Assistant defines the interface for the AI structure suggestions.
type Assistant interface {
	// SuggestOutline sends a prompt and returns the raw completion text.
	// The text is expected to be an indented bullet outline, or the
	// sentinel "NONE" when the assistant has nothing to suggest.
	SuggestOutline(prompt string) (string, error)

	// IsAvailable returns true if the assistant is configured and reachable.
	IsAvailable() bool
}
