// Package chat holds the conversation core: the stream re-emitter that turns
// a provider's raw token stream into typed client events, and the unary
// completion service.
package chat

import "github.com/flexos-dev/builder-gateway/internal/domain"

// ErrorMessage is the fixed client-facing text sent when a provider call
// fails. Provider error details stay in the logs.
const ErrorMessage = "Failed to process message. Please try again."

// EventWriter receives the typed events produced by the re-emitter. The SSE
// writer is the production implementation; tests substitute a recorder.
type EventWriter interface {
	// Content emits one fragment of conversational message text.
	Content(text string) error
	// Suggestion emits a structured suggestion entry.
	Suggestion(s domain.SuggestionEntry) error
	// Action emits a structured action entry.
	Action(a domain.Action) error
	// Error emits a terminal error event. No done marker follows.
	Error(msg string) error
	// Done emits the terminal completion marker.
	Done() error
}
