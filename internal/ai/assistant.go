package ai

import (
	"context"
	"errors"
)

// Message is one turn of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles understood by all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrUpstream marks a failure of the text-generation provider. It is
// surfaced to callers as a distinct error and never reaches assessment
// state.
var ErrUpstream = errors.New("upstream call failed")

// Assistant generates a chat completion for the given conversation.
type Assistant interface {
	GenerateChatCompletion(ctx context.Context, messages []Message) (string, error)
}
