package services

import "context"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

type CompletionRequest struct {
	Messages        []Message
	Temperature     float32
	MaxOutputTokens int
}

// Completer is the external text-completion capability. One instance is
// built at startup and shared by all requests.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Model() string
}

// Embedder turns text into a dense vector for the portfolio index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
