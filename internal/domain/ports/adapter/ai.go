package adapter

import "context"

// Message mirrors the chat-completion wire shape shared by providers.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextGenerator is the hex port for LLM text providers (advice proxy).
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
}

// ImageGenerator is the hex port for image providers (character artwork).
type ImageGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (url string, err error)
}
