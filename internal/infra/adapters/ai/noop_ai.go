package ai

import (
	"context"
	"errors"

	"twinpersona/internal/domain/ports/adapter"
)

var (
	_ adapter.TextGenerator  = (*NoopText)(nil)
	_ adapter.ImageGenerator = (*NoopImage)(nil)
)

// NoopText stands in when no text provider is configured; every call fails
// so the usecase serves its static fallback.
type NoopText struct{}

func (NoopText) Name() string { return "noop" }

func (NoopText) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	return "", errors.New("text generation disabled")
}

// NoopImage stands in when no image provider is configured.
type NoopImage struct{}

func (NoopImage) Name() string { return "noop" }

func (NoopImage) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("image generation disabled")
}
