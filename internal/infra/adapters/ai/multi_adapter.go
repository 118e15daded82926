package ai

import (
	"context"
	"errors"

	"twinpersona/internal/domain/ports/adapter"
)

var _ adapter.TextGenerator = (*MultiTextGenerator)(nil)

// MultiTextGenerator tries each configured provider in order and returns
// the first successful reply. The advice usecase still owns the final
// static fallback when every provider fails.
type MultiTextGenerator struct {
	chain []adapter.TextGenerator
}

func NewMultiTextGenerator(chain ...adapter.TextGenerator) *MultiTextGenerator {
	filtered := make([]adapter.TextGenerator, 0, len(chain))
	for _, g := range chain {
		if g != nil {
			filtered = append(filtered, g)
		}
	}
	return &MultiTextGenerator{chain: filtered}
}

func (m *MultiTextGenerator) Name() string { return "multi" }

func (m *MultiTextGenerator) Generate(ctx context.Context, messages []adapter.Message) (string, error) {
	if len(m.chain) == 0 {
		return "", errors.New("no text providers configured")
	}
	var lastErr error
	for _, g := range m.chain {
		out, err := g.Generate(ctx, messages)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
