package ai

import (
	"github.com/pkoukk/tiktoken-go"
)

// CountTokens estimates the token footprint of a prompt so the advice
// usecase can enforce its budget before spending an API call. Falls back
// to a rough rune/3 estimate if the encoding is unavailable.
func CountTokens(model, text string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return len([]rune(text)) / 3
		}
	}
	return len(enc.Encode(text, nil, nil))
}
