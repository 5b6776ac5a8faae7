package session

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// countTokens counts BPE tokens with the cl100k encoding. When the encoding
// data cannot be loaded (e.g., no network for the BPE download), it falls
// back to a bytes/4 approximation so callers still get a usable estimate.
func countTokens(text string) int {
	tokenizerOnce.Do(func() {
		tokenizer, _ = tiktoken.EncodingForModel("gpt-4")
	})
	if tokenizer == nil {
		return (len(text) + 3) / 4
	}
	return len(tokenizer.Encode(text, nil, nil))
}
