package llm

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/intake/internal/core"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// countTokens uses cl100k_base when the encoding can be loaded and a rough
// four-characters-per-token estimate otherwise.
func countTokens(text string) int {
	if text == "" {
		return 0
	}
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	if tk != nil {
		return len(tk.Encode(text, nil, nil))
	}
	return utf8.RuneCountInString(text)/4 + 1
}

// Budget keeps the newest history that fits into a token allowance.
type Budget struct {
	maxTokens int
	count     func(string) int
}

func NewBudget(maxTokens int) *Budget {
	return &Budget{maxTokens: maxTokens, count: countTokens}
}

// Trim drops the oldest messages until the rest fit. A non-positive budget
// keeps everything.
func (b *Budget) Trim(history []core.Message) []core.Message {
	if b == nil || b.maxTokens <= 0 {
		return history
	}

	used := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		// Per-message overhead for role and separators.
		cost := b.count(history[i].Content) + 4
		if used+cost > b.maxTokens {
			break
		}
		used += cost
		start = i
	}
	return history[start:]
}
