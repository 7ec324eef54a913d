package cache

import (
	"context"
	"strings"

	"github.com/sandevgo/intake/internal/core"
)

// Cache memoizes composed responses for one session.
type Cache interface {
	Get(ctx context.Context, lang core.Language, input string) (string, bool)
	Put(ctx context.Context, lang core.Language, input, response string)
	// Clear drops every entry.
	Clear(ctx context.Context) error
}

// Factory builds the cache for a new session.
type Factory func(sessionID string) Cache

// Key is the lowercase-trimmed input joined with the language tag.
func Key(lang core.Language, input string) string {
	return strings.ToLower(strings.TrimSpace(input)) + "|" + string(lang)
}
