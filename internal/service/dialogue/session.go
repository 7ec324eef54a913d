package dialogue

import (
	"time"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/cache"
	"github.com/sandevgo/intake/internal/service/knowledge"
)

// Session is the complete state of one conversation. It is owned by a single
// caller at a time; the Engine never shares it.
type Session struct {
	ID        string
	Context   *Context
	History   []core.ChatMessage
	CreatedAt time.Time

	knowledge *knowledge.Store
	cache     cache.Cache
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []core.ChatMessage {
	return append([]core.ChatMessage(nil), s.History...)
}
