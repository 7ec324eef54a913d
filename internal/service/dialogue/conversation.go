package dialogue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandevgo/intake/internal/core"
)

// Conversation is the turn API for one session. Turns are serialized so the
// session is never mutated concurrently.
type Conversation struct {
	mu      sync.Mutex
	engine  *Engine
	session *Session
	// lastSeen is read without mu so expiry never waits on a running turn.
	lastSeen atomic.Int64
	busy     atomic.Int32
}

func NewConversation(engine *Engine, session *Session) *Conversation {
	c := &Conversation{engine: engine, session: session}
	c.touch(time.Now())
	return c
}

func (c *Conversation) ID() string {
	return c.session.ID
}

// HandleTurn returns the response text for utterance. It never fails.
func (c *Conversation) HandleTurn(ctx context.Context, utterance string) string {
	return c.Turn(ctx, utterance).Text
}

func (c *Conversation) Turn(ctx context.Context, utterance string) Result {
	c.busy.Add(1)
	defer c.busy.Add(-1)
	c.touch(time.Now())

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.touch(time.Now()) }()

	return c.engine.HandleTurn(ctx, c.session, utterance)
}

func (c *Conversation) History() []core.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Messages()
}

// Collecting reports whether the session is in the middle of an interview.
func (c *Conversation) Collecting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Context.Collecting()
}

func (c *Conversation) Language() core.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Context.Language
}

func (c *Conversation) Greeting() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Greeting(c.session)
}

func (c *Conversation) QuickReplies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.QuickReplies(c.session)
}

// Snapshot returns a copy of the conversation context.
func (c *Conversation) Snapshot() Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Context.Clone()
}

func (c *Conversation) close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.EndSession(ctx, c.session)
}

func (c *Conversation) touch(t time.Time) {
	c.lastSeen.Store(t.UnixNano())
}

// idleSince is zero while a turn is queued or running.
func (c *Conversation) idleSince(now time.Time) time.Duration {
	if c.busy.Load() > 0 {
		return 0
	}
	return now.Sub(time.Unix(0, c.lastSeen.Load()))
}
