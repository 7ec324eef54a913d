package dialogue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/pkg/log"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry keeps live conversations by id and expires idle ones.
type Registry struct {
	engine   *Engine
	lang     core.Language
	idleTTL  time.Duration
	interval time.Duration

	mu    sync.RWMutex
	convs map[string]*Conversation

	stop chan struct{}
	once sync.Once
}

// NewRegistry creates sessions in lang by default. A zero idleTTL disables expiry.
func NewRegistry(engine *Engine, lang core.Language, idleTTL time.Duration) *Registry {
	interval := idleTTL / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &Registry{
		engine:   engine,
		lang:     lang,
		idleTTL:  idleTTL,
		interval: interval,
		convs:    make(map[string]*Conversation),
		stop:     make(chan struct{}),
	}
}

// Create starts a session. An empty id gets a generated one; an empty lang
// uses the registry default.
func (r *Registry) Create(ctx context.Context, id string, lang core.Language) *Conversation {
	if lang == "" {
		lang = r.lang
	}
	conv := NewConversation(r.engine, r.engine.NewSession(ctx, id, lang))

	r.mu.Lock()
	r.convs[conv.ID()] = conv
	r.mu.Unlock()

	log.FromCtx(ctx).Debug().Str("session", conv.ID()).Str("lang", string(lang)).Msg("session created")
	return conv
}

func (r *Registry) Get(id string) (*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.convs[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return conv, nil
}

// GetOrCreate is used by transports whose chats have stable ids.
func (r *Registry) GetOrCreate(ctx context.Context, id string) *Conversation {
	if conv, err := r.Get(id); err == nil {
		return conv
	}
	conv := NewConversation(r.engine, r.engine.NewSession(ctx, id, r.lang))

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.convs[id]; ok {
		return existing
	}
	r.convs[id] = conv
	return conv
}

// Delete ends the conversation and clears its response cache.
func (r *Registry) Delete(ctx context.Context, id string) bool {
	r.mu.Lock()
	conv, ok := r.convs[id]
	delete(r.convs, id)
	r.mu.Unlock()

	if ok {
		conv.close(ctx)
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.convs)
}

// Sweep ends conversations idle for longer than the ttl and returns how many went.
func (r *Registry) Sweep(ctx context.Context, now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	var expired []*Conversation
	r.mu.Lock()
	for id, conv := range r.convs {
		if conv.idleSince(now) > r.idleTTL {
			delete(r.convs, id)
			expired = append(expired, conv)
		}
	}
	r.mu.Unlock()

	for _, conv := range expired {
		conv.close(ctx)
	}
	return len(expired)
}

// Start runs the expiry loop until ctx is done or Shutdown is called.
func (r *Registry) Start(ctx context.Context) error {
	if r.idleTTL <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stop:
			return nil
		case now := <-ticker.C:
			if n := r.Sweep(ctx, now); n > 0 {
				log.FromCtx(ctx).Debug().Int("expired", n).Msg("idle sessions removed")
			}
		}
	}
}

func (r *Registry) Shutdown(context.Context) error {
	r.once.Do(func() { close(r.stop) })
	return nil
}
