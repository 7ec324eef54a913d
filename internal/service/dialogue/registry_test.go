package dialogue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/intake/internal/core"
	"github.com/sandevgo/intake/internal/service/cache"
)

func TestRegistry_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewEngine(Deps{Gateway: &fakeGateway{}}), core.LangKorean, time.Minute)

	conv := r.Create(ctx, "", "")
	require.NotEmpty(t, conv.ID())
	assert.Equal(t, core.LangKorean, conv.Language())
	assert.Contains(t, conv.Greeting(), "안녕하세요")

	got, err := r.Get(conv.ID())
	require.NoError(t, err)
	assert.Same(t, conv, got)

	assert.True(t, r.Delete(ctx, conv.ID()))
	_, err = r.Get(conv.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, r.Delete(ctx, conv.ID()))
}

func TestRegistry_GetOrCreateIsStable(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewEngine(Deps{Gateway: &fakeGateway{}}), core.LangEnglish, 0)

	var wg sync.WaitGroup
	convs := make([]*Conversation, 8)
	for i := range convs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			convs[i] = r.GetOrCreate(ctx, "chat-42")
		}(i)
	}
	wg.Wait()

	for _, c := range convs {
		assert.Same(t, convs[0], c)
	}
	assert.Equal(t, 1, r.Len())
}

type clearCounter struct {
	mu      sync.Mutex
	cleared map[string]int
}

func (c *clearCounter) factory(sessionID string) cache.Cache {
	return &sessionCache{Cache: cache.NewMemory(0), owner: c, id: sessionID}
}

type sessionCache struct {
	cache.Cache
	owner *clearCounter
	id    string
}

func (s *sessionCache) Clear(ctx context.Context) error {
	s.owner.mu.Lock()
	s.owner.cleared[s.id]++
	s.owner.mu.Unlock()
	return s.Cache.Clear(ctx)
}

func TestRegistry_SweepRemovesIdle(t *testing.T) {
	ctx := context.Background()
	caches := &clearCounter{cleared: map[string]int{}}
	r := NewRegistry(NewEngine(Deps{Gateway: &fakeGateway{}, Cache: caches.factory}), core.LangEnglish, time.Minute)

	idle := r.Create(ctx, "idle", "")
	active := r.Create(ctx, "active", "")
	idle.touch(time.Now().Add(-2 * time.Minute))
	active.HandleTurn(ctx, "hello")

	assert.Equal(t, 1, r.Sweep(ctx, time.Now()))
	_, err := r.Get("idle")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get("active")
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"idle": 1}, caches.cleared)
}

func TestRegistry_SweepDoesNotWaitForRunningTurn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assistant := &fakeAssistant{block: true}
	r := NewRegistry(NewEngine(Deps{Gateway: &fakeGateway{}, Assistant: assistant}), core.LangEnglish, time.Minute)

	slow := r.Create(ctx, "slow", "")
	r.Create(ctx, "other", "")

	turnDone := make(chan struct{})
	go func() {
		defer close(turnDone)
		slow.HandleTurn(ctx, "zzz qqq")
	}()
	require.Eventually(t, func() bool { return slow.busy.Load() > 0 }, time.Second, 5*time.Millisecond)

	swept := make(chan int, 1)
	go func() { swept <- r.Sweep(ctx, time.Now().Add(time.Hour)) }()

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("sweep blocked behind a running turn")
	}

	got := make(chan error, 1)
	go func() {
		_, err := r.Get("slow")
		got <- err
	}()
	select {
	case err := <-got:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("lookup blocked behind a running turn")
	}

	_, err := r.Get("other")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	cancel()
	<-turnDone
}

func TestRegistry_StartStopsOnShutdown(t *testing.T) {
	r := NewRegistry(NewEngine(Deps{Gateway: &fakeGateway{}}), core.LangEnglish, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- r.Start(context.Background()) }()

	require.NoError(t, r.Shutdown(context.Background()))
	require.NoError(t, r.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestConversation_ConcurrentTurnsAreSerialized(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewEngine(Deps{Gateway: &fakeGateway{}}), core.LangEnglish, 0)
	conv := r.Create(ctx, "c", "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotEmpty(t, conv.HandleTurn(ctx, "What does it cost?"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, conv.Snapshot().Turns)
	assert.Len(t, conv.History(), 40)
	assert.False(t, conv.Collecting())
	assert.Len(t, conv.QuickReplies(), 3)
}
