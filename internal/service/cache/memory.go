package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/sandevgo/intake/internal/core"
)

// Memory is an in-process cache. With a positive capacity the least recently
// used entry is evicted first; zero means unbounded.
type Memory struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type memoryEntry struct {
	key   string
	value string
}

func NewMemory(capacity int) *Memory {
	return &Memory{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// MemoryFactory returns a Factory handing every session its own Memory.
func MemoryFactory(capacity int) Factory {
	return func(string) Cache {
		return NewMemory(capacity)
	}
}

func (m *Memory) Get(_ context.Context, lang core.Language, input string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[Key(lang, input)]
	if !ok {
		return "", false
	}
	m.order.MoveToFront(el)
	return el.Value.(*memoryEntry).value, true
}

func (m *Memory) Put(_ context.Context, lang core.Language, input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(lang, input)
	if el, ok := m.entries[key]; ok {
		el.Value.(*memoryEntry).value = response
		m.order.MoveToFront(el)
		return
	}

	m.entries[key] = m.order.PushFront(&memoryEntry{key: key, value: response})
	if m.capacity > 0 && m.order.Len() > m.capacity {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*memoryEntry).key)
	}
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order.Init()
	m.entries = make(map[string]*list.Element)
	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
