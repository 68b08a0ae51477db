package shell

import (
	"sync"

	"github.com/google/uuid"
)

// BufferActor is a dispatch actor that buffers replies so the caller can
// drain them after each dispatch: the interactive shell appends them to its
// scrollback, the one-shot mode prints them.
type BufferActor struct {
	id   uuid.UUID
	name string

	mu    sync.Mutex
	lines []string
}

// NewActor returns an actor with a fresh unique ID.
func NewActor(name string) *BufferActor {
	return &BufferActor{id: uuid.New(), name: name}
}

func (a *BufferActor) ID() uuid.UUID { return a.id }
func (a *BufferActor) Name() string  { return a.name }

func (a *BufferActor) Reply(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = append(a.lines, message)
}

// Drain returns the buffered replies and clears the buffer.
func (a *BufferActor) Drain() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	lines := a.lines
	a.lines = nil
	return lines
}
