// Package notify is the toast center: components publish transient
// notifications and attached pages receive them over a websocket.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Display lifetimes. Errors stay longer and are copyable so the user
// can report them.
const (
	shortTTL = 3 * time.Second
	errorTTL = 8 * time.Second
)

// Toast is one transient notification.
type Toast struct {
	ID       string `json:"id"`
	Level    Level  `json:"level"`
	Message  string `json:"message"`
	TTLMs    int64  `json:"ttl_ms"`
	Copyable bool   `json:"copyable"`
}

// Notifier is the publishing side used by view components.
type Notifier interface {
	Notify(level Level, message string)
}

// Center fans toasts out to subscribers. Slow subscribers drop toasts
// rather than block publishers.
type Center struct {
	mu   sync.Mutex
	subs map[string]chan Toast
}

// NewCenter creates an empty toast center.
func NewCenter() *Center {
	return &Center{subs: make(map[string]chan Toast)}
}

// Notify publishes a toast to every subscriber.
func (c *Center) Notify(level Level, message string) {
	ttl := shortTTL
	if level == LevelError {
		ttl = errorTTL
	}
	t := Toast{
		ID:       uuid.NewString(),
		Level:    level,
		Message:  message,
		TTLMs:    ttl.Milliseconds(),
		Copyable: level == LevelError,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- t:
		default:
		}
	}
}

// Subscribe registers a new toast stream. The returned id is used to
// unsubscribe.
func (c *Center) Subscribe() (string, <-chan Toast) {
	ch := make(chan Toast, 16)
	id := uuid.NewString()
	c.mu.Lock()
	c.subs[id] = ch
	c.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (c *Center) Unsubscribe(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.subs[id]; ok {
		delete(c.subs, id)
		close(ch)
	}
}
