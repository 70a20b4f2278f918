package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

func NewSessionID() string {
	return "chat-" + uuid.New().String()
}

func NewMessageID() string {
	return uuid.New().String()
}

// PostIDGenerator hands out "post-<unix millis>" ids. Two posts in the same
// millisecond get consecutive values instead of colliding.
type PostIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewPostIDGenerator(now func() time.Time) *PostIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &PostIDGenerator{now: now}
}

func (g *PostIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return "post-" + strconv.FormatInt(ms, 10)
}
