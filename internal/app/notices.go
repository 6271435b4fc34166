package service

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/trainerdesk/pkg/metrics"
)

// NoticeLevel classifies a notice.
type NoticeLevel string

// Notice levels.
const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-facing message produced by a mutation.
type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NoticeFeed keeps the most recent notices, oldest first.
type NoticeFeed struct {
	mu       sync.Mutex
	capacity int
	items    []Notice
	now      func() time.Time
}

// NewNoticeFeed creates a feed holding at most capacity notices.
func NewNoticeFeed(capacity int) *NoticeFeed {
	if capacity <= 0 {
		capacity = 20
	}
	return &NoticeFeed{
		capacity: capacity,
		items:    make([]Notice, 0, capacity),
		now:      time.Now,
	}
}

// Post appends a notice, dropping the oldest when full.
func (f *NoticeFeed) Post(level NoticeLevel, message string) Notice {
	n := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: f.now().UTC(),
	}

	f.mu.Lock()
	if len(f.items) == f.capacity {
		f.items = slices.Delete(f.items, 0, 1)
	}
	f.items = append(f.items, n)
	f.mu.Unlock()

	metrics.RecordNotice(string(level))
	return n
}

// List returns the retained notices.
func (f *NoticeFeed) List() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}
