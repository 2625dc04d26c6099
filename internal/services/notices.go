// internal/services/notices.go
package services

import (
	"sync"
	"time"
)

const DefaultNoticeTTL = 5 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

// Notices holds the single message shown to the operator. A new message
// replaces the previous one; each is dismissed automatically after ttl.
type Notices struct {
	ttl time.Duration

	mu      sync.Mutex
	current *Notice
	timer   *time.Timer
	seq     uint64
}

func NewNotices(ttl time.Duration) *Notices {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notices{ttl: ttl}
}

func (n *Notices) Success(message string) {
	n.Publish(NoticeSuccess, message)
}

func (n *Notices) Error(message string) {
	n.Publish(NoticeError, message)
}

func (n *Notices) Publish(kind NoticeKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.current = &Notice{Kind: kind, Message: message, CreatedAt: time.Now()}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(seq)
	})
}

func (n *Notices) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

func (n *Notices) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

// expire clears the notice published as seq unless a newer one replaced it.
func (n *Notices) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq == seq {
		n.current = nil
		n.timer = nil
	}
}
