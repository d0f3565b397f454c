package storage

import (
	"sync"

	"github.com/jin0205/sourdough-pro-ai/internal/domain"
)

// notifier fans out collection-changed signals to subscribers. Sends never
// block a writer: a subscriber that falls more than a buffer behind misses
// notifications and should re-read on the next one.
type notifier struct {
	mu     sync.Mutex
	subs   []chan domain.Collection
	closed bool
}

func (n *notifier) Subscribe() <-chan domain.Collection {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan domain.Collection, 8)
	if n.closed {
		close(ch)
		return ch
	}
	n.subs = append(n.subs, ch)
	return ch
}

func (n *notifier) publish(c domain.Collection) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	for _, ch := range n.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (n *notifier) shutdown() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for _, ch := range n.subs {
		close(ch)
	}
	n.subs = nil
}
