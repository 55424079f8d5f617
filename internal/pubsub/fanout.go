package pubsub

import (
	"sync"

	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

// fanout delivers events to buffered subscriber channels without blocking
type fanout struct {
	name        string
	buffer      int
	mu          sync.RWMutex
	subscribers []chan Event
}

func newFanout(name string, buffer int) fanout {
	return fanout{name: name, buffer: buffer, subscribers: []chan Event{}}
}

func (f *fanout) subscribe() chan Event {
	ch := make(chan Event, f.buffer)

	f.mu.Lock()
	f.subscribers = append(f.subscribers, ch)
	n := len(f.subscribers)
	f.mu.Unlock()

	logger.Debug("PubSub: New subscriber added", "bus", f.name, "total_subscribers", n)
	return ch
}

func (f *fanout) unsubscribe(ch chan Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, sub := range f.subscribers {
		if sub == ch {
			f.subscribers = append(f.subscribers[:i], f.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// broadcast returns how many subscribers were skipped because their buffer was full
func (f *fanout) broadcast(event Event) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	dropped := 0
	for _, ch := range f.subscribers {
		select {
		case ch <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		logger.Warn("PubSub: Skipping slow subscribers", "bus", f.name, "event_type", event.Type, "dropped", dropped)
	}
	return dropped
}

func (f *fanout) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subscribers {
		close(ch)
	}
	f.subscribers = nil
}

// SubscriberCount returns the number of active local subscribers
func (f *fanout) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}
