package session

import (
	"encoding/json"
	"sync"

	"github.com/playperu/citymarble/internal/game"
)

// Broker is an in-process pub/sub for game snapshots, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded snapshots for the given session.
func (b *Broker) Subscribe(id string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[id] == nil {
		b.subs[id] = make(map[chan []byte]struct{})
	}
	b.subs[id][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(id string, ch chan []byte) {
	b.mu.Lock()
	if _, ok := b.subs[id][ch]; ok {
		delete(b.subs[id], ch)
		close(ch)
	}
	if len(b.subs[id]) == 0 {
		delete(b.subs, id)
	}
	b.mu.Unlock()
}

// Publish sends a snapshot to all subscribers of the given session.
func (b *Broker) Publish(id string, st game.State) {
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	b.mu.RLock()
	for ch := range b.subs[id] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// Close ends every subscription of the session. Subscribers see their
// channel closed.
func (b *Broker) Close(id string) {
	b.mu.Lock()
	for ch := range b.subs[id] {
		close(ch)
	}
	delete(b.subs, id)
	b.mu.Unlock()
}

func (b *Broker) subscribers(id string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[id])
}
