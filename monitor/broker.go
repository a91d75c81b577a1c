// Package monitor fans out observed packets to subscribers, giving
// operational visibility into a running proxy without being part of
// the wire protocol itself.
package monitor

import (
	"sync"

	"github.com/mickamy/craftd-proxy/survival"
)

// Observed is one packet seen crossing a session, in either direction.
type Observed struct {
	SessionID string
	Direction survival.Direction
	Packet    survival.Packet
}

// subscriberBuffer bounds how many unread events a slow subscriber may
// accumulate before Publish starts dropping for it.
const subscriberBuffer = 256

// Broker fans out Observed values to any number of subscribers. The
// zero value is not usable; construct with New.
type Broker struct {
	mu   sync.Mutex
	subs map[chan Observed]struct{}
}

// New returns an empty Broker.
func New() *Broker {
	return &Broker{subs: make(map[chan Observed]struct{})}
}

// Subscribe registers a new subscriber and returns its channel along
// with an unsubscribe function. Calling unsubscribe is safe more than
// once.
func (b *Broker) Subscribe() (<-chan Observed, func()) {
	ch := make(chan Observed, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsub
}

// Publish fans out ev to every current subscriber. A subscriber whose
// buffer is full has ev dropped for it rather than blocking the
// publisher.
func (b *Broker) Publish(ev Observed) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
