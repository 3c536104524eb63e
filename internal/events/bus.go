// Package events provides the publish-subscribe broadcaster behind the
// display clients' SSE feed.
package events

import (
	"sync"
	"time"

	"github.com/openmenuboard/menuboard/internal/models"
)

const subBufferSize = 8

// Broadcaster fans change events out to all connected display subscribers.
// Publishing never blocks: subscribers that are slow to consume have events
// dropped rather than stalling the publisher. Within one subscriber, events
// arrive in publish order.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[string]chan models.ChangeEvent
	seq  int64
	now  func() time.Time
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[string]chan models.ChangeEvent),
		now:  time.Now,
	}
}

// Subscribe registers a subscriber under the given ID and returns the
// channel its events arrive on. Call Unsubscribe when done to clean up.
func (b *Broadcaster) Subscribe(id string) <-chan models.ChangeEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan models.ChangeEvent, subBufferSize)
	b.subs[id] = ch
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Removing an
// already-removed subscriber is a no-op.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish stamps the event with a timestamp and a monotonically increasing
// update ID, then delivers it to every current subscriber. Delivery is
// best-effort: a full subscriber buffer drops the event for that subscriber
// only.
func (b *Broadcaster) Publish(ev models.ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	ev.UpdateID = b.seq
	ev.Timestamp = b.now()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Drop if subscriber is slow
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
