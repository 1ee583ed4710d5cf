package event

import (
	"fmt"
	"sync"

	"github.com/lithammer/shortuuid/v4"
)

type Event interface {
	Clone() Event
}

type CancelFunc func()

type EventSource interface {
	Events() (<-chan Event, CancelFunc)
}

// PubSub distributes events to all subscribers. Publishing never blocks: a
// subscriber that doesn't keep up misses events. The final event is different,
// it is delivered to every subscriber and closes all subscriptions.
type PubSub struct {
	size int

	final  Event
	closed bool

	subscriber     map[string]chan Event
	subscriberLock sync.Mutex
}

// NewPubSub returns a PubSub where each subscriber has a buffer of
// size events. A size of 0 or less results in a buffer of 64 events.
func NewPubSub(size int) *PubSub {
	if size <= 0 {
		size = 64
	}

	w := &PubSub{
		size:       size,
		subscriber: make(map[string]chan Event),
	}

	return w
}

// Publish sends the event to all subscribers that have room for it.
func (w *PubSub) Publish(e Event) error {
	w.subscriberLock.Lock()
	defer w.subscriberLock.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	for _, c := range w.subscriber {
		select {
		case c <- e.Clone():
		default:
		}
	}

	return nil
}

// PublishFinal sends the event to all subscribers and closes their channels. If a
// subscriber's buffer is full, its oldest event is dropped in favor of the final
// event. Subscribers that subscribe afterwards receive only the final event.
func (w *PubSub) PublishFinal(e Event) error {
	w.subscriberLock.Lock()
	defer w.subscriberLock.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	w.final = e.Clone()
	w.closed = true

	for id, c := range w.subscriber {
		for {
			select {
			case c <- w.final.Clone():
			default:
				select {
				case <-c:
				default:
				}
				continue
			}
			break
		}

		close(c)
		delete(w.subscriber, id)
	}

	return nil
}

// Close closes all subscriptions without a final event.
func (w *PubSub) Close() {
	w.subscriberLock.Lock()
	defer w.subscriberLock.Unlock()

	w.closed = true

	for id, c := range w.subscriber {
		close(c)
		delete(w.subscriber, id)
	}
}

// Subscribe returns a channel for receiving the events and a function for
// unsubscribing. The channel is closed after the final event.
func (w *PubSub) Subscribe() (<-chan Event, CancelFunc) {
	w.subscriberLock.Lock()
	defer w.subscriberLock.Unlock()

	if w.closed {
		l := make(chan Event, 1)
		if w.final != nil {
			l <- w.final.Clone()
		}
		close(l)

		return l, func() {}
	}

	l := make(chan Event, w.size)

	var id string = ""

	for {
		id = shortuuid.New()
		if _, ok := w.subscriber[id]; !ok {
			w.subscriber[id] = l
			break
		}
	}

	unsubscribe := func() {
		w.subscriberLock.Lock()
		defer w.subscriberLock.Unlock()

		if c, ok := w.subscriber[id]; ok {
			close(c)
			delete(w.subscriber, id)
		}
	}

	return l, unsubscribe
}

// Subscribers returns the number of active subscriptions.
func (w *PubSub) Subscribers() int {
	w.subscriberLock.Lock()
	defer w.subscriberLock.Unlock()

	return len(w.subscriber)
}
