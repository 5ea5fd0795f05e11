// Package pubsub provides a small in-process topic bus used to fan layout
// snapshots out to observers (SSE streams, the TUI) without the simulation
// ever blocking on a slow consumer.
package pubsub

import (
	"sync"
)

// Bus is a typed publish/subscribe hub. Publish never blocks: a subscriber
// whose buffer is full simply misses that message.
type Bus[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscription[T]]struct{}
	closed      bool
}

// Subscription is one subscriber's view of a topic.
type Subscription[T any] struct {
	topic     string
	ch        chan T
	bus       *Bus[T]
	closeOnce sync.Once
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		subscribers: make(map[string]map[*Subscription[T]]struct{}),
	}
}

// Subscribe registers a new subscriber on a topic with the given channel
// buffer. Returns nil if the bus has been closed.
func (b *Bus[T]) Subscribe(topic string, buffer int) *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	sub := &Subscription[T]{
		topic: topic,
		ch:    make(chan T, buffer),
		bus:   b,
	}
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*Subscription[T]]struct{})
	}
	b.subscribers[topic][sub] = struct{}{}
	return sub
}

// Publish sends a message to all subscribers of a topic. Subscriber pointers
// are copied under the lock and sends happen outside it, so a concurrent
// Unsubscribe cannot corrupt iteration and a full channel cannot stall the
// publisher.
func (b *Bus[T]) Publish(topic string, msg T) {
	b.mu.RLock()
	topicSubs := b.subscribers[topic]
	if len(topicSubs) == 0 {
		b.mu.RUnlock()
		return
	}
	subs := make([]*Subscription[T], 0, len(topicSubs))
	for sub := range topicSubs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.ch <- msg:
		default:
			// Buffer full: drop this frame for this subscriber.
		}
	}
}

// SubscriberCount returns the number of subscribers on a topic.
func (b *Bus[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Close shuts the bus down and closes every subscription channel. Idempotent.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for topic, subs := range b.subscribers {
		for sub := range subs {
			sub.close()
		}
		delete(b.subscribers, topic)
	}
}

// C returns the subscription's receive channel. It is closed on Unsubscribe
// or bus Close.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Unsubscribe removes the subscription from the bus and closes its channel.
func (s *Subscription[T]) Unsubscribe() {
	s.bus.mu.Lock()
	if subs := s.bus.subscribers[s.topic]; subs != nil {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.bus.subscribers, s.topic)
		}
	}
	s.bus.mu.Unlock()

	s.close()
}

func (s *Subscription[T]) close() {
	s.closeOnce.Do(func() {
		close(s.ch)
	})
}
