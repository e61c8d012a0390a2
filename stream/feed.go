// Package stream provides an in-memory value feed with replay of the latest
// value, used for route parameters, navigation data and notifications.
//
// Contract:
//   - Publish never blocks. A subscriber whose buffer is full loses its
//     oldest pending value, never the newest one.
//   - New subscribers receive the latest published value first.
//   - Cancel is idempotent and closes the subscriber channel.
package stream

import (
	"sync"
)

// Feed fans published values out to its subscriptions.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription[T]
	seq    uint64
	last   T
	has    bool
	closed bool
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: map[uint64]*Subscription[T]{}}
}

// NewFeedWith returns a feed that already holds v.
func NewFeedWith[T any](v T) *Feed[T] {
	f := NewFeed[T]()
	f.last, f.has = v, true
	return f
}

// Latest returns the most recent value and whether there is one.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.has
}

func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.last, f.has = v, true
	for _, s := range f.subs {
		s.offer(v)
	}
}

// Subscribe registers a subscriber with the given channel buffer (minimum
// 1). Subscribing to a closed feed returns an already cancelled
// subscription.
func (f *Feed[T]) Subscribe(buffer int) *Subscription[T] {
	if buffer <= 0 {
		buffer = 1
	}
	s := &Subscription[T]{ch: make(chan T, buffer), feed: f}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	f.seq++
	s.id = f.seq
	f.subs[s.id] = s
	if f.has {
		s.offer(f.last)
	}
	return s
}

// Subscribers is the number of live subscriptions.
func (f *Feed[T]) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close cancels all subscriptions. Later publishes are dropped.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	subs := f.subs
	f.subs = map[uint64]*Subscription[T]{}
	f.mu.Unlock()

	for _, s := range subs {
		s.closeChan()
	}
}

// Subscription receives the values of one Feed until it is cancelled.
type Subscription[T any] struct {
	id   uint64
	ch   chan T
	feed *Feed[T]
	once sync.Once
}

// C delivers values until the subscription is cancelled.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription[T]) Cancel() {
	s.feed.mu.Lock()
	delete(s.feed.subs, s.id)
	s.feed.mu.Unlock()
	s.closeChan()
}

func (s *Subscription[T]) closeChan() {
	// offer runs under the feed lock and the subscription is already
	// detached, so nothing can send on ch while it is being closed.
	s.once.Do(func() { close(s.ch) })
}

// offer must be called with the feed lock held.
func (s *Subscription[T]) offer(v T) {
	for {
		select {
		case s.ch <- v:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
