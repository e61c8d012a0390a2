package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, s *Subscription[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.C():
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func assertClosed[T any](t *testing.T, s *Subscription[T]) {
	t.Helper()
	select {
	case _, ok := <-s.C():
		assert.False(t, ok, "expected closed channel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}

func TestFeedPublishSubscribe(t *testing.T) {
	f := NewFeed[int]()
	s := f.Subscribe(4)

	f.Publish(1)
	f.Publish(2)

	assert.Equal(t, 1, receive(t, s))
	assert.Equal(t, 2, receive(t, s))
}

func TestFeedReplaysLatest(t *testing.T) {
	f := NewFeed[string]()
	f.Publish("a")
	f.Publish("b")

	s := f.Subscribe(1)
	assert.Equal(t, "b", receive(t, s))

	v, ok := f.Latest()
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestFeedWithInitialValue(t *testing.T) {
	f := NewFeedWith(5)
	s := f.Subscribe(1)
	assert.Equal(t, 5, receive(t, s))
}

func TestFeedKeepsNewestWhenFull(t *testing.T) {
	f := NewFeed[int]()
	s := f.Subscribe(1)

	for i := 1; i <= 10; i++ {
		f.Publish(i)
	}
	assert.Equal(t, 10, receive(t, s))
}

func TestSubscriptionCancel(t *testing.T) {
	f := NewFeed[int]()
	s := f.Subscribe(1)
	require.Equal(t, 1, f.Subscribers())

	s.Cancel()
	assert.Equal(t, 0, f.Subscribers())
	assertClosed(t, s)

	assert.NotPanics(t, func() {
		s.Cancel()
		f.Publish(3)
	}, "double cancel is a no-op")
}

func TestFeedClose(t *testing.T) {
	f := NewFeed[int]()
	a := f.Subscribe(1)
	b := f.Subscribe(1)

	f.Close()
	assertClosed(t, a)
	assertClosed(t, b)

	assert.NotPanics(t, func() {
		f.Close()
		f.Publish(1)
		a.Cancel()
	})

	late := f.Subscribe(1)
	assertClosed(t, late)
}

func TestFeedConcurrentPublishAndCancel(t *testing.T) {
	f := NewFeed[int]()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			f.Publish(i)
		}
	}()

	for i := 0; i < 100; i++ {
		s := f.Subscribe(1)
		s.Cancel()
	}
	<-done
	assert.Equal(t, 0, f.Subscribers())
}
