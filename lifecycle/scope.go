// Package lifecycle ties cancellable registrations to the lifetime of the
// screen that made them.
//
// A screen creates one Scope, passes every subscription or in-flight request
// it starts through Track, and calls Close when it is torn down. Close
// cancels each tracked handle exactly once, in registration order. A handle
// that panics while cancelling is logged and skipped; the remaining handles
// are still cancelled. Closing twice is a no-op.
package lifecycle

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handle is a cancellable registration: a stream subscription, a ticker, an
// in-flight request.
type Handle interface {
	Cancel()
}

// HandleFunc adapts a plain function, such as a context.CancelFunc.
type HandleFunc func()

func (f HandleFunc) Cancel() { f() }

type onceHandle struct {
	once sync.Once
	h    Handle
}

func (o *onceHandle) Cancel() { o.once.Do(o.h.Cancel) }

// Once makes any handle safe to cancel more than once.
func Once(h Handle) Handle {
	if o, ok := h.(*onceHandle); ok {
		return o
	}
	return &onceHandle{h: h}
}

// Scope owns the handles a screen registered and cancels them on Close.
type Scope struct {
	mu      sync.Mutex
	handles []Handle
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New returns an open scope whose Context is derived from parent and
// cancelled by Close.
func New(parent context.Context) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes. Requests started on behalf
// of the screen should use it.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Track records h and returns it. Tracking on a closed scope cancels h
// right away so it cannot outlive its owner.
func (s *Scope) Track(h Handle) Handle {
	if h == nil {
		return nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancelIsolated(h)
		return h
	}
	s.handles = append(s.handles, h)
	s.mu.Unlock()
	return h
}

// Forget drops h without cancelling it, once the work it guards has
// finished. It reports whether h was tracked. Handles of an uncomparable
// type, such as a bare HandleFunc, cannot be forgotten.
func (s *Scope) Forget(h Handle) bool {
	if h == nil || !reflect.TypeOf(h).Comparable() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tracked := range s.handles {
		if reflect.TypeOf(tracked).Comparable() && tracked == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			return true
		}
	}
	return false
}

// TrackFunc tracks fn wrapped by Once. The returned handle can be passed to
// Forget.
func (s *Scope) TrackFunc(fn func()) Handle {
	return s.Track(Once(HandleFunc(fn)))
}

// Len is the number of handles waiting to be cancelled.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels every tracked handle and the scope context. It returns the
// number of handles it cancelled, so 0 on every call after the first.
func (s *Scope) Close() int {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.closed = true
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()

	// Handles are cancelled outside the lock: a cancel func may call back
	// into Track, which must not deadlock.
	for _, h := range handles {
		cancelIsolated(h)
	}
	s.cancel()
	return len(handles)
}

func cancelIsolated(h Handle) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("handle", fmt.Sprintf("%T", h)).Interface("panic", r).Msg("cancelling handle failed")
		}
	}()
	h.Cancel()
}
