package funcbuf

import "sync"

// SafeBuffer is a mutex-protected wrapper around Buffer for concurrent
// access. All operations are thread-safe but come with the overhead of
// mutex locking. Note that Call holds the lock for the duration of the
// payload's invocation.
type SafeBuffer[S any, A any, R any] struct {
	mu sync.Mutex
	b  Buffer[S, A, R]
}

// NewSafe creates a new thread-safe buffer bound to fn. A nil fn
// yields an empty buffer.
func NewSafe[S any, A any, R any](fn func(A) R) *SafeBuffer[S, A, R] {
	s := &SafeBuffer[S, A, R]{}
	s.b.Set(fn)
	return s
}

// Set thread-safely binds fn, dropping any previous payload. Set(nil)
// empties the buffer. Returns the buffer for chaining.
func (s *SafeBuffer[S, A, R]) Set(fn func(A) R) *SafeBuffer[S, A, R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Set(fn)
	return s
}

// Call thread-safely invokes the bound payload with arg. Returns
// ErrEmpty if the buffer is empty.
func (s *SafeBuffer[S, A, R]) Call(arg A) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Call(arg)
}

// MustCall is Call but panics on an empty buffer.
func (s *SafeBuffer[S, A, R]) MustCall(arg A) R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.MustCall(arg)
}

// IsEmpty thread-safely reports whether the buffer holds no payload.
func (s *SafeBuffer[S, A, R]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.IsEmpty()
}

// Clear thread-safely drops the bound payload, if any.
func (s *SafeBuffer[S, A, R]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Clear()
}

// Snapshot returns an independent unsynchronized copy of the current
// state, taken under the lock. Copying between two SafeBuffers via
// Snapshot never holds more than one lock at a time.
func (s *SafeBuffer[S, A, R]) Snapshot() Buffer[S, A, R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Clone()
}

// SafePlace thread-safely binds a callable payload value, dropping any
// previous payload first. Panics on capacity violations exactly like
// Place.
func SafePlace[S any, A any, R any, F Callable[A, R]](s *SafeBuffer[S, A, R], payload F) {
	s.mu.Lock()
	defer s.mu.Unlock()
	Place(&s.b, payload)
}
