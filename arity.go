package funcbuf

// Go generics have no variadic type parameters, so signatures of other
// arities are thin wrappers over the unary Buffer core: niladic calls
// pass struct{}, binary calls pack both arguments into an Args2.

// Args2 packs the two arguments of a Buffer2 call.
type Args2[A any, B any] struct {
	A A
	B B
}

// Buffer0 is a fixed-capacity container for a callable with signature
// func() R. The zero value is an empty, ready-to-use buffer.
type Buffer0[S any, R any] struct {
	inner Buffer[S, struct{}, R]
}

// New0 returns a Buffer0 bound to fn. A nil fn yields an empty buffer.
func New0[S any, R any](fn func() R) Buffer0[S, R] {
	var b Buffer0[S, R]
	b.Set(fn)
	return b
}

// Set binds fn, dropping any previous payload. Set(nil) empties the
// buffer. Returns the buffer for chaining.
func (b *Buffer0[S, R]) Set(fn func() R) *Buffer0[S, R] {
	if fn == nil {
		b.inner.Clear()
		return b
	}
	Place(&b.inner, fn0Adapter[R]{fn: fn})
	return b
}

// Call invokes the bound payload. Returns ErrEmpty if the buffer is
// empty.
func (b *Buffer0[S, R]) Call() (R, error) {
	return b.inner.Call(struct{}{})
}

// MustCall is Call but panics on an empty buffer.
func (b *Buffer0[S, R]) MustCall() R {
	return b.inner.MustCall(struct{}{})
}

func (b *Buffer0[S, R]) IsEmpty() bool { return b.inner.IsEmpty() }

func (b *Buffer0[S, R]) Clear() { b.inner.Clear() }

func (b *Buffer0[S, R]) CopyFrom(other *Buffer0[S, R]) { b.inner.CopyFrom(&other.inner) }

func (b *Buffer0[S, R]) MoveFrom(other *Buffer0[S, R]) { b.inner.MoveFrom(&other.inner) }

func (b *Buffer0[S, R]) Metrics() BufferMetrics { return b.inner.Metrics() }

func (b *Buffer0[S, R]) Fingerprint() uint64 { return b.inner.Fingerprint() }

// Buffer2 is a fixed-capacity container for a callable with signature
// func(A, B) R. The zero value is an empty, ready-to-use buffer.
type Buffer2[S any, A any, B any, R any] struct {
	inner Buffer[S, Args2[A, B], R]
}

// New2 returns a Buffer2 bound to fn. A nil fn yields an empty buffer.
func New2[S any, A any, B any, R any](fn func(A, B) R) Buffer2[S, A, B, R] {
	var b Buffer2[S, A, B, R]
	b.Set(fn)
	return b
}

// Set binds fn, dropping any previous payload. Set(nil) empties the
// buffer. Returns the buffer for chaining.
func (b *Buffer2[S, A, B, R]) Set(fn func(A, B) R) *Buffer2[S, A, B, R] {
	if fn == nil {
		b.inner.Clear()
		return b
	}
	Place(&b.inner, fn2Adapter[A, B, R]{fn: fn})
	return b
}

// Call invokes the bound payload with (first, second). Returns
// ErrEmpty if the buffer is empty.
func (b *Buffer2[S, A, B, R]) Call(first A, second B) (R, error) {
	return b.inner.Call(Args2[A, B]{A: first, B: second})
}

// MustCall is Call but panics on an empty buffer.
func (b *Buffer2[S, A, B, R]) MustCall(first A, second B) R {
	return b.inner.MustCall(Args2[A, B]{A: first, B: second})
}

func (b *Buffer2[S, A, B, R]) IsEmpty() bool { return b.inner.IsEmpty() }

func (b *Buffer2[S, A, B, R]) Clear() { b.inner.Clear() }

func (b *Buffer2[S, A, B, R]) CopyFrom(other *Buffer2[S, A, B, R]) { b.inner.CopyFrom(&other.inner) }

func (b *Buffer2[S, A, B, R]) MoveFrom(other *Buffer2[S, A, B, R]) { b.inner.MoveFrom(&other.inner) }

func (b *Buffer2[S, A, B, R]) Metrics() BufferMetrics { return b.inner.Metrics() }

func (b *Buffer2[S, A, B, R]) Fingerprint() uint64 { return b.inner.Fingerprint() }

type fn0Adapter[R any] struct {
	fn func() R
}

func (f fn0Adapter[R]) Invoke(struct{}) R { return f.fn() }

type fn2Adapter[A any, B any, R any] struct {
	fn func(A, B) R
}

func (f fn2Adapter[A, B, R]) Invoke(p Args2[A, B]) R { return f.fn(p.A, p.B) }
