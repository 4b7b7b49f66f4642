// Package funcbuf implements a fixed-capacity, type-erased callable
// container. A Buffer stores one callable payload inside an inline
// byte array embedded in the container value itself, so binding and
// rebinding callables performs no per-bind heap allocation.
package funcbuf

import (
	"errors"
	"unsafe"
)

// DefaultCapacity is the storage size (in bytes) of the default
// storage type Bytes40.
const DefaultCapacity = 40

// Bytes40 is the default storage type for a Buffer. Any byte array
// type works as storage; its length is the buffer's capacity.
type Bytes40 = [DefaultCapacity]byte

// Bytes64 and Bytes128 are larger storage types for payloads that do
// not fit the default capacity.
type (
	Bytes64  = [64]byte
	Bytes128 = [128]byte
)

// ErrEmpty is returned by Call when the buffer holds no payload.
// The buffer is unchanged; the caller may bind a callable and retry.
var ErrEmpty = errors.New("funcbuf: buffer is empty")

// Buffer is a fixed-capacity container for one callable with signature
// func(A) R. S is the storage type, a byte array such as Bytes40;
// its size is the capacity and is fixed at compile time per
// instantiation site.
//
// The zero value is an empty, ready-to-use buffer. A Buffer is a value
// type: plain struct assignment yields an independent copy, since the
// dispatch handle never encodes the storage address. Not goroutine-safe;
// use SafeBuffer for concurrent access.
type Buffer[S any, A any, R any] struct {
	_ [0]uint64 // aligns storage to the platform word

	// storage holds the raw bytes of the bound payload.
	storage S

	// refs mirrors the payload's pointer words so the garbage
	// collector keeps their referents alive; storage itself is
	// opaque bytes the collector never scans.
	refs [maxPointerWords]unsafe.Pointer

	// vt is the dispatch table of the bound payload's concrete type.
	// nil means empty.
	vt *table[A, R]
}

// New returns a Buffer bound to fn. A nil fn yields an empty buffer.
func New[S any, A any, R any](fn func(A) R) Buffer[S, A, R] {
	var b Buffer[S, A, R]
	b.Set(fn)
	return b
}

// Set binds fn as the buffer's payload, dropping any previously bound
// payload first. Set(nil) empties the buffer. Returns the buffer for
// chaining.
func (b *Buffer[S, A, R]) Set(fn func(A) R) *Buffer[S, A, R] {
	if fn == nil {
		b.Clear()
		return b
	}
	Place(b, fnAdapter[A, R]{fn: fn})
	return b
}

// Call invokes the bound payload with arg. Returns ErrEmpty if the
// buffer is empty; the buffer stays empty and a later bind-then-call
// is legal.
func (b *Buffer[S, A, R]) Call(arg A) (R, error) {
	if b.vt == nil {
		var zero R
		return zero, ErrEmpty
	}
	out := b.vt.invoke(b.ptr(), arg)
	// a pointer-receiver Invoke may have rewritten payload fields
	b.syncRefs()
	return out, nil
}

// MustCall is Call but panics on an empty buffer.
func (b *Buffer[S, A, R]) MustCall(arg A) R {
	out, err := b.Call(arg)
	if err != nil {
		panic(err)
	}
	return out
}

// IsEmpty reports whether the buffer holds no payload.
func (b *Buffer[S, A, R]) IsEmpty() bool {
	return b.vt == nil
}

// Clear drops the bound payload, if any: the payload's Dispose method
// runs if it implements Disposer, its storage bytes are zeroed, and
// every mirrored pointer word is released. Clearing an empty buffer is
// a no-op, so the drop path of any one payload runs exactly once.
func (b *Buffer[S, A, R]) Clear() {
	if b.vt == nil {
		return
	}
	b.vt.drop(b.ptr())
	b.vt = nil
	b.refs = [maxPointerWords]unsafe.Pointer{}
}

// CopyFrom replaces b's payload with an independent copy of other's,
// made through the payload type's own clone entry rather than a raw
// byte copy. other is left untouched. Copying from an empty buffer
// empties b; copying a buffer into itself is a no-op.
func (b *Buffer[S, A, R]) CopyFrom(other *Buffer[S, A, R]) {
	if b == other {
		return
	}
	b.Clear()
	if other.vt == nil {
		return
	}
	other.vt.clone(b.ptr(), other.ptr())
	b.vt = other.vt
	b.syncRefs()
}

// MoveFrom transfers other's payload into b and empties other. The
// source's drop path does not run: ownership of the payload's
// resources moves with it, which is sound for every Go value (typed
// copy, no self-addresses). Moving from an empty buffer empties b.
func (b *Buffer[S, A, R]) MoveFrom(other *Buffer[S, A, R]) {
	if b == other {
		return
	}
	b.Clear()
	if other.vt == nil {
		return
	}
	other.vt.relocate(b.ptr(), other.ptr())
	b.vt = other.vt
	b.syncRefs()
	other.forget()
}

// Clone returns an independent copy of b, equivalent to CopyFrom on a
// fresh buffer.
func (b *Buffer[S, A, R]) Clone() Buffer[S, A, R] {
	var out Buffer[S, A, R]
	out.CopyFrom(b)
	return out
}

// forget empties the buffer without running the payload's drop path.
// Only valid after the payload has been relocated out.
func (b *Buffer[S, A, R]) forget() {
	var zero S
	b.storage = zero
	b.refs = [maxPointerWords]unsafe.Pointer{}
	b.vt = nil
}

// ptr returns the start of storage, where the payload lives.
func (b *Buffer[S, A, R]) ptr() unsafe.Pointer {
	return unsafe.Pointer(&b.storage)
}

// syncRefs re-mirrors the payload's pointer words into refs. Must only
// be called while vt is non-nil; slots beyond the payload's pointer
// count were zeroed by the preceding Clear.
func (b *Buffer[S, A, R]) syncRefs() {
	base := b.ptr()
	for i, off := range b.vt.info.ptrOffsets {
		b.refs[i] = *(*unsafe.Pointer)(unsafe.Add(base, off))
	}
}
