package funcbuf

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// SizeInUse returns the number of storage bytes occupied by the bound
// payload, or 0 when the buffer is empty.
func (b *Buffer[S, A, R]) SizeInUse() int {
	if b.vt == nil {
		return 0
	}
	return int(b.vt.info.size)
}

// Capacity returns the total storage capacity in bytes.
func (b *Buffer[S, A, R]) Capacity() int {
	return int(unsafe.Sizeof(b.storage))
}

// Utilization returns the ratio of payload size to capacity (0.0 to 1.0).
// Returns 0.0 for an empty buffer or zero-capacity storage.
func (b *Buffer[S, A, R]) Utilization() float64 {
	capacity := b.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(b.SizeInUse()) / float64(capacity)
}

// PointerWords returns how many of the payload's pointer words are
// mirrored for the garbage collector, or 0 when the buffer is empty.
func (b *Buffer[S, A, R]) PointerWords() int {
	if b.vt == nil {
		return 0
	}
	return len(b.vt.info.ptrOffsets)
}

// Fingerprint returns a 64-bit hash of the payload's storage bytes, or
// 0 when the buffer is empty. Buffers holding byte-identical payloads
// share a fingerprint, which makes it usable for cheap change
// detection across rebinds. This is byte identity, not behavioral
// equality: two distinct closures with the same behavior hash
// differently.
func (b *Buffer[S, A, R]) Fingerprint() uint64 {
	if b.vt == nil {
		return 0
	}
	view := unsafe.Slice((*byte)(b.ptr()), b.vt.info.size)
	return xxhash.Sum64(view)
}

// Metrics returns a snapshot of buffer statistics.
func (b *Buffer[S, A, R]) Metrics() BufferMetrics {
	return BufferMetrics{
		SizeInUse:    b.SizeInUse(),
		Capacity:     b.Capacity(),
		Utilization:  b.Utilization(),
		PointerWords: b.PointerWords(),
	}
}

// BufferMetrics contains statistical information about a buffer.
type BufferMetrics struct {
	SizeInUse    int     // Payload size in bytes, 0 when empty
	Capacity     int     // Storage capacity in bytes
	Utilization  float64 // Ratio of payload size to capacity (0.0-1.0)
	PointerWords int     // Mirrored pointer words of the payload
}

// Thread-safe metrics for SafeBuffer

// SizeInUse thread-safely returns the payload size in bytes.
func (s *SafeBuffer[S, A, R]) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.SizeInUse()
}

// Capacity thread-safely returns the storage capacity in bytes.
func (s *SafeBuffer[S, A, R]) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Capacity()
}

// Utilization thread-safely returns the ratio of payload size to capacity.
func (s *SafeBuffer[S, A, R]) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Utilization()
}

// PointerWords thread-safely returns the payload's mirrored pointer words.
func (s *SafeBuffer[S, A, R]) PointerWords() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.PointerWords()
}

// Fingerprint thread-safely returns the payload byte hash.
func (s *SafeBuffer[S, A, R]) Fingerprint() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Fingerprint()
}

// Metrics thread-safely returns a snapshot of buffer statistics.
func (s *SafeBuffer[S, A, R]) Metrics() BufferMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Metrics()
}
