// Package funcbuf implements a fixed-capacity, type-erased callable
// container for Go.
//
// # Overview
//
// A Buffer stores one callable payload — a plain func value or any
// type with an Invoke method — inside an inline byte array embedded in
// the container value itself. Binding, rebinding, copying and calling
// never heap-allocate per payload, which makes the type useful for:
//
//   - Hot paths where closure churn creates garbage-collector pressure
//   - Callback slots in pooled or arena-backed objects
//   - Latency-sensitive code that needs predictable allocation behavior
//
// # Basic Usage
//
//	var b funcbuf.Buffer[funcbuf.Bytes40, int, int]
//	b.Set(func(x int) int { return x + 1 })
//
//	out, err := b.Call(5) // out == 6
//
//	b.Set(func(x int) int { return x * 2 })
//	out, err = b.Call(5) // out == 10
//
// The storage type parameter fixes the capacity per instantiation
// site: Bytes40 is the default, and any byte array type works:
//
//	var big funcbuf.Buffer[[256]byte, string, error]
//
// Callable structs bind through Place and may implement Disposer to
// observe their own drop:
//
//	type adder struct{ n int }
//
//	func (a adder) Invoke(x int) int { return x + a.n }
//
//	funcbuf.Place(&b, adder{n: 10})
//
// # Capacity Violations
//
// A payload that does not fit its storage type is a programming error
// of the instantiation site, not a runtime condition: Place panics at
// the first bind with a diagnostic message. Calling an empty buffer is
// the only runtime error; Call returns ErrEmpty and leaves the buffer
// empty.
//
// # Thread Safety
//
// Buffer is a single-threaded value type. For concurrent access, use
// SafeBuffer:
//
//	s := funcbuf.NewSafe[funcbuf.Bytes40](func(x int) int { return x + 1 })
//	out, err := s.Call(5)
//
// # Memory Layout
//
// The payload's bytes live at the start of the buffer's storage array,
// which sits at offset 0 of the Buffer struct behind a word-alignment
// anchor. Dispatch goes through a per-payload-type table of function
// pointers built once and cached globally; the table pointer is the
// buffer's only handle to the payload, so a Buffer is position
// independent and plain struct assignment is a valid copy.
//
// # Important Notes
//
//   - The payload's pointer words are mirrored into a side array so
//     the garbage collector keeps their referents alive; payloads with
//     more than 8 pointer words are rejected at bind time
//   - MoveFrom empties the source without running its Dispose; CopyFrom
//     and reassignment drop the previous payload exactly once
//   - Metrics() and Fingerprint() expose payload size and byte identity
//     without touching the payload's behavior
package funcbuf
