package funcbuf

import (
	"maps"
	"reflect"
	"sync/atomic"
	"unsafe"
)

// maxPointerWords caps how many pointer words a payload's
// representation may contain. Each one is mirrored into the buffer's
// refs array for garbage-collector visibility, so the cap bounds the
// fixed per-buffer overhead. A plain func payload uses one word.
const maxPointerWords = 8

const ptrSize = unsafe.Sizeof(uintptr(0))

// table is the dispatch table for one concrete payload type F: the
// erasure interface rendered as function pointers instead of a
// polymorphic object laid out in storage. One table is built per
// payload type and shared by every buffer holding that type, so the
// buffer's handle carries no per-instance state and survives struct
// copies unchanged.
type table[A any, R any] struct {
	// invoke calls the payload at p with arg.
	invoke func(p unsafe.Pointer, arg A) R

	// drop finalizes the payload at p: Dispose if implemented, then
	// a typed zero write over its bytes.
	drop func(p unsafe.Pointer)

	// clone and relocate duplicate or transfer the payload between
	// storage locations via typed assignment. relocate additionally
	// zeroes the source.
	clone    func(dst, src unsafe.Pointer)
	relocate func(dst, src unsafe.Pointer)

	info *payloadInfo
}

// payloadInfo is the reflect-derived metadata of a payload type.
type payloadInfo struct {
	rtype reflect.Type
	size  uintptr

	// ptrOffsets are the byte offsets of every pointer word in the
	// payload's representation.
	ptrOffsets []uintptr
}

// tables maps abi type pointers to *table values (stored as any, since
// each signature instantiates its own table type).
var tables atomic.Pointer[map[unsafe.Pointer]any]

func init() {
	tables.Store(&map[unsafe.Pointer]any{})
}

// tableFor returns the cached dispatch table for payload type F,
// building and publishing it on first use. Lock-free: concurrent first
// binds race to publish a clone of the registry map.
func tableFor[A any, R any, F Callable[A, R]]() *table[A, R] {
	key := abiTypePointer(reflect.TypeOf((*F)(nil)).Elem())

	for {
		prev := tables.Load()
		if cached, ok := (*prev)[key]; ok {
			return cached.(*table[A, R])
		}

		vt := makeTable[A, R, F]()

		next := maps.Clone(*prev)
		next[key] = vt

		if tables.CompareAndSwap(prev, &next) {
			return vt
		}
	}
}

func makeTable[A any, R any, F Callable[A, R]]() *table[A, R] {
	rt := reflect.TypeOf((*F)(nil)).Elem()

	return &table[A, R]{
		invoke:   invokePayload[A, R, F],
		drop:     dropFor[F](rt),
		clone:    clonePayload[F],
		relocate: relocatePayload[F],
		info: &payloadInfo{
			rtype:      rt,
			size:       rt.Size(),
			ptrOffsets: pointerOffsetsOf(rt, 0, nil),
		},
	}
}

func invokePayload[A any, R any, F Callable[A, R]](p unsafe.Pointer, arg A) R {
	v := *(*F)(p)
	return v.Invoke(arg)
}

// dropFor selects the drop entry for F once, at table-build time, so
// the drop path never boxes a non-pointer-shaped value.
func dropFor[F any](rt reflect.Type) func(unsafe.Pointer) {
	disposer := reflect.TypeOf((*Disposer)(nil)).Elem()
	switch {
	case reflect.PointerTo(rt).Implements(disposer):
		return dropDisposeAddr[F]
	case rt.Implements(disposer):
		// F is itself a pointer type with a Dispose method, so the
		// value is pointer shaped and the assertion does not allocate.
		return dropDisposeValue[F]
	default:
		return dropZero[F]
	}
}

func dropDisposeAddr[F any](p unsafe.Pointer) {
	any((*F)(p)).(Disposer).Dispose()
	var zero F
	*(*F)(p) = zero
}

func dropDisposeValue[F any](p unsafe.Pointer) {
	any(*(*F)(p)).(Disposer).Dispose()
	var zero F
	*(*F)(p) = zero
}

func dropZero[F any](p unsafe.Pointer) {
	var zero F
	*(*F)(p) = zero
}

func clonePayload[F any](dst, src unsafe.Pointer) {
	*(*F)(dst) = *(*F)(src)
}

func relocatePayload[F any](dst, src unsafe.Pointer) {
	*(*F)(dst) = *(*F)(src)
	var zero F
	*(*F)(src) = zero
}

// abiTypePointer returns the runtime type descriptor address backing t.
// A reflect.Type interface value carries that descriptor as its data
// word, which gives a stable, comparable registry key.
func abiTypePointer(t reflect.Type) unsafe.Pointer {
	type eface struct{ typ, val unsafe.Pointer }
	return (*eface)(unsafe.Pointer(&t)).val
}

// pointerOffsetsOf walks t and records the byte offset of every
// pointer word in its representation. Interface values contribute only
// their data word; the type word references static runtime metadata
// and needs no liveness help. Strings and slices keep their data
// pointer in the first word.
func pointerOffsetsOf(t reflect.Type, base uintptr, offs []uintptr) []uintptr {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		offs = append(offs, base)
	case reflect.String, reflect.Slice:
		offs = append(offs, base)
	case reflect.Interface:
		offs = append(offs, base+ptrSize)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			offs = pointerOffsetsOf(f.Type, base+f.Offset, offs)
		}
	case reflect.Array:
		elem := t.Elem()
		for i := 0; i < t.Len(); i++ {
			offs = pointerOffsetsOf(elem, base+uintptr(i)*elem.Size(), offs)
		}
	}
	return offs
}
