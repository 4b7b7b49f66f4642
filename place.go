package funcbuf

import (
	"fmt"
	"reflect"
)

// Callable is the capability a payload type must provide to be bound
// into a Buffer[S, A, R].
type Callable[A any, R any] interface {
	Invoke(A) R
}

// Disposer is implemented by payloads that own releasable resources.
// Dispose runs exactly once, when the payload is dropped by Clear,
// reassignment, or an incoming copy; it does not run when the payload
// is moved out, since ownership transfers with the move.
type Disposer interface {
	Dispose()
}

// Place binds a callable payload value into b's storage, dropping any
// previously bound payload first. The payload is stored by value,
// entirely inside b.
//
// Place panics if the payload does not fit the storage type: its size
// exceeds the storage size, its representation has more than
// maxPointerWords pointer words, or S is not a byte array. These are
// programming errors of the instantiation site, surfaced
// deterministically at the first bind; there is no runtime error path
// for them.
func Place[S any, A any, R any, F Callable[A, R]](b *Buffer[S, A, R], payload F) {
	vt := tableFor[A, R, F]()
	checkFit[S](vt.info)
	b.Clear()
	*(*F)(b.ptr()) = payload
	b.vt = vt
	b.syncRefs()
}

func checkFit[S any](info *payloadInfo) {
	st := reflect.TypeOf((*S)(nil)).Elem()
	if st.Kind() != reflect.Array || st.Elem().Kind() != reflect.Uint8 {
		panic(fmt.Sprintf("funcbuf: storage type %s is not a byte array", st))
	}
	if info.size > st.Size() {
		panic(fmt.Sprintf("funcbuf: payload %s (%d bytes) does not fit in %d-byte storage",
			info.rtype, info.size, st.Size()))
	}
	if n := len(info.ptrOffsets); n > maxPointerWords {
		panic(fmt.Sprintf("funcbuf: payload %s has %d pointer words, limit is %d",
			info.rtype, n, maxPointerWords))
	}
}

// fnAdapter lifts a plain func value into a Callable payload. It holds
// the func by value, so binding it allocates nothing.
type fnAdapter[A any, R any] struct {
	fn func(A) R
}

func (f fnAdapter[A, R]) Invoke(arg A) R {
	return f.fn(arg)
}
