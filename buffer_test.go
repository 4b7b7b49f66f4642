package funcbuf

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAdder is a callable payload that records how often its drop
// path ran.
type countingAdder struct {
	n     int
	drops *int
}

func (c countingAdder) Invoke(x int) int { return x + c.n }

func (c countingAdder) Dispose() { *c.drops++ }

func TestZeroValueIsEmpty(t *testing.T) {
	var b Buffer[Bytes40, int, int]

	require.True(t, b.IsEmpty())

	out, err := b.Call(5)
	require.ErrorIs(t, err, ErrEmpty)
	require.Equal(t, 0, out)

	// the failed call must not change state
	require.True(t, b.IsEmpty())
}

func TestBoundCallMatchesDirectCall(t *testing.T) {
	offset := 7

	tests := []struct {
		name string
		fn   func(int) int
	}{
		{"captureless", func(x int) int { return x * 2 }},
		{"capturing closure", func(x int) int { return x + offset }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[Bytes40](tt.fn)
			for _, arg := range []int{-3, 0, 5, 1 << 20} {
				out, err := b.Call(arg)
				require.NoError(t, err)
				require.Equal(t, tt.fn(arg), out)
			}
		})
	}
}

func TestNewNilIsEmpty(t *testing.T) {
	b := New[Bytes40, int, int](nil)
	require.True(t, b.IsEmpty())
}

func TestSetNilClears(t *testing.T) {
	drops := 0
	var b Buffer[Bytes40, int, int]
	Place(&b, countingAdder{n: 1, drops: &drops})

	b.Set(nil)
	require.True(t, b.IsEmpty())
	require.Equal(t, 1, drops)
}

func TestSetChains(t *testing.T) {
	var b Buffer[Bytes40, int, int]
	out := b.Set(func(x int) int { return x + 1 }).MustCall(1)
	require.Equal(t, 2, out)
}

func TestMustCallPanicsOnEmpty(t *testing.T) {
	var b Buffer[Bytes40, int, int]
	require.PanicsWithValue(t, ErrEmpty, func() { b.MustCall(1) })
}

func TestReassignDropsOldPayloadOnce(t *testing.T) {
	drops := 0
	var b Buffer[Bytes40, int, int]
	Place(&b, countingAdder{n: 1, drops: &drops})

	require.Equal(t, 6, b.MustCall(5))
	require.Equal(t, 0, drops)

	// worked example: rebind to a closure capturing 10
	ten := 10
	b.Set(func(x int) int { return x + ten })

	require.Equal(t, 15, b.MustCall(5))
	require.Equal(t, 1, drops, "old payload must be dropped exactly once")
}

func TestClearIsIdempotent(t *testing.T) {
	drops := 0
	var b Buffer[Bytes40, int, int]
	Place(&b, countingAdder{n: 1, drops: &drops})

	b.Clear()
	b.Clear()
	require.True(t, b.IsEmpty())
	require.Equal(t, 1, drops)
}

func TestClearEmptyRunsNoDrop(t *testing.T) {
	var b Buffer[Bytes40, int, int]
	b.Clear() // must not panic or touch anything
	require.True(t, b.IsEmpty())
}

func TestCopyFromIndependence(t *testing.T) {
	drops := 0
	var src Buffer[Bytes40, int, int]
	Place(&src, countingAdder{n: 10, drops: &drops})

	var dst Buffer[Bytes40, int, int]
	dst.CopyFrom(&src)

	// both produce identical results and the source stays live
	require.Equal(t, 15, src.MustCall(5))
	require.Equal(t, 15, dst.MustCall(5))

	// rebinding one must not affect the other
	src.Set(func(x int) int { return x * 100 })
	require.Equal(t, 15, dst.MustCall(5))
	require.Equal(t, 1, drops, "only the source's payload dropped so far")

	dst.Clear()
	require.Equal(t, 2, drops, "the copy owns its own payload")
}

func TestCopyFromEmptyEmptiesDestination(t *testing.T) {
	var src Buffer[Bytes40, int, int]
	dst := New[Bytes40](func(x int) int { return x })

	dst.CopyFrom(&src)
	require.True(t, dst.IsEmpty())
}

func TestCopyFromSelfIsNoOp(t *testing.T) {
	b := New[Bytes40](func(x int) int { return x + 1 })
	b.CopyFrom(&b)
	require.Equal(t, 2, b.MustCall(1))
}

func TestMoveFromTransfersAndEmptiesSource(t *testing.T) {
	src := New[Bytes40](func(x int) int { return x * 3 })

	var dst Buffer[Bytes40, int, int]
	dst.MoveFrom(&src)

	require.True(t, src.IsEmpty())
	_, err := src.Call(1)
	require.ErrorIs(t, err, ErrEmpty)

	require.Equal(t, 9, dst.MustCall(3))
}

func TestMoveFromDoesNotDropSource(t *testing.T) {
	drops := 0
	var src Buffer[Bytes40, int, int]
	Place(&src, countingAdder{n: 1, drops: &drops})

	var dst Buffer[Bytes40, int, int]
	dst.MoveFrom(&src)
	require.Equal(t, 0, drops, "ownership moved, no drop on the source side")

	dst.Clear()
	require.Equal(t, 1, drops)
}

func TestMoveFromSelfIsNoOp(t *testing.T) {
	b := New[Bytes40](func(x int) int { return x + 1 })
	b.MoveFrom(&b)
	require.Equal(t, 2, b.MustCall(1))
}

func TestMoveFromEmptySource(t *testing.T) {
	var src Buffer[Bytes40, int, int]
	dst := New[Bytes40](func(x int) int { return x })

	dst.MoveFrom(&src)
	require.True(t, dst.IsEmpty())
	require.True(t, src.IsEmpty())
}

func TestClone(t *testing.T) {
	b := New[Bytes40](func(x int) int { return x + 4 })
	c := b.Clone()

	require.Equal(t, 9, c.MustCall(5))

	b.Clear()
	require.Equal(t, 9, c.MustCall(5), "clone is independent of the original")
}

func TestStructAssignmentIsValidCopy(t *testing.T) {
	// the dispatch handle carries no address, so a plain struct copy
	// is as good as CopyFrom
	b := New[Bytes40](func(x int) int { return x - 1 })
	c := b

	require.Equal(t, 4, c.MustCall(5))
	require.Equal(t, 4, b.MustCall(5))
}

func TestMixedCapacities(t *testing.T) {
	// different call sites pick different capacities independently
	small := New[Bytes40](func(x int) int { return x + 1 })
	big := New[[256]byte](func(x int) int { return x + 2 })

	require.Equal(t, 2, small.MustCall(1))
	require.Equal(t, 3, big.MustCall(1))
	assert.Equal(t, 40, small.Capacity())
	assert.Equal(t, 256, big.Capacity())
}

func TestPayloadSurvivesGC(t *testing.T) {
	var b Buffer[Bytes40, int, string]

	// bind inside a func so no local keeps the captured data alive
	func() {
		data := strings.Repeat("x", 128)
		b.Set(func(n int) string { return data[:n] })
	}()

	runtime.GC()
	runtime.GC()

	require.Equal(t, "xxx", b.MustCall(3))
}

func TestRelocatedPayloadSurvivesGC(t *testing.T) {
	var src, dst Buffer[Bytes40, int, string]

	func() {
		data := strings.Repeat("y", 64)
		src.Set(func(n int) string { return data[:n] })
	}()

	dst.MoveFrom(&src)
	runtime.GC()
	runtime.GC()

	require.Equal(t, "yy", dst.MustCall(2))
}
