package permute

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// math/rand is only used to feed the engines under test

func newSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// countingSource returns 1, 2, 3, ... and records how many values were drawn.
type countingSource struct {
	draws uint32
}

func (c *countingSource) Uint32() uint32 {
	c.draws++
	return c.draws
}

// tester is implemented by both *testing.T and *rapid.T.
type tester interface {
	Helper()
	Fatalf(format string, args ...any)
}

// drain collects every value of e and fails the test on a repeated or out of
// range value.
func drain(t tester, e *Engine) *bitset.BitSet {
	t.Helper()
	seen := bitset.New(uint(e.Size()))
	for {
		v, ok := e.Next()
		if !ok {
			break
		}
		if v > e.Max() {
			t.Fatalf("value %d out of range [0, %d]", v, e.Max())
		}
		if seen.Test(uint(v)) {
			t.Fatalf("duplicate value %d for max %d", v, e.Max())
		}
		seen.Set(uint(v))
	}
	return seen
}

func TestEngineBijection(t *testing.T) {
	t.Parallel()

	src := newSource(1)
	for max := uint32(0); max <= 1024; max++ {
		e := New(max, src)
		seen := drain(t, e)
		if seen.Count() != uint(max)+1 {
			t.Fatalf("max %d: got %d values, want %d", max, seen.Count(), max+1)
		}
		if e.Remaining() != 0 {
			t.Fatalf("max %d: remaining %d after exhaustion", max, e.Remaining())
		}
		for i := 0; i < 3; i++ {
			if _, ok := e.Next(); ok {
				t.Fatalf("max %d: engine returned a value after exhaustion", max)
			}
		}
	}
}

func TestEngineRapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		max := rapid.Uint32Range(0, 1<<16).Draw(t, "max")
		seed := rapid.Uint64().Draw(t, "seed")

		e := New(max, newSource(seed))
		seen := drain(t, e)
		if seen.Count() != uint(max)+1 {
			t.Fatalf("got %d values, want %d", seen.Count(), uint64(max)+1)
		}
	})
}

func TestEngineSingleValue(t *testing.T) {
	t.Parallel()

	e := New(0, newSource(2))
	require.Equal(t, uint64(1), e.Size())
	require.Equal(t, uint64(1), e.Remaining())

	v, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, uint32(0), v)

	_, ok = e.Next()
	require.False(t, ok)
	require.Equal(t, uint64(0), e.Remaining())
}

func TestEngineMaxUint32(t *testing.T) {
	t.Parallel()

	e := New(math.MaxUint32, newSource(3))
	require.Equal(t, uint64(1)<<32, e.Size())

	for i := 0; i < 10; i++ {
		_, ok := e.Next()
		require.True(t, ok)
	}

	// fast forward: only the last 10 values are left
	e.count = math.MaxUint32 - 9
	require.Equal(t, uint64(10), e.Remaining())

	for i := 0; i < 10; i++ {
		_, ok := e.Next()
		require.True(t, ok, "value %d of the last 10 missing", i)
	}
	require.True(t, e.done)
	require.Equal(t, uint64(0), e.Remaining())

	_, ok := e.Next()
	require.False(t, ok)
}

func TestEngineTerminalState(t *testing.T) {
	t.Parallel()

	e := New(5, newSource(4))
	for i := 0; i < 5; i++ {
		_, ok := e.Next()
		require.True(t, ok)
	}
	// terminal element pending
	assert.Equal(t, uint32(5), e.count)
	assert.False(t, e.done)
	assert.Equal(t, uint64(1), e.Remaining())

	_, ok := e.Next()
	require.True(t, ok)
	assert.True(t, e.done)
	assert.Equal(t, uint64(0), e.Remaining())
}

func TestEngineDraws(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	e := New(100, src)

	require.Equal(t, uint32(5), src.draws, "construction must draw exactly five values")
	assert.Equal(t, uint32(1), e.index)
	assert.Equal(t, uint32(2<<1|1), e.f1)
	assert.Equal(t, uint32(3<<1|1), e.f2)
	assert.Equal(t, uint32(4), e.x1)
	assert.Equal(t, uint32(5), e.x2)

	drain(t, e)
	assert.Equal(t, uint32(5), src.draws, "iteration must not draw from the source")
}

func TestEngineOddFactors(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.Uint32().Draw(t, "raw")
		f := factor(SourceFunc(func() uint32 { return raw }))
		if f&1 != 1 {
			t.Fatalf("factor %#x is even", f)
		}
	})
}

func TestEngineMask(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		max  uint32
		mask uint32
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 3},
		{4, 7},
		{1000, 1023},
		{1023, 1023},
		{1024, 2047},
		{1<<31 - 1, 1<<31 - 1},
		{1 << 31, math.MaxUint32},
		{math.MaxUint32, math.MaxUint32},
	}

	for _, tc := range testCases {
		e := New(tc.max, newSource(5))
		if e.mask != tc.mask {
			t.Errorf("max %d: mask = %#x, want %#x", tc.max, e.mask, tc.mask)
		}
		if e.mask < e.max || (uint64(e.mask)+1)&uint64(e.mask) != 0 {
			t.Errorf("max %d: mask %#x is not a power of two minus one covering max", tc.max, e.mask)
		}
	}
}

func TestEngineCalcBijective(t *testing.T) {
	t.Parallel()

	// the mixing function alone must be a bijection on [0, mask]
	e := New(4095, newSource(6))
	seen := bitset.New(4096)
	for v := uint32(0); v <= e.mask; v++ {
		out := e.calc(v)
		require.LessOrEqual(t, out, e.mask)
		require.False(t, seen.Test(uint(out)), "calc(%d) = %d already produced", v, out)
		seen.Set(uint(out))
	}
	require.True(t, seen.All())
}

func TestEngineDeterministic(t *testing.T) {
	t.Parallel()

	e1 := New(9999, newSource(42))
	e2 := New(9999, newSource(42))
	for {
		v1, ok1 := e1.Next()
		v2, ok2 := e2.Next()
		require.Equal(t, ok1, ok2)
		require.Equal(t, v1, v2)
		if !ok1 {
			break
		}
	}
}

func TestEngineCopy(t *testing.T) {
	t.Parallel()

	e := New(500, newSource(7))
	for i := 0; i < 100; i++ {
		e.Next()
	}

	c := *e
	var fromOriginal, fromCopy []uint32
	for v := range e.All() {
		fromOriginal = append(fromOriginal, v)
	}
	for v := range c.All() {
		fromCopy = append(fromCopy, v)
	}
	require.Len(t, fromOriginal, 401)
	require.Equal(t, fromOriginal, fromCopy)
}

func TestEngineAllBreak(t *testing.T) {
	t.Parallel()

	e := New(99, newSource(8))
	n := 0
	for range e.All() {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, uint64(97), e.Remaining())

	seen := drain(t, e)
	require.Equal(t, uint(97), seen.Count())
}

func TestEngineNotSequential(t *testing.T) {
	t.Parallel()

	e := New(999, newSource(9))
	values := make([]uint32, 0, 100)
	for i := 0; i < 100; i++ {
		v, _ := e.Next()
		values = append(values, v)
	}

	sequential := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			sequential = false
			break
		}
	}
	if sequential {
		t.Error("values are sequential - no permutation occurring")
	}
}

func BenchmarkEngine(b *testing.B) {
	src := newSource(1)
	e := New(1<<20-1, src)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := e.Next(); !ok {
			e = New(1<<20-1, src)
		}
	}
}

func BenchmarkEngineWorstMask(b *testing.B) {
	// max just above a power of two: half of the mixed values are skipped
	src := newSource(1)
	e := New(1<<20, src)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := e.Next(); !ok {
			e = New(1<<20, src)
		}
	}
}
