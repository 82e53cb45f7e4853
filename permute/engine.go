package permute

import (
	"iter"
	"math/bits"
)

// Engine lazily generates a pseudo-random permutation of [0, max].
//
// The engine walks an index over the smallest power-of-two domain that holds
// max+1 values and maps every index through a bijective mixing function.
// Mixed values above max are skipped, so each value in [0, max] is emitted
// exactly once and no more than max+1 values are ever produced.
//
// An Engine holds only a handful of integers. It is not safe for concurrent
// use, but copying it by value gives an independent engine that continues
// the same permutation.
//
// Example usage:
//
//	e := permute.New(9, rand.New(rand.NewPCG(1, 2)))
//	for {
//	    n, ok := e.Next()
//	    if !ok {
//	        break
//	    }
//	    // n is in [0, 9], each value exactly once
//	}
type Engine struct {
	max  uint32
	mask uint32

	index uint32
	count uint32

	// odd multipliers and xor masks of the mixing function
	f1, f2 uint32
	x1, x2 uint32

	done bool
}

// New creates an engine for the permutation of [0, max].
//
// It draws exactly five values from src: the starting index, two
// multipliers and two xor masks. src is not used after New returns.
func New(max uint32, src Source) *Engine {
	// for max >= 1<<31 the shift is 32 and Go yields 0, so the mask wraps
	// to all ones
	mask := uint32(1)<<bits.Len32(max) - 1

	e := &Engine{
		max:  max,
		mask: mask,
	}
	e.index = src.Uint32()
	e.f1 = factor(src)
	e.f2 = factor(src)
	e.x1 = src.Uint32()
	e.x2 = src.Uint32()
	return e
}

// factor draws a random odd multiplier. Odd numbers are units modulo any
// power of two, which keeps the multiplication invertible.
func factor(src Source) uint32 {
	return src.Uint32()<<1 | 1
}

// Next returns the next value of the permutation.
// It returns false once all max+1 values have been generated.
func (e *Engine) Next() (uint32, bool) {
	if e.count < e.max {
		return e.step(), true
	}
	if e.done {
		return 0, false
	}
	// Terminal element. Incrementing count past max would wrap to 0 when
	// max is MaxUint32, so push it back by one and take the regular step once.
	e.done = true
	e.count--
	return e.step(), true
}

// step advances the walk to the next index whose mixed value is in range.
func (e *Engine) step() uint32 {
	e.index++
	e.count++

	v := e.calc(e.index)
	for v > e.max {
		e.index++
		v = e.calc(e.index)
	}
	return v
}

func (e *Engine) calc(v uint32) uint32 {
	return ((((v * e.f1) ^ e.x1) * e.f2) ^ e.x2) & e.mask
}

// Max returns the inclusive upper bound of the permuted domain.
func (e *Engine) Max() uint32 {
	return e.max
}

// Size returns the total number of values the engine generates.
func (e *Engine) Size() uint64 {
	return uint64(e.max) + 1
}

// Remaining returns the number of values not yet generated.
func (e *Engine) Remaining() uint64 {
	if e.done {
		return 0
	}
	return uint64(e.max) - uint64(e.count) + 1
}

// All returns an iterator over the values not yet generated.
// Breaking out of the loop leaves the engine positioned after the last value
// that was yielded.
func (e *Engine) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for {
			v, ok := e.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
