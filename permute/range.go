package permute

import (
	"iter"
	"math"
)

// Integer is the set of integer types a RangeIter can produce.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// RangeIter visits every integer of a range exactly once in pseudo-random
// order. It is created by Range, RangeFrom, RangeTo or RangeInclusive.
type RangeIter[T Integer] struct {
	engine *Engine
	low    T
	high   T // inclusive
}

// Range creates an iterator over the half-open range [low, high).
//
// Returns an error if:
//   - high <= low (ErrInvalidRange)
//   - the range holds more than 2^32 values (ErrRangeTooLarge)
//
// Example:
//
//	// visit [1000, 10000) in random order
//	iter, err := permute.Range(src, 1000, 10000)
//	if err != nil {
//	    return err
//	}
func Range[T Integer](src Source, low, high T) (*RangeIter[T], error) {
	if high <= low {
		return nil, domainError(low, high, ErrInvalidRange)
	}
	return newRange(src, low, high-1)
}

// RangeFrom creates an iterator over [low, maximum value of T].
func RangeFrom[T Integer](src Source, low T) (*RangeIter[T], error) {
	_, upper := limits[T]()
	return newRange(src, low, upper)
}

// RangeTo creates an iterator over [minimum value of T, high).
// It returns ErrInvalidRange when high is the minimum value of T.
func RangeTo[T Integer](src Source, high T) (*RangeIter[T], error) {
	lower, _ := limits[T]()
	if high == lower {
		return nil, domainError(lower, high, ErrInvalidRange)
	}
	return newRange(src, lower, high-1)
}

// RangeInclusive creates an iterator over the closed range [low, high].
// It returns ErrInvalidRange when low > high.
func RangeInclusive[T Integer](src Source, low, high T) (*RangeIter[T], error) {
	if low > high {
		return nil, domainError(low, high, ErrInvalidRange)
	}
	return newRange(src, low, high)
}

// newRange builds the iterator for the non-empty closed range [low, high].
func newRange[T Integer](src Source, low, high T) (*RangeIter[T], error) {
	// Sign extension on the conversion and wrapping subtraction make this
	// the exact distance for every width, signed or not.
	span := uint64(high) - uint64(low)
	if span > math.MaxUint32 {
		return nil, domainError(low, high, ErrRangeTooLarge)
	}
	return &RangeIter[T]{
		engine: New(uint32(span), src),
		low:    low,
		high:   high,
	}, nil
}

// limits returns the minimum and maximum values of T.
func limits[T Integer]() (lower, upper T) {
	var width uint
	for v := ^T(0); v != 0; v <<= 1 {
		width++
	}
	if ^T(0) > 0 {
		return 0, ^T(0)
	}
	lower = T(1) << (width - 1)
	return lower, lower - 1
}

// Next returns the next integer of the range.
// It returns false once every integer has been returned.
func (r *RangeIter[T]) Next() (T, bool) {
	v, ok := r.engine.Next()
	if !ok {
		return 0, false
	}
	return r.low + T(v), true
}

// All returns an iterator over the integers not yet returned by Next.
func (r *RangeIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := r.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Low returns the lower bound of the range (inclusive).
func (r *RangeIter[T]) Low() T {
	return r.low
}

// High returns the upper bound of the range (inclusive).
func (r *RangeIter[T]) High() T {
	return r.high
}

// Size returns the number of integers in the range.
func (r *RangeIter[T]) Size() uint64 {
	return r.engine.Size()
}

// Remaining returns the number of integers not yet returned.
func (r *RangeIter[T]) Remaining() uint64 {
	return r.engine.Remaining()
}
