package permute

import "iter"

// SliceIter visits the elements of a slice in pseudo-random order without
// copying or reordering them.
//
// The iterator borrows the slice: it reads elements through the slice given
// to Slice and hands out pointers into it. The slice must not be resliced or
// reallocated by its owner while the iterator is in use.
type SliceIter[T any] struct {
	engine *Engine
	s      []T
}

// Slice creates an iterator over the elements of s.
//
// Returns an error if:
//   - s is empty (ErrEmptySequence)
//   - s holds more than 2^32 elements (ErrSequenceTooLarge)
//
// Example:
//
//	hosts := []string{"a", "b", "c"}
//	iter, err := permute.Slice(src, hosts)
//	if err != nil {
//	    return err
//	}
//	for i, h := range iter.All() {
//	    fmt.Println(i, *h)
//	}
func Slice[T any](src Source, s []T) (*SliceIter[T], error) {
	last, err := checkLen(len(s))
	if err != nil {
		return nil, err
	}
	return &SliceIter[T]{
		engine: New(last, src),
		s:      s,
	}, nil
}

// Next returns a pointer to the next element.
// It returns false once every element has been visited.
func (it *SliceIter[T]) Next() (*T, bool) {
	i, ok := it.engine.Next()
	if !ok {
		return nil, false
	}
	return &it.s[i], true
}

// All returns an iterator over the index and address of every element not
// yet visited.
func (it *SliceIter[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for {
			i, ok := it.engine.Next()
			if !ok || !yield(int(i), &it.s[i]) {
				return
			}
		}
	}
}

// Len returns the length of the underlying slice.
func (it *SliceIter[T]) Len() int {
	return len(it.s)
}

// Remaining returns the number of elements not yet visited.
func (it *SliceIter[T]) Remaining() uint64 {
	return it.engine.Remaining()
}

// IndexIter visits the indices [0, n) in pseudo-random order. It serves
// collections that can be indexed but are not Go slices.
type IndexIter struct {
	engine *Engine
	n      int
}

// Indices creates an iterator over [0, n).
// It fails like Slice for n <= 0 or n > 2^32.
func Indices(src Source, n int) (*IndexIter, error) {
	last, err := checkLen(n)
	if err != nil {
		return nil, err
	}
	return &IndexIter{
		engine: New(last, src),
		n:      n,
	}, nil
}

// Next returns the next index.
// It returns false once every index has been returned.
func (it *IndexIter) Next() (int, bool) {
	i, ok := it.engine.Next()
	return int(i), ok
}

// All returns an iterator over the indices not yet returned.
func (it *IndexIter) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			i, ok := it.Next()
			if !ok || !yield(i) {
				return
			}
		}
	}
}

// Len returns n.
func (it *IndexIter) Len() int {
	return it.n
}

// Remaining returns the number of indices not yet returned.
func (it *IndexIter) Remaining() uint64 {
	return it.engine.Remaining()
}
