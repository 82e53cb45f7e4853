package shuffle

import (
	"github.com/lanrat/shuffle/permute"
)

// Cycle yields the indices [0, n) in random order forever. Every pass visits
// each index exactly once; when a pass is complete a fresh permutation is
// drawn from the source, so consecutive passes use different orders.
//
// Unlike the iterators in the permute package, a Cycle keeps using its
// source after construction. It is not safe for concurrent use.
type Cycle struct {
	src  permute.Source
	iter *permute.IndexIter
	n    int
	pass int
}

// NewCycle creates an endless random-order index stream over [0, n).
// It fails like permute.Indices for n <= 0 or n > 2^32.
func NewCycle(src permute.Source, n int) (*Cycle, error) {
	c := &Cycle{
		src: src,
		n:   n,
	}
	if err := c.reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// reset draws a new permutation for the next pass.
func (c *Cycle) reset() error {
	iter, err := permute.Indices(c.src, c.n)
	if err != nil {
		return err
	}
	c.iter = iter
	c.pass++
	return nil
}

// Next returns the next index, starting a new pass when the current one is
// exhausted.
func (c *Cycle) Next() int {
	i, ok := c.iter.Next()
	if !ok {
		v("used all %d indices in pass %d, looping back around...", c.n, c.pass)
		// n was validated by NewCycle, so reset cannot fail here
		_ = c.reset()
		i, _ = c.iter.Next()
	}
	return i
}

// Pass returns the number of the pass in progress, starting at 1.
func (c *Cycle) Pass() int {
	return c.pass
}

// Len returns n.
func (c *Cycle) Len() int {
	return c.n
}
