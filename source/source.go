// Package source provides randomness sources for the permute package.
//
// Every source has a Uint32 method and therefore satisfies permute.Source.
// Seeded sources (NewPCG, NewSalsa20) are reproducible and are meant for
// tests and for replaying a shuffle; Crypto is the default for everything
// else. None of the sources are safe for concurrent use unless wrapped with
// Locked.
package source

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	exprand "golang.org/x/exp/rand"

	"github.com/lanrat/shuffle/permute"
)

// NewPCG returns a deterministic PCG source seeded with seed.
func NewPCG(seed uint64) *exprand.Rand {
	return exprand.New(exprand.NewSource(seed))
}

// Crypto returns a salsa20 keystream source keyed from crypto/rand.
// It panics if the system cannot provide 32 bytes of entropy.
func Crypto() *Salsa20 {
	var key [32]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		panic(fmt.Sprintf("source: crypto/rand read failed: %v", err))
	}
	return NewSalsa20(key)
}

// Reader draws values from an io.Reader, four bytes at a time.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

// NewReader returns a Source that reads from r.
//
// A Source cannot report errors, so Uint32 panics if r fails or runs out of
// data. Only pass readers that behave like an entropy source.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Uint32 reads the next four bytes from the reader as a little-endian integer.
func (r *Reader) Uint32() uint32 {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		panic(fmt.Sprintf("source: read failed: %v", err))
	}
	return binary.LittleEndian.Uint32(r.buf[:])
}

// lockedSource guards a Source with a mutex.
type lockedSource struct {
	mu  sync.Mutex
	src permute.Source
}

// Locked returns a Source that can be used from multiple goroutines.
// Iterators built from it are still owned by a single goroutine each.
func Locked(src permute.Source) permute.Source {
	return &lockedSource{src: src}
}

func (l *lockedSource) Uint32() uint32 {
	l.mu.Lock()
	v := l.src.Uint32()
	l.mu.Unlock()
	return v
}
