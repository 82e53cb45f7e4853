package source

import (
	"encoding/binary"

	"golang.org/x/crypto/salsa20"
)

// bufferSize is the number of keystream bytes generated per refill.
const bufferSize = 4 * 1024

// Salsa20 is a deterministic Source backed by a salsa20 keystream.
// Two Salsa20 sources created with the same key produce the same values.
// It is not safe for concurrent use; wrap it with Locked to share it.
type Salsa20 struct {
	zeroes []byte
	buffer []byte
	offset int

	key   [32]byte
	nonce uint64
}

// NewSalsa20 creates a keystream source for key.
func NewSalsa20(key [32]byte) *Salsa20 {
	s := &Salsa20{
		zeroes: make([]byte, bufferSize),
		buffer: make([]byte, bufferSize),
		offset: bufferSize,
		key:    key,
	}
	return s
}

// Read fills d with keystream bytes. It never fails.
func (s *Salsa20) Read(d []byte) (n int, err error) {
	for len(d) > 0 {
		if s.offset == len(s.buffer) {
			s.fill()
		}

		m := copy(d, s.buffer[s.offset:])
		d = d[m:]
		s.offset += m
		n += m
	}
	return n, nil
}

// Uint32 returns the next four keystream bytes as a little-endian integer.
func (s *Salsa20) Uint32() uint32 {
	var b [4]byte
	s.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func (s *Salsa20) fill() {
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], s.nonce)
	s.nonce++

	salsa20.XORKeyStream(s.buffer, s.zeroes, nonce[:], &s.key)
	s.offset = 0
}
