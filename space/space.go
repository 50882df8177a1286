// Package space models the combination space: an ordered byte alphabet, a
// fixed combination length, and the linear index range [0, Total) that ranks
// every combination in lexicographic order.
package space

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/dgryski/go-farm"
)

// Space is the (alphabet, length) pair with its derived total. It is
// immutable once constructed and safe to share read-only across workers.
type Space struct {
	Alphabet []byte
	Length   int
	Total    uint64
}

// DefaultAlphabet returns the 94 printable ASCII bytes 33..126.
func DefaultAlphabet() []byte {
	a := make([]byte, 0, 94)
	for c := byte(33); c <= 126; c++ {
		a = append(a, c)
	}
	return a
}

// New validates the parameters and derives the total combination count.
// Construction fails when the total would not fit in a uint64.
func New(alphabet []byte, length int) (*Space, error) {
	if length <= 0 {
		return nil, fmt.Errorf("length must be positive, got %d", length)
	}
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("alphabet needs at least 2 bytes, got %d", len(alphabet))
	}
	total, ok := pow(uint64(len(alphabet)), length)
	if !ok {
		return nil, fmt.Errorf("%d^%d combinations overflow uint64", len(alphabet), length)
	}
	return &Space{
		Alphabet: append([]byte(nil), alphabet...),
		Length:   length,
		Total:    total,
	}, nil
}

// Base returns the radix of the digit representation.
func (s *Space) Base() uint64 {
	return uint64(len(s.Alphabet))
}

// Fingerprint identifies the space parameters. Two spaces with the same
// alphabet bytes and length always fingerprint equal; it guards a resume
// checkpoint against being replayed into a different space.
func (s *Space) Fingerprint() uint64 {
	buf := make([]byte, 0, len(s.Alphabet)+8)
	buf = append(buf, s.Alphabet...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Length))
	return farm.Fingerprint64(buf)
}

// pow computes base^exp with a checked multiply, reporting overflow.
func pow(base uint64, exp int) (uint64, bool) {
	r := uint64(1)
	for i := 0; i < exp; i++ {
		hi, lo := bits.Mul64(r, base)
		if hi != 0 {
			return 0, false
		}
		r = lo
	}
	return r, true
}
