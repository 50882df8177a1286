package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitsRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		base   uint64
		length int
	}{
		{"binary length 2", 2, 2},
		{"ternary length 4", 3, 4},
		{"base 10 length 3", 10, 3},
		{"base 94 length 2", 94, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			total, ok := pow(tc.base, tc.length)
			require.True(t, ok)
			for index := uint64(0); index < total; index++ {
				digits := ToDigits(index, tc.base, tc.length)
				assert.Equal(t, index, FromDigits(digits, tc.base))
			}
		})
	}
}

func TestDigitsBoundaries(t *testing.T) {
	// Index 0 is the all-zero vector, total-1 the all-max vector.
	assert.Equal(t, []uint32{0, 0, 0}, ToDigits(0, 5, 3))
	assert.Equal(t, []uint32{4, 4, 4}, ToDigits(124, 5, 3))
}

func TestIncrementMatchesToDigits(t *testing.T) {
	const base = 3
	const length = 4
	total, ok := pow(base, length)
	require.True(t, ok)

	digits := ToDigits(0, base, length)
	for index := uint64(1); index < total; index++ {
		wrapped := Increment(digits, base)
		require.False(t, wrapped, "wrapped early at index %d", index)
		assert.Equal(t, ToDigits(index, base, length), digits)
	}

	// One more step past total-1 wraps around to all zeros.
	wrapped := Increment(digits, base)
	assert.True(t, wrapped)
	assert.Equal(t, []uint32{0, 0, 0, 0}, digits)
}

func TestIncrementFromArbitraryStart(t *testing.T) {
	// k increments from ToDigits(s) must equal ToDigits(s+k).
	const base = 7
	const length = 5
	start := uint64(1234)
	digits := ToDigits(start, base, length)
	for k := uint64(1); k <= 500; k++ {
		Increment(digits, base)
		require.Equal(t, ToDigits(start+k, base, length), digits, "diverged at k=%d", k)
	}
}

func TestFillDigitsDoesNotAllocateNewSlice(t *testing.T) {
	digits := make([]uint32, 3)
	FillDigits(digits, 6, 2)
	assert.Equal(t, []uint32{1, 1, 0}, digits)
	assert.Equal(t, uint64(6), FromDigits(digits, 2))
}
