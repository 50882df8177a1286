package space

// ToDigits returns the mixed-radix representation of index: length digits in
// [0, base), most significant first. Index 0 yields the all-zero vector.
func ToDigits(index uint64, base uint64, length int) []uint32 {
	digits := make([]uint32, length)
	FillDigits(digits, index, base)
	return digits
}

// FillDigits decomposes index into digits without allocating. Digits are
// filled from the last position backward via repeated division.
func FillDigits(digits []uint32, index uint64, base uint64) {
	for pos := len(digits) - 1; pos >= 0; pos-- {
		digits[pos] = uint32(index % base)
		index /= base
	}
}

// FromDigits is the exact inverse of ToDigits for every in-range index.
func FromDigits(digits []uint32, base uint64) uint64 {
	var index uint64
	for _, d := range digits {
		index = index*base + uint64(d)
	}
	return index
}

// Increment advances digits by one: odometer carry from the least
// significant digit. Returns true when the carry propagates past the most
// significant digit, leaving the all-zero vector. Never allocates; this is
// the only per-element step in a worker's hot loop.
func Increment(digits []uint32, base uint32) bool {
	for pos := len(digits) - 1; pos >= 0; pos-- {
		digits[pos]++
		if digits[pos] < base {
			return false
		}
		digits[pos] = 0
	}
	return true
}
