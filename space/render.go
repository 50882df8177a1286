package space

// Render appends the combination for digits to dst, followed by a newline,
// and returns the extended slice. One alphabet lookup per digit, first digit
// first.
func (s *Space) Render(dst []byte, digits []uint32) []byte {
	for _, d := range digits {
		dst = append(dst, s.Alphabet[d])
	}
	return append(dst, '\n')
}

// RenderFast is Render with the loop unrolled for lengths up to 4. It is a
// performance tier only; output is byte-identical to Render for every input.
func (s *Space) RenderFast(dst []byte, digits []uint32) []byte {
	a := s.Alphabet
	switch len(digits) {
	case 1:
		return append(dst, a[digits[0]], '\n')
	case 2:
		return append(dst, a[digits[0]], a[digits[1]], '\n')
	case 3:
		return append(dst, a[digits[0]], a[digits[1]], a[digits[2]], '\n')
	case 4:
		return append(dst, a[digits[0]], a[digits[1]], a[digits[2]], a[digits[3]], '\n')
	default:
		return s.Render(dst, digits)
	}
}
