package flatline

// Carry/borrow arithmetic built on the MaskLess identity, so that overflow
// detection never becomes a flag-reading branch. Only the low bit of the
// incoming carry/borrow is used.

// Adc32 returns x + y + (cin & 1) and the outgoing carry (0 or 1).
func Adc32(x, y, cin uint32) (sum, cout uint32) {
	s1 := x + y
	c1 := MaskToBit32(MaskLess32(s1, x))
	s2 := s1 + (cin & 1)
	c2 := MaskToBit32(MaskLess32(s2, s1))
	return s2, c1 | c2
}

// Adc64 returns x + y + (cin & 1) and the outgoing carry (0 or 1).
func Adc64(x, y, cin uint64) (sum, cout uint64) {
	s1 := x + y
	c1 := MaskToBit64(MaskLess64(s1, x))
	s2 := s1 + (cin & 1)
	c2 := MaskToBit64(MaskLess64(s2, s1))
	return s2, c1 | c2
}

// Sbc32 returns x - y - (bin & 1) and the outgoing borrow (0 or 1).
func Sbc32(x, y, bin uint32) (diff, bout uint32) {
	t := x - y
	b1 := MaskToBit32(MaskLess32(x, y))
	r := t - (bin & 1)
	b2 := MaskToBit32(MaskLess32(t, bin&1))
	return r, b1 | b2
}

// Sbc64 returns x - y - (bin & 1) and the outgoing borrow (0 or 1).
func Sbc64(x, y, bin uint64) (diff, bout uint64) {
	t := x - y
	b1 := MaskToBit64(MaskLess64(x, y))
	r := t - (bin & 1)
	b2 := MaskToBit64(MaskLess64(t, bin&1))
	return r, b1 | b2
}

// AddWhen32 returns x + y if the low bit of cond is set, otherwise x.
func AddWhen32(cond uint64, x, y uint32) uint32 {
	return x + (y & MaskFromBit32(cond))
}

// AddWhen64 returns x + y if the low bit of cond is set, otherwise x.
func AddWhen64(cond uint64, x, y uint64) uint64 {
	return x + (y & MaskFromBit64(cond))
}

// AdcWhen32 is Adc32 with the operand and incoming carry gated by cond.
// When cond is clear the sum equals x and the outgoing carry is 0.
func AdcWhen32(cond uint64, x, y, cin uint32) (sum, cout uint32) {
	m := MaskFromBit32(cond)
	return Adc32(x, y&m, cin&m&1)
}

// AdcWhen64 is Adc64 with the operand and incoming carry gated by cond.
func AdcWhen64(cond uint64, x, y, cin uint64) (sum, cout uint64) {
	m := MaskFromBit64(cond)
	return Adc64(x, y&m, cin&m&1)
}

// SbcWhen32 is Sbc32 with the operand and incoming borrow gated by cond.
// When cond is clear the difference equals x and the outgoing borrow is 0.
func SbcWhen32(cond uint64, x, y, bin uint32) (diff, bout uint32) {
	m := MaskFromBit32(cond)
	return Sbc32(x, y&m, bin&m&1)
}

// SbcWhen64 is Sbc64 with the operand and incoming borrow gated by cond.
func SbcWhen64(cond uint64, x, y, bin uint64) (diff, bout uint64) {
	m := MaskFromBit64(cond)
	return Sbc64(x, y&m, bin&m&1)
}
