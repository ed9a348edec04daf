package flatline

import "unsafe"

// Branchless selection and conditional word operations. The non-chosen value
// is always left bit-identical, and the chosen value is produced without a
// data-dependent branch.

// Select8Mask returns yes where mask bits are set and no elsewhere. The mask
// must be all-ones or all-zeros.
func Select8Mask(yes, no, mask uint8) uint8 {
	return (yes & mask) | (no &^ mask)
}

// Select16Mask returns yes where mask bits are set and no elsewhere.
func Select16Mask(yes, no, mask uint16) uint16 {
	return (yes & mask) | (no &^ mask)
}

// Select32Mask returns yes where mask bits are set and no elsewhere.
func Select32Mask(yes, no, mask uint32) uint32 {
	return (yes & mask) | (no &^ mask)
}

// Select64Mask returns yes where mask bits are set and no elsewhere.
func Select64Mask(yes, no, mask uint64) uint64 {
	return (yes & mask) | (no &^ mask)
}

// Select8 returns yes if the low bit of cond is set, otherwise no.
func Select8(cond uint64, yes, no uint8) uint8 {
	return Select8Mask(yes, no, MaskFromBit8(cond))
}

// Select16 returns yes if the low bit of cond is set, otherwise no.
func Select16(cond uint64, yes, no uint16) uint16 {
	return Select16Mask(yes, no, MaskFromBit16(cond))
}

// Select32 returns yes if the low bit of cond is set, otherwise no.
func Select32(cond uint64, yes, no uint32) uint32 {
	return Select32Mask(yes, no, MaskFromBit32(cond))
}

// Select64 returns yes if the low bit of cond is set, otherwise no.
func Select64(cond uint64, yes, no uint64) uint64 {
	return Select64Mask(yes, no, MaskFromBit64(cond))
}

// PtrSelect returns yes if the low bit of cond is set, otherwise no, without
// branching on cond. The result is always one of the two argument pointers,
// so it remains a valid reference for the garbage collector.
func PtrSelect[T any](cond uint64, yes, no *T) *T {
	m := uintptr(0) - uintptr(cond&1)
	return (*T)(unsafe.Pointer((uintptr(unsafe.Pointer(yes)) & m) | (uintptr(unsafe.Pointer(no)) &^ m)))
}

// CSwap32 exchanges *a and *b if the low bit of cond is set. Both words are
// rewritten either way.
func CSwap32(cond uint64, a, b *uint32) {
	m := MaskFromBit32(cond)
	t := (*a ^ *b) & m
	*a ^= t
	*b ^= t
}

// CSwap64 exchanges *a and *b if the low bit of cond is set.
func CSwap64(cond uint64, a, b *uint64) {
	m := MaskFromBit64(cond)
	t := (*a ^ *b) & m
	*a ^= t
	*b ^= t
}

// ZeroWhen32 clears *x if the low bit of cond is set.
func ZeroWhen32(cond uint64, x *uint32) {
	*x &^= MaskFromBit32(cond)
}

// ZeroWhen64 clears *x if the low bit of cond is set.
func ZeroWhen64(cond uint64, x *uint64) {
	*x &^= MaskFromBit64(cond)
}

// MovWhen32 assigns src to *dst if the low bit of cond is set.
func MovWhen32(cond uint64, dst *uint32, src uint32) {
	m := MaskFromBit32(cond)
	*dst = (*dst &^ m) | (src & m)
}

// MovWhen64 assigns src to *dst if the low bit of cond is set.
func MovWhen64(cond uint64, dst *uint64, src uint64) {
	m := MaskFromBit64(cond)
	*dst = (*dst &^ m) | (src & m)
}
