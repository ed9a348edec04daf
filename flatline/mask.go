// Package flatline provides branchless, data-oblivious building blocks for
// security-sensitive code: mask algebra, constant-time selection, oblivious
// memory operations, scanning, table lookup, arithmetic and hardening
// helpers.
//
// Every function here has control flow and memory addressing that depend
// only on public parameters (slice lengths, iteration counts), never on the
// values held in caller buffers. Conditions are passed as integers of which
// only the low bit is inspected; mask-returning functions produce either
// all-ones or all-zeros, never a partial mask.
package flatline

// Mask predicates. The identities below are chosen so that none of them
// lowers to a conditional branch or a flag-setting comparison on the data
// operands.

// MaskFromBit8 returns 0xFF if the low bit of b is set, otherwise 0.
func MaskFromBit8(b uint64) uint8 {
	return uint8(0) - uint8(b&1)
}

// MaskFromBit16 returns 0xFFFF if the low bit of b is set, otherwise 0.
func MaskFromBit16(b uint64) uint16 {
	return uint16(0) - uint16(b&1)
}

// MaskFromBit32 returns 0xFFFFFFFF if the low bit of b is set, otherwise 0.
func MaskFromBit32(b uint64) uint32 {
	return uint32(0) - uint32(b&1)
}

// MaskFromBit64 returns all-ones if the low bit of b is set, otherwise 0.
func MaskFromBit64(b uint64) uint64 {
	return 0 - (b & 1)
}

// MaskIsZero8 returns 0xFF if x == 0, otherwise 0.
func MaskIsZero8(x uint8) uint8 {
	return ((x | (0 - x)) >> 7) - 1
}

// MaskIsZero16 returns 0xFFFF if x == 0, otherwise 0.
func MaskIsZero16(x uint16) uint16 {
	return ((x | (0 - x)) >> 15) - 1
}

// MaskIsZero32 returns 0xFFFFFFFF if x == 0, otherwise 0.
func MaskIsZero32(x uint32) uint32 {
	return ((x | (0 - x)) >> 31) - 1
}

// MaskIsZero64 returns all-ones if x == 0, otherwise 0.
func MaskIsZero64(x uint64) uint64 {
	return ((x | (0 - x)) >> 63) - 1
}

// MaskEq8 returns 0xFF if a == b, otherwise 0.
func MaskEq8(a, b uint8) uint8 { return MaskIsZero8(a ^ b) }

// MaskEq16 returns 0xFFFF if a == b, otherwise 0.
func MaskEq16(a, b uint16) uint16 { return MaskIsZero16(a ^ b) }

// MaskEq32 returns 0xFFFFFFFF if a == b, otherwise 0.
func MaskEq32(a, b uint32) uint32 { return MaskIsZero32(a ^ b) }

// MaskEq64 returns all-ones if a == b, otherwise 0.
func MaskEq64(a, b uint64) uint64 { return MaskIsZero64(a ^ b) }

// MaskLess8 returns 0xFF if a < b (unsigned), otherwise 0.
func MaskLess8(a, b uint8) uint8 {
	t := (a ^ ((a ^ b) | ((a - b) ^ b))) >> 7
	return 0 - (t & 1)
}

// MaskLess16 returns 0xFFFF if a < b (unsigned), otherwise 0.
func MaskLess16(a, b uint16) uint16 {
	t := (a ^ ((a ^ b) | ((a - b) ^ b))) >> 15
	return 0 - (t & 1)
}

// MaskLess32 returns 0xFFFFFFFF if a < b (unsigned), otherwise 0.
func MaskLess32(a, b uint32) uint32 {
	t := (a ^ ((a ^ b) | ((a - b) ^ b))) >> 31
	return 0 - (t & 1)
}

// MaskLess64 returns all-ones if a < b (unsigned), otherwise 0.
func MaskLess64(a, b uint64) uint64 {
	t := (a ^ ((a ^ b) | ((a - b) ^ b))) >> 63
	return 0 - (t & 1)
}

// MaskToBit32 projects a mask to a 0/1 integer.
func MaskToBit32(m uint32) uint32 { return m & 1 }

// MaskToBit64 projects a mask to a 0/1 integer.
func MaskToBit64(m uint64) uint64 { return m & 1 }
