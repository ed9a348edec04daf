package flatline

// Constant-time scanning. Every routine reads its full input range; there is
// no early exit, and nothing about the byte values reaches a branch or an
// address computation.

// MemEqual returns 1 if a and b have identical contents, otherwise 0. Slices
// of different (public) lengths compare unequal. The scan always covers all
// bytes regardless of where the first difference sits.
func MemEqual(a, b []byte) uint64 {
	if len(a) != len(b) {
		return 0
	}
	var diff uint8
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return uint64(MaskIsZero8(diff) & 1)
}

// MemEqualMask is MemEqual returning a composable 32-bit mask: all-ones when
// equal, zero otherwise.
func MemEqualMask(a, b []byte) uint32 {
	if len(a) != len(b) {
		return 0
	}
	var diff uint32
	for i := 0; i < len(a); i++ {
		diff |= uint32(a[i] ^ b[i])
	}
	return MaskIsZero32(diff)
}

// MemCompare returns -1, 0 or +1 matching the sign of a bytewise memcmp over
// the first min(len(a), len(b)) bytes.
//
// Three accumulators are carried across the scan, each all-ones or zero:
// seen (a differing byte has been passed), lt and gt (the first differing
// byte ordered the buffers). Only positions not yet claimed by seen may set
// lt or gt, which pins the result to the first difference without ever
// branching on one.
func MemCompare(a, b []byte) int {
	n := spanLen(len(a), len(b))
	var seen, lt, gt uint32
	for i := 0; i < n; i++ {
		ai := uint32(a[i])
		bi := uint32(b[i])
		mLT := MaskLess32(ai, bi)
		mGT := MaskLess32(bi, ai)
		mNE := ^MaskEq32(ai, bi)
		take := ^seen
		lt |= take & mLT
		gt |= take & mGT
		seen |= take & mNE
	}
	return int(MaskToBit32(gt)) - int(MaskToBit32(lt))
}

// ZeroPadDataLen returns the index one past the last non-zero byte of buf,
// or 0 if every byte is zero. All len(buf) bytes are visited; the candidate
// length is updated through a mask-gated select on the first non-zero byte
// seen from the top.
func ZeroPadDataLen(buf []byte) int {
	var dataLen, seen uint64
	for i := len(buf); i > 0; i-- {
		nz := uint64(^MaskIsZero8(buf[i-1]) & 1)
		trigger := nz &^ seen
		dataLen = Select64(trigger, uint64(i), dataLen)
		seen |= nz
	}
	return int(dataLen)
}

// PKCS7Unpad validates PKCS#7 padding at the end of buf for the given block
// size and returns the unpadded data length together with ok=1 on success.
// On any failure dataLen is 0 and ok is 0. The validation reads a fixed
// min(len(buf), block) window so that neither the pad value nor its
// correctness shows up in the scan length.
//
// len(buf)==0, block<=0 and block>255 are rejected up front; these are
// public parameters. A block size above 255 cannot be expressed in a pad
// byte, so it is treated as invalid input rather than silently truncated.
func PKCS7Unpad(buf []byte, block int) (dataLen int, ok uint64) {
	n := len(buf)
	if n == 0 || block <= 0 || block > 255 {
		return 0, 0
	}
	pad := buf[n-1]

	padGE1 := uint64(^MaskIsZero8(pad) & 1)
	padLEBlock := ^MaskLess64(uint64(block), uint64(pad)) & 1
	padLEN := ^MaskLess64(uint64(n), uint64(pad)) & 1
	rangeOK := padGE1 & padLEBlock & padLEN

	window := spanLen(n, block)
	var diff uint8
	for i := 0; i < window; i++ {
		inWindow := uint8(MaskLess64(uint64(i), uint64(pad)))
		diff |= (buf[n-1-i] ^ pad) & inWindow
	}
	ok = rangeOK & uint64(MaskIsZero8(diff)&1)
	dataLen = int(Select64(ok, uint64(n)-uint64(pad), 0))
	return dataLen, ok
}
