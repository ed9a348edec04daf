package flatline

import "sync/atomic"

// Hardening helpers: wiping, speculation control, bounds-safe loads, and the
// accumulate-then-commit idiom for verifiers.

// SecureZero clears buf in a way the compiler cannot elide as a dead store.
func SecureZero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	barrier(buf)
}

// WipeWhen clears buf if the low bit of cond is set. Every byte is rewritten
// in either case.
func WipeWhen(cond uint64, buf []byte) {
	m := MaskFromBit8(cond)
	for i := 0; i < len(buf); i++ {
		buf[i] &^= m
	}
	barrier(buf)
}

// SpecFence establishes an ordering point intended to keep younger loads
// from completing speculatively ahead of it. Pure Go has no surface for
// lfence/dsb, so this issues a sequentially consistent atomic round-trip,
// the strongest ordering point the language provides without assembly.
//
//go:noinline
func SpecFence() {
	var g atomic.Uint32
	g.Store(1)
	_ = g.Load()
}

// IndexClamp returns idx if idx < length, otherwise 0, without branching on
// either value.
func IndexClamp(idx, length uint64) uint64 {
	return idx & MaskLess64(idx, length)
}

// MaskedLoad reads base[idx] with the index clamped to 0 when out of range,
// and a speculation fence between the clamp and the load. The timing is
// independent of whether idx was in range. The clamped index still selects
// the address, so idx must be public; follow with a sweep Lookup8 if it is
// not.
func MaskedLoad(base []byte, idx uint64) uint8 {
	if len(base) == 0 {
		return 0
	}
	i := IndexClamp(idx, uint64(len(base)))
	SpecFence()
	return base[i]
}

// ErrAcc is a single-word OR-sink for failure conditions. A verifier runs
// its whole computation into scratch, ORs every failing check into the
// accumulator, and commits once at the end; no individual check ever turns
// into a branch on secret data.
type ErrAcc struct {
	acc uint64
}

// Or records cond's low bit as a failure if set.
func (e *ErrAcc) Or(cond uint64) {
	e.acc |= cond & 1
}

// OK returns 1 if no failure has been recorded, otherwise 0.
func (e *ErrAcc) OK() uint64 {
	return MaskIsZero64(e.acc) & 1
}

// CommitIfOK copies tmp into dst when ok's low bit is set, leaving dst
// untouched in value (but rewritten) otherwise. Pairs with ErrAcc.OK.
func CommitIfOK(ok uint64, dst, tmp []byte) {
	MemCopyWhen(ok, dst, tmp)
}
