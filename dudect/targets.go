package dudect

import (
	"bytes"

	"github.com/stateless-ltd/flatline/flatline"
)

// Built-in target pairs. Each constant-time primitive is measured next to a
// deliberately leaky rendition of the same job, so a suite run shows both
// that the CT version stays flat and that the harness would have caught it
// if it didn't.

// Leaky references.

func leakyZeroPad(buf []byte) int {
	for i := len(buf); i > 0; i-- {
		if buf[i-1] != 0 {
			return i
		}
	}
	return 0
}

// classDifference plants a differing byte early (class 0) or late (class 1)
// so an early-exit comparator's runtime tracks the class.
func classDifference(a, b []byte, secret int) {
	copy(b, a)
	if len(b) == 0 {
		return
	}
	if secret == 0 {
		b[0] ^= 1
	} else {
		b[len(b)-1] ^= 1
	}
}

// classZeroPadPos plants the last non-zero byte near the start (class 0) or
// near the end (class 1).
func classZeroPadPos(a []byte, secret int) {
	for i := range a {
		a[i] = 0
	}
	if len(a) == 0 {
		return
	}
	pos := len(a) / 16
	if secret != 0 {
		pos = len(a) - len(a)/16 - 1
	}
	a[pos] = 1
}

func fillTable(a []byte) {
	for i := 0; i < 256; i++ {
		a[i] = byte(i*29 + 7)
	}
}

// classTableInput tilts input bytes into a low (class 0) or high (class 1)
// index range so direct indexing stresses different cache lines.
func classTableInput(r *Rand, b []byte, secret int) {
	for i := range b {
		b[i] = byte(r.Uint32())
	}
	if secret == 0 {
		for i := range b {
			b[i] &= 0x1F
		}
	} else {
		for i := range b {
			b[i] = (b[i] & 0x1F) | 0xE0
		}
	}
}

// BuiltinTargets returns the standard suite: every pair is (leaky control,
// constant-time counterpart).
func BuiltinTargets() []Target {
	return []Target{
		{
			Name:  "mem_cmp (leaky)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				classDifference(a, b, secret)
				s := 0
				for rep := 0; rep < reps; rep++ {
					s += bytes.Compare(a, b)
				}
				*sink ^= uint64(int64(s))
			},
		},
		{
			Name: "mem_cmp (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				classDifference(a, b, secret)
				s := 0
				for rep := 0; rep < reps; rep++ {
					s += flatline.MemCompare(a, b)
				}
				*sink ^= uint64(int64(s))
			},
		},
		{
			Name:  "zeropad (leaky)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				classZeroPadPos(a, secret)
				sum := 0
				for rep := 0; rep < reps; rep++ {
					sum += leakyZeroPad(a)
				}
				*sink ^= uint64(sum)
			},
		},
		{
			Name: "zeropad (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				classZeroPadPos(a, secret)
				sum := 0
				for rep := 0; rep < reps; rep++ {
					sum += flatline.ZeroPadDataLen(a)
				}
				*sink ^= uint64(sum)
			},
		},
		{
			Name:    "lookup (leaky)",
			Leaky:   true,
			BufSize: 256,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				fillTable(a)
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					idx := uint8(0)
					if secret != 0 {
						idx = uint8(r.Uint32())
					}
					sum += uint64(a[idx]) // direct, secret-indexed access
				}
				*sink ^= sum
			},
		},
		{
			Name:    "lookup (CT)",
			BufSize: 256,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				fillTable(a)
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					idx := uint64(0)
					if secret != 0 {
						idx = uint64(r.Uint32() & 0xFF)
					}
					sum += uint64(flatline.Lookup8(a[:256], idx))
				}
				*sink ^= sum
			},
		},
		{
			Name:  "table_apply (leaky)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				fillTable(a)
				classTableInput(r, b, secret)
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					for _, v := range b {
						sum += uint64(a[v]) // direct, secret-indexed
					}
				}
				*sink ^= sum
			},
		},
		{
			Name: "table_apply (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				fillTable(a)
				classTableInput(r, b, secret)
				out := make([]byte, len(b))
				for rep := 0; rep < reps; rep++ {
					flatline.TableApply(out, b, a[:256])
				}
				*sink ^= uint64(out[0])
			},
		},
		{
			Name:  "masked_load (leaky)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					idx := len(a) / 2
					if secret != 0 {
						idx = len(a) + 5 // out-of-bounds class
					}
					var v byte
					if idx < len(a) { // branch on the secret
						v = a[idx]
					}
					sum += uint64(v)
				}
				*sink ^= sum
			},
		},
		{
			Name: "masked_load (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					idx := uint64(len(a) / 2)
					if secret != 0 {
						idx = uint64(len(a) + 5)
					}
					sum += uint64(flatline.MaskedLoad(a, idx))
				}
				*sink ^= sum
			},
		},
		{
			Name:  "memcpy_when (leaky)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				for rep := 0; rep < reps; rep++ {
					if secret != 0 { // secret controls branch and work
						copy(a, b)
					}
				}
				*sink ^= uint64(a[0])
			},
		},
		{
			Name: "memcpy_when (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				for rep := 0; rep < reps; rep++ {
					flatline.MemCopyWhen(uint64(secret&1), a, b)
				}
				*sink ^= uint64(a[0])
			},
		},
		{
			Name:  "memswap_when (leaky)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				for rep := 0; rep < reps; rep++ {
					if secret != 0 {
						for i := range a {
							a[i], b[i] = b[i], a[i]
						}
					}
				}
				*sink ^= uint64(a[0])
			},
		},
		{
			Name: "memswap_when (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				for rep := 0; rep < reps; rep++ {
					flatline.MemSwapWhen(uint64(secret&1), a, b)
				}
				*sink ^= uint64(a[0])
			},
		},
		{
			Name:  "divmod (leaky / %)",
			Leaky: true,
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					num := r.Next()
					den := uint64(3)
					if secret != 0 {
						den = (r.Next() | 1) & 0x7FFFFFFFFFFFFFFF
					}
					q := num / den
					m := num % den
					sum ^= q + 31*m
				}
				*sink ^= sum
			},
		},
		{
			Name: "divmod (CT)",
			Fn: func(r *Rand, sink *uint64, a, b []byte, reps, secret int) {
				var sum uint64
				for rep := 0; rep < reps; rep++ {
					num := r.Next()
					den := uint64(3)
					if secret != 0 {
						den = (r.Next() | 1) & 0x7FFFFFFFFFFFFFFF
					}
					q, rem, ok := flatline.DivMod64(num, den)
					sum ^= (ok << 63) ^ (q + 31*rem)
				}
				*sink ^= sum
			},
		},
	}
}
