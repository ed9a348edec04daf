package flatline

import (
	"bytes"
	"testing"
)

var memSizes = []int{0, 1, 2, 3, 8, 16, 31, 32, 33, 64, 128, 1024}

func TestMemXOR(t *testing.T) {
	rng := newSplitmix64()
	for _, n := range memSizes {
		a := make([]byte, n)
		b := make([]byte, n)
		rng.fill(a)
		rng.fill(b)
		orig := append([]byte(nil), a...)

		want := make([]byte, n)
		for i := 0; i < n; i++ {
			want[i] = a[i] ^ b[i]
		}
		MemXOR(a, b)
		if !bytes.Equal(a, want) {
			t.Errorf("n=%d: MemXOR mismatch", n)
		}
		// XOR is an involution.
		MemXOR(a, b)
		if !bytes.Equal(a, orig) {
			t.Errorf("n=%d: double MemXOR did not restore input", n)
		}
	}
}

func TestMemXORWhen(t *testing.T) {
	rng := newSplitmix64()
	for _, n := range memSizes {
		a := make([]byte, n)
		b := make([]byte, n)
		rng.fill(a)
		rng.fill(b)
		orig := append([]byte(nil), a...)

		MemXORWhen(0, a, b)
		if !bytes.Equal(a, orig) {
			t.Errorf("n=%d: MemXORWhen cond=0 changed dst", n)
		}
		MemXORWhen(1, a, b)
		for i := 0; i < n; i++ {
			if a[i] != orig[i]^b[i] {
				t.Errorf("n=%d: MemXORWhen cond=1 wrong at %d", n, i)
				break
			}
		}
	}
}

func TestMemCopyWhen(t *testing.T) {
	rng := newSplitmix64()
	for _, n := range memSizes {
		a := make([]byte, n)
		b := make([]byte, n)
		rng.fill(a)
		rng.fill(b)
		orig := append([]byte(nil), a...)

		MemCopyWhen(0, a, b)
		if !bytes.Equal(a, orig) {
			t.Errorf("n=%d: MemCopyWhen cond=0 changed dst", n)
		}
		MemCopyWhen(1, a, b)
		if !bytes.Equal(a, b) {
			t.Errorf("n=%d: MemCopyWhen cond=1 did not copy", n)
		}
		// High bits of cond must be ignored.
		copy(a, orig)
		MemCopyWhen(2, a, b)
		if !bytes.Equal(a, orig) {
			t.Errorf("n=%d: MemCopyWhen cond=2 treated as true", n)
		}
	}
}

func TestMemSwapWhen(t *testing.T) {
	rng := newSplitmix64()
	for _, n := range memSizes {
		a := make([]byte, n)
		b := make([]byte, n)
		rng.fill(a)
		rng.fill(b)
		origA := append([]byte(nil), a...)
		origB := append([]byte(nil), b...)

		MemSwapWhen(0, a, b)
		if !bytes.Equal(a, origA) || !bytes.Equal(b, origB) {
			t.Errorf("n=%d: MemSwapWhen cond=0 not identity", n)
		}
		MemSwapWhen(1, a, b)
		if !bytes.Equal(a, origB) || !bytes.Equal(b, origA) {
			t.Errorf("n=%d: MemSwapWhen cond=1 did not swap", n)
		}
	}
}

func TestMemWordOps(t *testing.T) {
	const words = 257
	rng := newSplitmix64()

	a := make([]uint32, words)
	b := make([]uint32, words)
	for i := range a {
		a[i] = uint32(rng.next())
		b[i] = uint32(rng.next())
	}
	orig := append([]uint32(nil), a...)

	want := make([]uint32, words)
	for i := range a {
		want[i] = a[i] ^ b[i]
	}
	MemXOR32(a, b)
	for i := range a {
		if a[i] != want[i] {
			t.Fatalf("MemXOR32 wrong at %d", i)
		}
	}

	copy(a, orig)
	MemCopyWhen32(0, a, b)
	for i := range a {
		if a[i] != orig[i] {
			t.Fatalf("MemCopyWhen32 cond=0 changed word %d", i)
		}
	}
	MemCopyWhen32(1, a, b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("MemCopyWhen32 cond=1 wrong at %d", i)
		}
	}

	copy(a, orig)
	tmp := append([]uint32(nil), b...)
	MemSwapWhen32(1, a, tmp)
	for i := range a {
		if a[i] != b[i] || tmp[i] != orig[i] {
			t.Fatalf("MemSwapWhen32 wrong at %d", i)
		}
	}

	a64 := make([]uint64, 65)
	b64 := make([]uint64, 65)
	for i := range a64 {
		a64[i] = rng.next()
		b64[i] = rng.next()
	}
	orig64 := append([]uint64(nil), a64...)
	MemXORWhen64(1, a64, b64)
	for i := range a64 {
		if a64[i] != orig64[i]^b64[i] {
			t.Fatalf("MemXORWhen64 wrong at %d", i)
		}
	}
	MemXORWhen64(0, a64, b64)
	for i := range a64 {
		if a64[i] != orig64[i]^b64[i] {
			t.Fatalf("MemXORWhen64 cond=0 changed word %d", i)
		}
	}

	a16 := []uint16{1, 2, 3}
	b16 := []uint16{0x8000, 0x4000, 0x2000}
	MemXOR16(a16, b16)
	if a16[0] != 0x8001 || a16[1] != 0x4002 || a16[2] != 0x2003 {
		t.Errorf("MemXOR16 = %v", a16)
	}
}

func TestReductions(t *testing.T) {
	if got := AnyNonzero([]byte{0, 0, 0}); got != 0 {
		t.Errorf("AnyNonzero(zeros) = %d", got)
	}
	if got := AnyNonzero([]byte{0, 4, 0}); got != 1 {
		t.Errorf("AnyNonzero(nonzero) = %d", got)
	}
	if got := AllZero([]byte{0, 0, 0}); got != 1 {
		t.Errorf("AllZero(zeros) = %d", got)
	}
	if got := AllZero([]byte{0, 0, 1}); got != 0 {
		t.Errorf("AllZero(nonzero) = %d", got)
	}
	if got := ReduceOr([]byte{0x01, 0x02, 0x84}); got != 0x87 {
		t.Errorf("ReduceOr = %#x", got)
	}
	if got := ReduceAnd([]byte{0xF3, 0xF5, 0xF9}); got != 0xF1 {
		t.Errorf("ReduceAnd = %#x", got)
	}
	if got := ReduceAnd(nil); got != 0xFF {
		t.Errorf("ReduceAnd(empty) = %#x", got)
	}
	if got := AllZero64([]uint64{0, 0}); got != 1 {
		t.Errorf("AllZero64(zeros) = %d", got)
	}
	if got := AnyNonzero64([]uint64{0, 1 << 40}); got != 1 {
		t.Errorf("AnyNonzero64(high word) = %d", got)
	}
	if got := AnyNonzero32([]uint32{0, 0x80000000}); got != 1 {
		t.Errorf("AnyNonzero32(sign bit) = %d", got)
	}
}
