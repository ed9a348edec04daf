package flatline

import (
	"bytes"
	"testing"
)

func TestMemEqual(t *testing.T) {
	rng := newSplitmix64()
	for _, n := range memSizes {
		a := make([]byte, n)
		rng.fill(a)
		b := append([]byte(nil), a...)
		if got := MemEqual(a, b); got != 1 {
			t.Errorf("n=%d: MemEqual(a, a) = %d", n, got)
		}
		if n > 0 {
			b[n/2] ^= 1
			if got := MemEqual(a, b); got != 0 {
				t.Errorf("n=%d: MemEqual on differing buffers = %d", n, got)
			}
		}
	}
	if got := MemEqual([]byte{1, 2}, []byte{1, 2, 3}); got != 0 {
		t.Errorf("MemEqual on different lengths = %d", got)
	}
}

func TestMemEqualMask(t *testing.T) {
	s1 := []byte{1, 2, 3, 4, 5}
	s2 := []byte{1, 2, 3, 4, 5}
	s3 := []byte{1, 2, 4, 4, 5}
	if m := MemEqualMask(s1, s2); m != ^uint32(0) {
		t.Errorf("MemEqualMask(equal) = %#x", m)
	}
	if m := MemEqualMask(s1, s3); m != 0 {
		t.Errorf("MemEqualMask(diff) = %#x", m)
	}
}

func TestMemCompare(t *testing.T) {
	cases := []struct {
		a, b []byte
		want int
	}{
		{[]byte{0x01, 0x02, 0x03}, []byte{0x01, 0x02, 0x04}, -1},
		{[]byte{0x01, 0x02, 0x05}, []byte{0x01, 0x02, 0x04}, +1},
		{[]byte{0x01, 0x02, 0x03}, []byte{0x01, 0x02, 0x03}, 0},
		{nil, nil, 0},
		{[]byte{0xFF}, []byte{0x00}, +1},
		{[]byte{0x00, 0xFF}, []byte{0x01, 0x00}, -1},
	}
	for _, c := range cases {
		if got := MemCompare(c.a, c.b); got != c.want {
			t.Errorf("MemCompare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}

	rng := newSplitmix64()
	for i := 0; i < 500; i++ {
		n := int(rng.next() % 64)
		a := make([]byte, n)
		b := make([]byte, n)
		rng.fill(a)
		rng.fill(b)
		// Force frequent equal prefixes.
		if n > 0 && i%3 == 0 {
			copy(b, a[:n/2])
		}
		want := bytes.Compare(a, b)
		if got := MemCompare(a, b); got != want {
			t.Errorf("MemCompare(%x, %x) = %d, want %d", a, b, got, want)
		}
	}
}

func TestZeroPadDataLen(t *testing.T) {
	buf := make([]byte, 16)
	buf[0], buf[1], buf[2] = 1, 2, 3
	if got := ZeroPadDataLen(buf); got != 3 {
		t.Errorf("ZeroPadDataLen([1 2 3 0...]) = %d, want 3", got)
	}
	if got := ZeroPadDataLen(make([]byte, 16)); got != 0 {
		t.Errorf("ZeroPadDataLen(zeros) = %d, want 0", got)
	}
	if got := ZeroPadDataLen(nil); got != 0 {
		t.Errorf("ZeroPadDataLen(nil) = %d, want 0", got)
	}
	tail := make([]byte, 32)
	tail[31] = 7
	if got := ZeroPadDataLen(tail); got != 32 {
		t.Errorf("ZeroPadDataLen(tail nonzero) = %d, want 32", got)
	}

	rng := newSplitmix64()
	for i := 0; i < 500; i++ {
		n := 1 + int(rng.next()%128)
		b := make([]byte, n)
		rng.fill(b)
		want := 0
		for j := n - 1; j >= 0; j-- {
			if b[j] != 0 {
				want = j + 1
				break
			}
		}
		if got := ZeroPadDataLen(b); got != want {
			t.Errorf("ZeroPadDataLen fuzz n=%d = %d, want %d", n, got, want)
		}
	}
}

func TestPKCS7Unpad(t *testing.T) {
	pad := func(data []byte, block int) []byte {
		k := block - len(data)%block
		out := append([]byte(nil), data...)
		for i := 0; i < k; i++ {
			out = append(out, byte(k))
		}
		return out
	}

	buf := pad(bytes.Repeat([]byte{0xA5}, 13), 16)
	dataLen, ok := PKCS7Unpad(buf, 16)
	if ok != 1 || dataLen != 13 {
		t.Errorf("valid pad: dataLen=%d ok=%d, want 13, 1", dataLen, ok)
	}

	tampered := append([]byte(nil), buf...)
	tampered[len(tampered)-1] = 0x04
	dataLen, ok = PKCS7Unpad(tampered, 16)
	if ok != 0 || dataLen != 0 {
		t.Errorf("tampered pad: dataLen=%d ok=%d, want 0, 0", dataLen, ok)
	}

	// Interior pad byte wrong.
	bad := append([]byte(nil), buf...)
	bad[len(bad)-2] = 0x02
	if _, ok := PKCS7Unpad(bad, 16); ok != 0 {
		t.Error("interior mismatch accepted")
	}

	// Full block of padding.
	full := pad(nil, 8)
	dataLen, ok = PKCS7Unpad(full, 8)
	if ok != 1 || dataLen != 0 {
		t.Errorf("full pad block: dataLen=%d ok=%d, want 0, 1", dataLen, ok)
	}

	// Pad byte zero is never valid.
	if _, ok := PKCS7Unpad([]byte{1, 2, 0}, 16); ok != 0 {
		t.Error("pad byte 0 accepted")
	}
	// Pad larger than the buffer.
	if _, ok := PKCS7Unpad([]byte{5, 5}, 16); ok != 0 {
		t.Error("pad > len accepted")
	}
	// Pad larger than the block.
	if _, ok := PKCS7Unpad([]byte{1, 2, 3, 3, 3}, 2); ok != 0 {
		t.Error("pad > block accepted")
	}

	// Degenerate parameters.
	if dl, ok := PKCS7Unpad(nil, 16); ok != 0 || dl != 0 {
		t.Error("empty buffer accepted")
	}
	if dl, ok := PKCS7Unpad([]byte{1}, 0); ok != 0 || dl != 0 {
		t.Error("block=0 accepted")
	}
	if dl, ok := PKCS7Unpad(pad(nil, 16), 256); ok != 0 || dl != 0 {
		t.Error("block>255 accepted")
	}
}
