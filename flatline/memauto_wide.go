//go:build (amd64 || arm64) && !flatline_portable

package flatline

import "encoding/binary"

// uint64-lane bulk kernels: a 16-byte inner block (two lanes), an 8-byte
// tail, then a byte tail. Lane traffic goes through fixed little-endian
// loads and stores so the byte-level result is the same on every
// architecture.

const bulkBackendName = "wide64"

func memxorBulk(dst, src []byte) {
	n := spanLen(len(dst), len(src))
	i := 0
	for ; n-i >= 16; i += 16 {
		d0 := binary.LittleEndian.Uint64(dst[i:])
		s0 := binary.LittleEndian.Uint64(src[i:])
		d1 := binary.LittleEndian.Uint64(dst[i+8:])
		s1 := binary.LittleEndian.Uint64(src[i+8:])
		binary.LittleEndian.PutUint64(dst[i:], d0^s0)
		binary.LittleEndian.PutUint64(dst[i+8:], d1^s1)
	}
	for ; n-i >= 8; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		s := binary.LittleEndian.Uint64(src[i:])
		binary.LittleEndian.PutUint64(dst[i:], d^s)
	}
	for ; i < n; i++ {
		dst[i] ^= src[i]
	}
	barrier(dst)
}

func memcpyWhenBulk(cond uint64, dst, src []byte) {
	m := MaskFromBit64(cond)
	m8 := uint8(m)
	n := spanLen(len(dst), len(src))
	i := 0
	for ; n-i >= 16; i += 16 {
		d0 := binary.LittleEndian.Uint64(dst[i:])
		s0 := binary.LittleEndian.Uint64(src[i:])
		d1 := binary.LittleEndian.Uint64(dst[i+8:])
		s1 := binary.LittleEndian.Uint64(src[i+8:])
		binary.LittleEndian.PutUint64(dst[i:], (s0&m)|(d0&^m))
		binary.LittleEndian.PutUint64(dst[i+8:], (s1&m)|(d1&^m))
	}
	for ; n-i >= 8; i += 8 {
		d := binary.LittleEndian.Uint64(dst[i:])
		s := binary.LittleEndian.Uint64(src[i:])
		binary.LittleEndian.PutUint64(dst[i:], (s&m)|(d&^m))
	}
	for ; i < n; i++ {
		dst[i] = (src[i] & m8) | (dst[i] &^ m8)
	}
	barrier(dst)
}

func memswapWhenBulk(cond uint64, a, b []byte) {
	m := MaskFromBit64(cond)
	m8 := uint8(m)
	n := spanLen(len(a), len(b))
	i := 0
	for ; n-i >= 16; i += 16 {
		a0 := binary.LittleEndian.Uint64(a[i:])
		b0 := binary.LittleEndian.Uint64(b[i:])
		a1 := binary.LittleEndian.Uint64(a[i+8:])
		b1 := binary.LittleEndian.Uint64(b[i+8:])
		t0 := (a0 ^ b0) & m
		t1 := (a1 ^ b1) & m
		binary.LittleEndian.PutUint64(a[i:], a0^t0)
		binary.LittleEndian.PutUint64(b[i:], b0^t0)
		binary.LittleEndian.PutUint64(a[i+8:], a1^t1)
		binary.LittleEndian.PutUint64(b[i+8:], b1^t1)
	}
	for ; n-i >= 8; i += 8 {
		av := binary.LittleEndian.Uint64(a[i:])
		bv := binary.LittleEndian.Uint64(b[i:])
		t := (av ^ bv) & m
		binary.LittleEndian.PutUint64(a[i:], av^t)
		binary.LittleEndian.PutUint64(b[i:], bv^t)
	}
	for ; i < n; i++ {
		t := (a[i] ^ b[i]) & m8
		a[i] ^= t
		b[i] ^= t
	}
	barrier(a)
	barrier(b)
}
