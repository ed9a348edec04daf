package flatline

// Oblivious lookup and store. A secret-indexed access into an array touches
// one cache line and leaks the index; these routines sweep the whole array
// instead, so the address stream depends only on the public length. The cost
// is linear in the array size, which is the price of the flat address
// pattern.

// Lookup8 returns arr[idx] after reading every element of arr. An
// out-of-range idx yields 0.
func Lookup8(arr []byte, idx uint64) uint8 {
	var out uint8
	for i := 0; i < len(arr); i++ {
		m := uint8(MaskEq64(uint64(i), idx))
		out = (arr[i] & m) | (out &^ m)
	}
	return out
}

// Lookup16 returns arr[idx] after reading every element of arr.
func Lookup16(arr []uint16, idx uint64) uint16 {
	var out uint16
	for i := 0; i < len(arr); i++ {
		m := uint16(MaskEq64(uint64(i), idx))
		out = (arr[i] & m) | (out &^ m)
	}
	return out
}

// Lookup32 returns arr[idx] after reading every element of arr.
func Lookup32(arr []uint32, idx uint64) uint32 {
	var out uint32
	for i := 0; i < len(arr); i++ {
		m := uint32(MaskEq64(uint64(i), idx))
		out = (arr[i] & m) | (out &^ m)
	}
	return out
}

// Lookup64 returns arr[idx] after reading every element of arr.
func Lookup64(arr []uint64, idx uint64) uint64 {
	var out uint64
	for i := 0; i < len(arr); i++ {
		m := MaskEq64(uint64(i), idx)
		out = (arr[i] & m) | (out &^ m)
	}
	return out
}

// StoreAt8 writes value at arr[idx] by rewriting every element of arr. An
// out-of-range idx leaves the contents unchanged, but still rewrites.
func StoreAt8(arr []byte, idx uint64, value uint8) {
	for i := 0; i < len(arr); i++ {
		m := uint8(MaskEq64(uint64(i), idx))
		arr[i] = (value & m) | (arr[i] &^ m)
	}
	barrier(arr)
}

// StoreAt16 writes value at arr[idx] by rewriting every element of arr.
func StoreAt16(arr []uint16, idx uint64, value uint16) {
	for i := 0; i < len(arr); i++ {
		m := uint16(MaskEq64(uint64(i), idx))
		arr[i] = (value & m) | (arr[i] &^ m)
	}
	barrier(arr)
}

// StoreAt32 writes value at arr[idx] by rewriting every element of arr.
func StoreAt32(arr []uint32, idx uint64, value uint32) {
	for i := 0; i < len(arr); i++ {
		m := uint32(MaskEq64(uint64(i), idx))
		arr[i] = (value & m) | (arr[i] &^ m)
	}
	barrier(arr)
}

// StoreAt64 writes value at arr[idx] by rewriting every element of arr.
func StoreAt64(arr []uint64, idx uint64, value uint64) {
	for i := 0; i < len(arr); i++ {
		m := MaskEq64(uint64(i), idx)
		arr[i] = (value & m) | (arr[i] &^ m)
	}
	barrier(arr)
}

// TableApply maps each byte of in through table into out, performing a full
// sweep lookup per input byte. Intended for S-box application where the
// input bytes are secret; the cost is len(in) * len(table).
func TableApply(out, in, table []byte) {
	n := spanLen(len(out), len(in))
	for i := 0; i < n; i++ {
		out[i] = Lookup8(table, uint64(in[i]))
	}
	barrier(out)
}

// SelectBlock copies the stride-sized block numbered secretIdx out of blocks
// into out. Every block is read; out accumulates blocks[i] under an
// equality mask, so the address stream covers count*stride bytes no matter
// which block is selected. out is zeroed first, so an out-of-range index
// yields an all-zero block.
func SelectBlock(out, blocks []byte, count, stride int, secretIdx uint64) {
	for k := 0; k < stride; k++ {
		out[k] = 0
	}
	for i := 0; i < count; i++ {
		m := uint8(MaskEq64(uint64(i), secretIdx))
		b := blocks[i*stride : i*stride+stride]
		for k := 0; k < stride; k++ {
			out[k] = (b[k] & m) | (out[k] &^ m)
		}
	}
	barrier(out)
}
