package flatline

// Fixed compare-swap networks. The exchange decision is a MaskLess-gated
// XOR-swap, so the sequence of memory operations is identical for every
// input permutation.

// Sort2U32 orders *a <= *b.
func Sort2U32(a, b *uint32) {
	m := MaskLess32(*b, *a)
	t := (*a ^ *b) & m
	*a ^= t
	*b ^= t
}

// Sort4U32 sorts v in place with a five-comparator network.
func Sort4U32(v *[4]uint32) {
	Sort2U32(&v[0], &v[1])
	Sort2U32(&v[2], &v[3])
	Sort2U32(&v[0], &v[2])
	Sort2U32(&v[1], &v[3])
	Sort2U32(&v[1], &v[2])
}
