package flatline

import "math/bits"

// Rotations and byte swaps, delegated to math/bits. The compiler lowers
// these to single instructions where the target has them, and the rotation
// amount is reduced modulo the word width so no shift-by-width is possible.

// Rol32 rotates x left by c bits.
func Rol32(x uint32, c uint) uint32 { return bits.RotateLeft32(x, int(c&31)) }

// Ror32 rotates x right by c bits.
func Ror32(x uint32, c uint) uint32 { return bits.RotateLeft32(x, -int(c&31)) }

// Rol64 rotates x left by c bits.
func Rol64(x uint64, c uint) uint64 { return bits.RotateLeft64(x, int(c&63)) }

// Ror64 rotates x right by c bits.
func Ror64(x uint64, c uint) uint64 { return bits.RotateLeft64(x, -int(c&63)) }

// BSwap32 reverses the byte order of x.
func BSwap32(x uint32) uint32 { return bits.ReverseBytes32(x) }

// BSwap64 reverses the byte order of x.
func BSwap64(x uint64) uint64 { return bits.ReverseBytes64(x) }
