package flatline

import "encoding/binary"

// Endianness helpers over unaligned byte slices. These are thin wrappers
// around encoding/binary, which compiles to straight-line loads and stores.

// LoadBE16 reads a big-endian uint16 from p.
func LoadBE16(p []byte) uint16 { return binary.BigEndian.Uint16(p) }

// LoadLE16 reads a little-endian uint16 from p.
func LoadLE16(p []byte) uint16 { return binary.LittleEndian.Uint16(p) }

// StoreBE16 writes v to p big-endian.
func StoreBE16(p []byte, v uint16) { binary.BigEndian.PutUint16(p, v) }

// StoreLE16 writes v to p little-endian.
func StoreLE16(p []byte, v uint16) { binary.LittleEndian.PutUint16(p, v) }

// LoadBE32 reads a big-endian uint32 from p.
func LoadBE32(p []byte) uint32 { return binary.BigEndian.Uint32(p) }

// LoadLE32 reads a little-endian uint32 from p.
func LoadLE32(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }

// StoreBE32 writes v to p big-endian.
func StoreBE32(p []byte, v uint32) { binary.BigEndian.PutUint32(p, v) }

// StoreLE32 writes v to p little-endian.
func StoreLE32(p []byte, v uint32) { binary.LittleEndian.PutUint32(p, v) }

// LoadBE64 reads a big-endian uint64 from p.
func LoadBE64(p []byte) uint64 { return binary.BigEndian.Uint64(p) }

// LoadLE64 reads a little-endian uint64 from p.
func LoadLE64(p []byte) uint64 { return binary.LittleEndian.Uint64(p) }

// StoreBE64 writes v to p big-endian.
func StoreBE64(p []byte, v uint64) { binary.BigEndian.PutUint64(p, v) }

// StoreLE64 writes v to p little-endian.
func StoreLE64(p []byte, v uint64) { binary.LittleEndian.PutUint64(p, v) }
