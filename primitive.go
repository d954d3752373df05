package gr2

import (
	"encoding/binary"
	"math"
)

// readU32 reads a fixed-width, endian-aware uint32 at the front of buf.
// The caller is responsible for ensuring len(buf) >= 4; short buffers are
// checked once at the call site (need(), or the element decoder's
// readBytes), not per-primitive.
func readU32(order binary.ByteOrder, buf []byte) uint32 {
	return order.Uint32(buf)
}

func readU64(order binary.ByteOrder, buf []byte) uint64 {
	return order.Uint64(buf)
}

func readI32(order binary.ByteOrder, buf []byte) int32 {
	return int32(order.Uint32(buf))
}

func readF32(order binary.ByteOrder, buf []byte) float32 {
	return math.Float32frombits(order.Uint32(buf))
}

// ptrSize is the on-wire width, in bytes, of a pointer-sized slot.
func ptrSize(is64Bit bool) int {
	if is64Bit {
		return 8
	}
	return 4
}

// readPtrSized reads a single pointer-width unsigned integer and widens
// it to 64 bits, returning the number of bytes consumed. No decoder site
// calls it: the element and type-record decoders skip pointer slots by
// ptrSize without reading their raw values, and take every cross-sector
// target from the owning sector's fixup table.
func readPtrSized(order binary.ByteOrder, is64Bit bool, buf []byte) (uint64, int) {
	if is64Bit {
		return readU64(order, buf), 8
	}
	return uint64(readU32(order, buf)), 4
}

func need(buf []byte, n int, op string) error {
	if len(buf) < n {
		return fail(op, ErrShortInput, "")
	}
	return nil
}
