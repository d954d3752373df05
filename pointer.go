package gr2

import "encoding/binary"

// Pointer is a fixup-table entry: the pointer-sized slot at SrcOffset in
// its owning sector's decompressed data should be interpreted as a
// reference to (DstSector, DstOffset), not as a raw integer.
type Pointer struct {
	SrcOffset uint32
	DstSector uint32
	DstOffset uint32
}

const pointerSize = 12

func parsePointer(order binary.ByteOrder, buf []byte) (Pointer, error) {
	if err := need(buf, pointerSize, "pointer"); err != nil {
		return Pointer{}, err
	}
	return Pointer{
		SrcOffset: readU32(order, buf[0:4]),
		DstSector: readU32(order, buf[4:8]),
		DstOffset: readU32(order, buf[8:12]),
	}, nil
}
