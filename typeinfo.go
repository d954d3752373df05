package gr2

import (
	"encoding/binary"
	"fmt"
)

// TypeInfo is one record of the type stream. The name and children
// pointers are never taken from the raw on-disk slot — they are always
// resolved through the type sector's own fixup table, keyed by this
// record's absolute offset + 4 (name) and +4|+8 past that (children).
type TypeInfo struct {
	TypeID       uint32
	NamePtr      *Pointer
	ChildrenPtr  *Pointer
	ArraySize    int32
}

// typeInfoSize returns the total on-disk size of a TypeInfo record. The
// original source's actual byte consumption (4 fixed fields, then a
// padding take() of 16 or 20 bytes) sums to 32 (32-bit) or 44 (64-bit)
// bytes; see SPEC_FULL.md §5 for why this implementation follows that
// arithmetic rather than the spec's "24/32" prose, which doesn't agree
// with its own field-offset table.
func typeInfoSize(is64Bit bool) int {
	if is64Bit {
		return 4 + 8 + 8 + 4 + 20
	}
	return 4 + 4 + 4 + 4 + 16
}

// parseTypeInfo reads one TypeInfo record at byte offset `base` of
// typeSector's decompressed data.
func parseTypeInfo(order binary.ByteOrder, is64Bit bool, typeSector *Sector, base uint32) (TypeInfo, error) {
	const op = "type_info"
	recLen := typeInfoSize(is64Bit)
	data := typeSector.Data
	if int(base) > len(data) {
		return TypeInfo{}, fail(op, ErrOffsetOutOfRange, fmt.Sprintf("offset=%d len=%d", base, len(data)))
	}
	if int(base)+recLen > len(data) {
		return TypeInfo{}, fail(op, ErrShortInput, fmt.Sprintf("record at %d needs %d bytes, have %d", base, recLen, len(data)-int(base)))
	}

	buf := data[base:]
	typeID := readU32(order, buf[0:4])

	pw := uint32(ptrSize(is64Bit))
	childrenSlotOffset := 4 + pw
	arraySizeOffset := 4 + 2*pw
	arraySize := readI32(order, buf[arraySizeOffset:arraySizeOffset+4])

	info := TypeInfo{TypeID: typeID, ArraySize: arraySize}

	if p, ok := typeSector.resolve(base + 4); ok {
		pp := p
		info.NamePtr = &pp
	}
	if p, ok := typeSector.resolve(base + childrenSlotOffset); ok {
		pp := p
		info.ChildrenPtr = &pp
	}

	return info, nil
}

// isTerminator reports whether a type_id ends the current element list,
// per §4.6 step 2: type_id 0, or any type_id beyond the known range.
func isTerminator(typeID uint32) bool {
	return typeID == 0 || typeID > 22
}
