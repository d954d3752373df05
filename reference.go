package gr2

import "encoding/binary"

// Reference is a (sector index, byte offset) coordinate into the decoded
// file — e.g. FileInfo's type_ref/root_ref.
type Reference struct {
	Sector   uint32
	Position uint32
}

const referenceSize = 8

func parseReference(order binary.ByteOrder, buf []byte) (Reference, error) {
	if err := need(buf, referenceSize, "reference"); err != nil {
		return Reference{}, err
	}
	return Reference{
		Sector:   readU32(order, buf[0:4]),
		Position: readU32(order, buf[4:8]),
	}, nil
}
