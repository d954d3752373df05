package gr2

import "encoding/binary"

// SectorInfo is one 44-byte entry of the sector directory.
type SectorInfo struct {
	CompressionType     uint32
	DataOffset          uint32
	CompressedLength    uint32
	DecompressedLength  uint32
	Alignment           uint32
	OodleStop0          uint32
	OodleStop1          uint32
	FixupOffset         uint32
	FixupSize           uint32
	MarshallOffset      uint32
	MarshallSize        uint32
}

const sectorInfoSize = 44

func parseSectorInfo(order binary.ByteOrder, buf []byte) (SectorInfo, []byte, error) {
	const op = "sector_info"
	if err := need(buf, sectorInfoSize, op); err != nil {
		return SectorInfo{}, nil, err
	}
	fields := make([]uint32, 11)
	for i := range fields {
		fields[i] = readU32(order, buf[i*4:i*4+4])
	}
	info := SectorInfo{
		CompressionType:    fields[0],
		DataOffset:         fields[1],
		CompressedLength:   fields[2],
		DecompressedLength: fields[3],
		Alignment:          fields[4],
		OodleStop0:         fields[5],
		OodleStop1:         fields[6],
		FixupOffset:        fields[7],
		FixupSize:          fields[8],
		MarshallOffset:     fields[9],
		MarshallSize:       fields[10],
	}
	return info, buf[sectorInfoSize:], nil
}
