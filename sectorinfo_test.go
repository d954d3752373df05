package gr2

import (
	"encoding/binary"
	"testing"
)

func buildSectorInfo(fields [11]uint32) []byte {
	var buf []byte
	for _, f := range fields {
		buf = append(buf, u32le(f)...)
	}
	return buf
}

func TestParseSectorInfo(t *testing.T) {
	fields := [11]uint32{0, 100, 200, 200, 4, 0, 0, 300, 2, 0, 0}
	buf := append(buildSectorInfo(fields), 0xFE)
	info, rest, err := parseSectorInfo(binary.LittleEndian, buf)
	if err != nil {
		t.Fatalf("parseSectorInfo: %v", err)
	}
	want := SectorInfo{
		CompressionType: 0, DataOffset: 100, CompressedLength: 200, DecompressedLength: 200,
		Alignment: 4, OodleStop0: 0, OodleStop1: 0, FixupOffset: 300, FixupSize: 2,
		MarshallOffset: 0, MarshallSize: 0,
	}
	if info != want {
		t.Fatalf("got %+v, want %+v", info, want)
	}
	if len(rest) != 1 || rest[0] != 0xFE {
		t.Fatalf("remainder = %v", rest)
	}
}
