package gr2

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestParsePointer(t *testing.T) {
	buf := cat(u32le(40), u32le(2), u32le(1024))
	p, err := parsePointer(binary.LittleEndian, buf)
	if err != nil {
		t.Fatalf("parsePointer: %v", err)
	}
	if p.SrcOffset != 40 || p.DstSector != 2 || p.DstOffset != 1024 {
		t.Fatalf("got %+v", p)
	}
}

func TestParsePointerShort(t *testing.T) {
	_, err := parsePointer(binary.LittleEndian, make([]byte, 4))
	if !errors.Is(err, ErrShortInput) {
		t.Fatalf("err = %v, want ErrShortInput", err)
	}
}
