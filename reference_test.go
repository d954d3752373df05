package gr2

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestParseReference(t *testing.T) {
	buf := cat(u32le(3), u32le(960))
	ref, err := parseReference(binary.LittleEndian, buf)
	if err != nil {
		t.Fatalf("parseReference: %v", err)
	}
	if ref.Sector != 3 || ref.Position != 960 {
		t.Fatalf("got %+v", ref)
	}
}

func TestParseReferenceShort(t *testing.T) {
	_, err := parseReference(binary.LittleEndian, []byte{1, 2, 3})
	if !errors.Is(err, ErrShortInput) {
		t.Fatalf("err = %v, want ErrShortInput", err)
	}
}
