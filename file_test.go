package gr2

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"
)

// buildMinimalFile assembles a complete, synthetic, single-element GR2
// buffer: two sectors (one type stream, one data stream), no compression,
// one cross-sector fixup for the element's name. Layout:
//
//	[0:32)    header
//	[32:72)   file info (fixed, no trailing bytes)
//	[72:160)  sector directory (2 x 44-byte entries)
//	[160:230) sector 0 payload: one F32 type record + terminator + "Value\0"
//	[230:234) sector 1 payload: one float32
//	[234:246) sector 0's fixup table (1 entry)
//
// buildMinimalFile builds the LE32 flavor; buildMinimalFileFlavor builds
// any of the four known flavors, varying endianness and pointer width
// (which changes the type record's size: 32 bytes for 32-bit, 44 for
// 64-bit) while keeping the same logical element tree.
func buildMinimalFile() []byte {
	return buildMinimalFileFlavor("le32")
}

// buildTypeRecordFlavor lays out one type-stream record with pw-byte-wide
// (4 or 8) name/children pointer slots — their raw bytes are never read
// (fixups always override them), only their width affects layout — and
// the matching reserved padding (16 for 32-bit, 20 for 64-bit), keeping
// the record at typeInfoSize(is64) bytes.
func buildTypeRecordFlavor(u32 func(uint32) []byte, is64 bool, typeID uint32, arraySize int32) []byte {
	pw := 4
	pad := 16
	if is64 {
		pw = 8
		pad = 20
	}
	rec := cat(u32(typeID), make([]byte, pw), make([]byte, pw), u32(uint32(arraySize)), make([]byte, pad))
	return rec
}

func buildMinimalFileFlavor(flavor string) []byte {
	u32 := u32le
	is64 := false
	if flavor == "be32" {
		u32 = u32be
	}
	if flavor == "le64" {
		is64 = true
	}
	f32With := func(v float32) []byte { return u32(math.Float32bits(v)) }

	typeRec := buildTypeRecordFlavor(u32, is64, 10, 0) // F32
	term := buildTypeRecordFlavor(u32, is64, 0, 0)
	nameStr := append([]byte("Value"), 0)
	sector0 := cat(typeRec, term, nameStr)

	sector1 := f32With(42.0) // 4 bytes

	header := buildHeader(flavor, 1, 0)

	fileInfo := cat(
		u32(7), u32(0), u32(0), u32(40), u32(2),
		u32(0), u32(0), // type_ref: sector 0, position 0
		u32(1), u32(0), // root_ref: sector 1, position 0
		u32(0),
	)

	const (
		headerLen   = 32
		fileInfoLen = 40
		sectorDir   = 2 * 44
	)
	sector0Off := headerLen + fileInfoLen + sectorDir
	sector1Off := sector0Off + len(sector0)
	fixupOff := sector1Off + len(sector1)

	sectorInfo0 := cat(
		u32(0), u32(uint32(sector0Off)), u32(uint32(len(sector0))), u32(uint32(len(sector0))),
		u32(0), u32(0), u32(0),
		u32(uint32(fixupOff)), u32(1),
		u32(0), u32(0),
	)
	sectorInfo1 := cat(
		u32(0), u32(uint32(sector1Off)), u32(uint32(len(sector1))), u32(uint32(len(sector1))),
		u32(0), u32(0), u32(0),
		u32(0), u32(0),
		u32(0), u32(0),
	)

	fixupTable := cat(u32(4), u32(0), u32(uint32(len(typeRec)+len(term))))

	return cat(header, fileInfo, sectorInfo0, sectorInfo1, sector0, sector1, fixupTable)
}

func TestDecodeEndToEnd(t *testing.T) {
	buf := buildMinimalFile()
	f, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(f.Root) != 1 {
		t.Fatalf("got %d root elements, want 1", len(f.Root))
	}
	if f.Root[0].Name != "Value" || f.Root[0].Value.Kind != KindF32 || f.Root[0].Value.F32 != 42 {
		t.Fatalf("Root[0] = %+v", f.Root[0])
	}

	v, ok := f.Find("Value")
	if !ok || v.F32 != 42 {
		t.Fatalf("Find(Value) = %+v, %v", v, ok)
	}
	if _, err := f.FindKind("Value", KindI32); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("FindKind wrong-kind err = %v", err)
	}
}

func TestDecodeBadMagicWrapsError(t *testing.T) {
	buf := buildMinimalFile()
	buf[0] ^= 0xFF
	_, err := Decode(buf)
	if err == nil {
		t.Fatal("expected an error")
	}
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v (%T), want *Error", err, err)
	}
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeCached(t *testing.T) {
	buf := buildMinimalFile()
	opts := DefaultOptions()

	f1, err := DecodeCached(buf, opts)
	if err != nil {
		t.Fatalf("DecodeCached: %v", err)
	}
	f2, err := DecodeCached(buf, opts)
	if err != nil {
		t.Fatalf("DecodeCached: %v", err)
	}
	if f1 != f2 {
		t.Fatal("expected the second DecodeCached call to return the cached *File")
	}
}

func TestDecodeRejectsSectorRefOutOfRange(t *testing.T) {
	buf := buildMinimalFile()
	// file info starts at offset 32; root_ref.sector is the u32 at +28.
	binary.LittleEndian.PutUint32(buf[32+28:32+32], 5)
	_, err := Decode(buf)
	if !errors.Is(err, ErrSectorOutOfRange) {
		t.Fatalf("err = %v, want ErrSectorOutOfRange", err)
	}
}

// TestDecodeAgreesAcrossFlavors is spec.md §8 invariant 5: the same
// logical element tree, encoded in each of the four known header
// flavors (LE32, BE32, LE32-extra16, LE64 — varying endianness and
// pointer width), must decode to the same tree.
func TestDecodeAgreesAcrossFlavors(t *testing.T) {
	flavors := []string{"le32", "be32", "le32extra16", "le64"}
	var trees [][]Element
	for _, flavor := range flavors {
		buf := buildMinimalFileFlavor(flavor)
		f, err := Decode(buf)
		if err != nil {
			t.Fatalf("%s: Decode: %v", flavor, err)
		}
		if len(f.Root) != 1 || f.Root[0].Name != "Value" || f.Root[0].Value.Kind != KindF32 || f.Root[0].Value.F32 != 42 {
			t.Fatalf("%s: Root = %+v", flavor, f.Root)
		}
		trees = append(trees, f.Root)
	}
	for i := 1; i < len(trees); i++ {
		if !reflect.DeepEqual(trees[0], trees[i]) {
			t.Fatalf("%s tree %+v != %s tree %+v", flavors[0], trees[0], flavors[i], trees[i])
		}
	}
}

// TestDecodeDeterministic is spec.md §8 invariant 4: decoding the same
// file bytes twice yields structurally equal trees.
func TestDecodeDeterministic(t *testing.T) {
	buf := buildMinimalFile()
	f1, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode (1st): %v", err)
	}
	f2, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode (2nd): %v", err)
	}
	if !reflect.DeepEqual(f1.Root, f2.Root) {
		t.Fatalf("two decodes of the same bytes disagree: %+v != %+v", f1.Root, f2.Root)
	}
}
