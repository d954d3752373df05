package gr2

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/opengr2/gr2/compr"
)

// Sector is a fully materialized, immutable sector: decompressed bytes
// plus the relocation table that turns raw integer slots in those bytes
// into (sector, offset) references. A Sector exclusively owns Data and
// Fixups; nothing else in the decoded tree aliases them.
type Sector struct {
	Info   SectorInfo
	Data   []byte
	Fixups map[uint32]Pointer
}

// loadSector decompresses one sector's payload out of the original file
// buffer and reads its fixup table. input is the *original* (possibly
// multi-sector) file buffer — fixup_offset and data_offset are absolute
// offsets into it, not into any sector's own data.
func loadSector(order binary.ByteOrder, input []byte, info SectorInfo) (Sector, error) {
	op := "sector"

	dataEnd := uint64(info.DataOffset) + uint64(info.CompressedLength)
	if dataEnd > uint64(len(input)) {
		return Sector{}, fail(op, ErrShortInput, fmt.Sprintf("data span [%d:%d) exceeds input of %d bytes",
			info.DataOffset, dataEnd, len(input)))
	}
	raw := input[info.DataOffset:dataEnd]

	decomp, err := compr.ForCodec(info.CompressionType)
	if err != nil {
		return Sector{}, fail(op, ErrUnsupportedCodec, err.Error())
	}
	data, err := decomp.Decompress(raw, int(info.DecompressedLength))
	if err != nil {
		return Sector{}, fail(op, ErrShortInput, err.Error())
	}

	fixups := make(map[uint32]Pointer, info.FixupSize)
	cursor := uint64(info.FixupOffset)
	for i := uint32(0); i < info.FixupSize; i++ {
		end := cursor + pointerSize
		if end > uint64(len(input)) {
			return Sector{}, fail(op, ErrShortInput, "fixup table runs past end of input")
		}
		ptr, err := parsePointer(order, input[cursor:end])
		if err != nil {
			return Sector{}, err
		}
		if _, dup := fixups[ptr.SrcOffset]; dup {
			return Sector{}, fail(op, ErrDuplicateFixup, fmt.Sprintf("src_offset=%d", ptr.SrcOffset))
		}
		fixups[ptr.SrcOffset] = ptr
		cursor = end
	}

	return Sector{Info: info, Data: data, Fixups: fixups}, nil
}

// resolve returns the fixup entry for offset, if any.
func (s *Sector) resolve(offset uint32) (Pointer, bool) {
	p, ok := s.Fixups[offset]
	return p, ok
}

// Len returns the length of the sector's decompressed data.
func (s *Sector) Len() int { return len(s.Data) }

// SortedFixupOffsets returns every src_offset this sector relocates, in
// ascending order, for sector introspection. cmd/gr2dump does not call it.
func (s *Sector) SortedFixupOffsets() []uint32 {
	keys := maps.Keys(s.Fixups)
	slices.Sort(keys)
	return keys
}

// checkSector validates that sector is a legal index into sectors,
// returning ErrSectorOutOfRange otherwise.
func checkSector(op string, sector uint32, sectors []Sector) error {
	if int(sector) >= len(sectors) {
		return fail(op, ErrSectorOutOfRange, fmt.Sprintf("sector=%d count=%d", sector, len(sectors)))
	}
	return nil
}

// checkOffset validates that offset lies within sectors[sector]'s
// decompressed data.
func checkOffset(op string, sectors []Sector, sector, offset uint32) error {
	if err := checkSector(op, sector, sectors); err != nil {
		return err
	}
	if int(offset) > sectors[sector].Len() {
		return fail(op, ErrOffsetOutOfRange, fmt.Sprintf("sector=%d offset=%d len=%d", sector, offset, sectors[sector].Len()))
	}
	return nil
}
