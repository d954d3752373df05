package gr2

import (
	"bytes"
	"encoding/binary"
)

// Header is the file's 32-byte preamble. big_endian, bits_64, and
// extra_16 are all derived from the 16-byte magic; size and format are
// the two endian-aware u32 words that follow it. Header is discarded by
// the facade once endianness and pointer width have been chosen — it is
// never threaded through the rest of the decode.
type Header struct {
	BigEndian bool
	Extra16   bool
	Bits64    bool

	Size   uint32
	Format uint32
}

var gr2Magics = [4][16]byte{
	{0xB8, 0x67, 0xB0, 0xCA, 0xF8, 0x6D, 0xB1, 0x0F, 0x84, 0x72, 0x8C, 0x7E, 0x5E, 0x19, 0x00, 0x1E}, // LE, 32-bit, format 6
	{0xCA, 0xB0, 0x67, 0xB6, 0x0F, 0xB1, 0xDB, 0xF8, 0x7E, 0x8C, 0x72, 0x84, 0x1E, 0x00, 0x19, 0x5E}, // BE, 32-bit, format 6
	{0x29, 0xDE, 0x6C, 0xC0, 0xBA, 0xA4, 0x53, 0x2B, 0x25, 0xF5, 0xB7, 0xA5, 0xF6, 0x66, 0xE2, 0xEE}, // LE, 32-bit, format 7
	{0xE5, 0x9B, 0x49, 0x5E, 0x6F, 0x63, 0x1F, 0x14, 0x1E, 0x13, 0xEB, 0xA9, 0x90, 0xBE, 0xED, 0xC4}, // LE, 64-bit, format 7
}

const headerSize = 32

// parseHeader reads the 32-byte header and returns it along with the
// remaining input. It recognizes exactly the four known GR2 magics;
// anything else is ErrBadMagic.
func parseHeader(buf []byte) (Header, []byte, error) {
	const op = "header"
	if err := need(buf, 16, op); err != nil {
		return Header{}, nil, err
	}
	magic := buf[:16]

	matched := false
	for _, m := range gr2Magics {
		if bytes.Equal(magic, m[:]) {
			matched = true
			break
		}
	}
	if !matched {
		return Header{}, nil, fail(op, ErrBadMagic, hexdump(magic))
	}

	h := Header{
		BigEndian: magic[0] == 0xCA,
		Bits64:    magic[0] == 0xE5,
		Extra16:   magic[0] == 0x29 || magic[0] == 0xE5,
	}

	if err := need(buf, headerSize, op); err != nil {
		return Header{}, nil, err
	}

	order := byteOrder(h.BigEndian)
	h.Size = readU32(order, buf[16:20])
	h.Format = readU32(order, buf[20:24])
	// buf[24:32] is reserved and skipped.

	return h, buf[headerSize:], nil
}

func byteOrder(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func hexdump(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, hextable[c>>4], hextable[c&0x0f])
	}
	return string(out)
}
