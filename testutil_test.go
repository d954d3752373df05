package gr2

import (
	"encoding/binary"
	"math"
)

// Byte-buffer helpers shared by this package's tests. GR2 has no public
// fixture assets in this retrieval, so every test builds its input bytes
// programmatically rather than embedding real .gr2 files.

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func i32le(v int32) []byte { return u32le(uint32(v)) }

func f32le(v float32) []byte {
	return u32le(math.Float32bits(v))
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// cat concatenates byte slices, a small convenience for laying out test
// buffers field by field in the order the decoder expects them.
func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func padTo(buf []byte, n int) []byte {
	if len(buf) >= n {
		return buf
	}
	out := make([]byte, n)
	copy(out, buf)
	return out
}

// gr2Magic returns one of the four known 16-byte magics, matched to what
// header.go actually checks against.
func gr2Magic(flavor string) []byte {
	switch flavor {
	case "le32":
		return gr2Magics[0][:]
	case "be32":
		return gr2Magics[1][:]
	case "le32extra16":
		return gr2Magics[2][:]
	case "le64":
		return gr2Magics[3][:]
	default:
		panic("unknown flavor " + flavor)
	}
}
