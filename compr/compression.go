// Package compr dispatches a GR2 sector's compression_type to a decoder.
// Only the "none" codec is implemented; the others are GR2's proprietary
// Oodle and Bitknit variants, which have no open implementation anywhere
// in this module's dependency set, so they are reported as unsupported
// rather than faked.
package compr

import "fmt"

// Codec identifies a GR2 sector compression_type.
type Codec uint32

const (
	CodecNone     Codec = 0
	CodecOodle0   Codec = 1
	CodecOodle1   Codec = 2
	CodecBitknit1 Codec = 3
	CodecBitknit2 Codec = 4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecOodle0:
		return "oodle0"
	case CodecOodle1:
		return "oodle1"
	case CodecBitknit1:
		return "bitknit1"
	case CodecBitknit2:
		return "bitknit2"
	default:
		return fmt.Sprintf("codec(%d)", uint32(c))
	}
}

// UnsupportedCodecError reports a sector whose compression_type this
// decoder cannot decompress.
type UnsupportedCodecError struct {
	Codec Codec
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("unsupported compression codec: %s", e.Codec)
}

// Decompressor decompresses one sector's payload. Implementations are
// not required to be safe for concurrent use by multiple sectors at
// once; each Sector calls its Decompressor exactly once, at load time.
type Decompressor interface {
	// Decompress returns the decompressed bytes for src, which must be
	// exactly decompressedLen bytes long on success.
	Decompress(src []byte, decompressedLen int) ([]byte, error)
}

type passthrough struct{}

func (passthrough) Decompress(src []byte, decompressedLen int) ([]byte, error) {
	if len(src) != decompressedLen {
		return nil, fmt.Errorf("none codec: expected %d bytes, got %d", decompressedLen, len(src))
	}
	// A copy, not a slice alias: sectors own their data independently of
	// the input buffer's lifetime (see Sector's ownership contract).
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}

// ForCodec returns the Decompressor for the given on-wire codec id, or
// an *UnsupportedCodecError if the codec isn't implemented.
func ForCodec(codec uint32) (Decompressor, error) {
	if Codec(codec) == CodecNone {
		return passthrough{}, nil
	}
	return nil, &UnsupportedCodecError{Codec: Codec(codec)}
}
