package gr2

import (
	"encoding/binary"
	"fmt"
)

// FileInfo is the file-level descriptor that immediately follows the
// header. The fixed portion is 40 bytes; the remainder up to
// FileInfoSize is opaque and skipped.
type FileInfo struct {
	FormatVersion int32
	TotalSize     uint32
	CRC32         uint32
	FileInfoSize  uint32
	SectorCount   uint32
	TypeRef       Reference
	RootRef       Reference
	Tag           uint32
}

const fileInfoFixedSize = 40

func parseFileInfo(order binary.ByteOrder, buf []byte) (FileInfo, []byte, error) {
	const op = "file_info"
	if err := need(buf, fileInfoFixedSize, op); err != nil {
		return FileInfo{}, nil, err
	}

	info := FileInfo{
		FormatVersion: int32(readU32(order, buf[0:4])),
		TotalSize:     readU32(order, buf[4:8]),
		CRC32:         readU32(order, buf[8:12]),
		FileInfoSize:  readU32(order, buf[12:16]),
		SectorCount:   readU32(order, buf[16:20]),
	}

	var err error
	info.TypeRef, err = parseReference(order, buf[20:28])
	if err != nil {
		return FileInfo{}, nil, err
	}
	info.RootRef, err = parseReference(order, buf[28:36])
	if err != nil {
		return FileInfo{}, nil, err
	}
	info.Tag = readU32(order, buf[36:40])

	if info.FileInfoSize < fileInfoFixedSize {
		return FileInfo{}, nil, fail(op, ErrShortInput,
			fmt.Sprintf("file_info_size %d < %d", info.FileInfoSize, fileInfoFixedSize))
	}
	trailing := int(info.FileInfoSize - fileInfoFixedSize)
	if err := need(buf, fileInfoFixedSize+trailing, op); err != nil {
		return FileInfo{}, nil, err
	}

	if info.SectorCount == 0 {
		return FileInfo{}, nil, fail(op, ErrShortInput, "sector_count must be >= 1")
	}

	return info, buf[fileInfoFixedSize+trailing:], nil
}
