//go:build !linux

package gr2

import (
	"fmt"
	"os"
)

// LoadFile reads path into memory. On platforms without the mmap path
// (see loader_linux.go) this is a plain read; the returned closer is a
// no-op since there is nothing to unmap.
func LoadFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gr2: read %s: %w", path, err)
	}
	return data, func() error { return nil }, nil
}
