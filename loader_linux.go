//go:build linux

package gr2

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// LoadFile maps path into memory read-only and returns its bytes along
// with a closer that unmaps them. Most GR2 assets are read once and
// discarded; mmap avoids copying large meshes into the Go heap just to
// decode them once.
func LoadFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gr2: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("gr2: stat %s: %w", path, err)
	}
	size := st.Size()
	if size == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("gr2: mmap %s: %w", path, err)
	}
	closer := func() error { return unix.Munmap(data) }
	return data, closer, nil
}
