// Package shm provides helpers for the shared memory that backs
// wl_shm pools.
package shm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Create returns an anonymous, memory-backed file of the given size.
// The name is only used for debugging.
func Create(name string, size int64) (*os.File, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return nil, fmt.Errorf("memfd_create: %w", err)
	}
	file := os.NewFile(uintptr(fd), name)

	err = file.Truncate(size)
	if err != nil {
		file.Close()
		return nil, err
	}

	return file, nil
}

// Seal prevents file from being shrunk, which would cause the
// compositor to fault when it reads past the new end.
func Seal(file *os.File) error {
	sc, err := file.SyscallConn()
	if err != nil {
		return err
	}

	var serr error
	err = sc.Control(func(fd uintptr) {
		_, serr = unix.FcntlInt(fd, unix.F_ADD_SEALS, unix.F_SEAL_SHRINK|unix.F_SEAL_SEAL)
	})
	if err != nil {
		return err
	}
	return serr
}

// Mmap is a mapping of a file into memory.
type Mmap []byte

// Map maps the first size bytes of file into memory as shared.
func Map(file *os.File, size int, prot int) (mmap Mmap, err error) {
	sc, err := file.SyscallConn()
	if err != nil {
		return nil, err
	}

	cerr := sc.Control(func(fd uintptr) {
		m, merr := unix.Mmap(int(fd), 0, size, prot, unix.MAP_SHARED)
		mmap, err = Mmap(m), merr
	})
	if cerr != nil {
		return nil, cerr
	}
	return mmap, err
}

func (mmap Mmap) Unmap() error {
	if mmap == nil {
		return nil
	}
	return unix.Munmap(mmap)
}
