package wl

import (
	"errors"
	"fmt"
	"os"

	"deedles.dev/wayland/shm"
	"golang.org/x/sys/unix"
)

// Pool is a wl_shm_pool together with the shared memory that backs
// it, mapped into this process.
type Pool struct {
	*ShmPool

	file *os.File
	mmap shm.Mmap
}

// NewPool allocates size bytes of shared memory and creates a pool
// from them.
func NewPool(s *Shm, size int32) (pool *Pool, err error) {
	file, err := shm.Create("wl_shm_pool", int64(size))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	mmap, err := shm.Map(file, int(size), unix.PROT_READ|unix.PROT_WRITE)
	if err != nil {
		return nil, fmt.Errorf("map pool: %w", err)
	}

	return &Pool{
		ShmPool: s.CreatePool(file, size),
		file:    file,
		mmap:    mmap,
	}, nil
}

// Bytes returns the pool's memory.
func (pool *Pool) Bytes() []byte {
	return pool.mmap
}

// Buffer creates a buffer that uses the part of the pool's memory
// starting at offset.
func (pool *Pool) Buffer(offset, width, height, stride int32, format ShmFormat) (*Buffer, error) {
	if (offset < 0) || (int(offset)+int(height)*int(stride) > len(pool.mmap)) {
		return nil, fmt.Errorf("%vx%v buffer with stride %v at %v does not fit in pool of size %v", width, height, stride, offset, len(pool.mmap))
	}
	return pool.CreateBuffer(offset, width, height, stride, format), nil
}

// Grow enlarges the pool. Pools can not shrink.
func (pool *Pool) Grow(size int32) error {
	if int(size) <= len(pool.mmap) {
		return nil
	}

	err := pool.file.Truncate(int64(size))
	if err != nil {
		return err
	}

	mmap, err := shm.Map(pool.file, int(size), unix.PROT_READ|unix.PROT_WRITE)
	if err != nil {
		return fmt.Errorf("map pool: %w", err)
	}
	pool.mmap.Unmap()
	pool.mmap = mmap

	pool.Resize(size)
	return nil
}

// Destroy destroys the pool and releases its memory. Buffers created
// from it remain usable by the server.
func (pool *Pool) Destroy() error {
	pool.ShmPool.Destroy()
	err := pool.mmap.Unmap()
	pool.mmap = nil
	return errors.Join(err, pool.file.Close())
}
