//go:build linux

package framebuffer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ShmStore keeps pixels in an anonymous memfd mapped shared. Writes through
// Bytes land in the file behind Fd.
//
// The X11 presenter does not share these pages with the server: xgraphics
// uploads them with PutImage on every commit, and xgb has no MIT-SHM
// AttachFd request to hand the descriptor over.
type ShmStore struct {
	fd  int
	buf []byte
}

// NewShmStore creates an empty memfd-backed store.
func NewShmStore(name string) (*ShmStore, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("memfd_create: %w", err)
	}
	return &ShmStore{fd: fd}, nil
}

// Fd returns the memfd. It is -1 after Close.
func (s *ShmStore) Fd() int {
	return s.fd
}

// Resize truncates the memfd to size bytes and remaps it. The previous
// mapping is released first.
func (s *ShmStore) Resize(size int) error {
	if size < 0 {
		return fmt.Errorf("invalid store size %d", size)
	}
	if err := s.unmap(); err != nil {
		return err
	}
	if err := unix.Ftruncate(s.fd, int64(size)); err != nil {
		return fmt.Errorf("ftruncate memfd to %d: %w", size, err)
	}
	if size == 0 {
		return nil
	}
	buf, err := unix.Mmap(s.fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap memfd: %w", err)
	}
	s.buf = buf
	return nil
}

func (s *ShmStore) Bytes() []byte {
	return s.buf
}

func (s *ShmStore) Close() error {
	err := s.unmap()
	if s.fd >= 0 {
		if cerr := unix.Close(s.fd); cerr != nil && err == nil {
			err = cerr
		}
		s.fd = -1
	}
	return err
}

func (s *ShmStore) unmap() error {
	if s.buf == nil {
		return nil
	}
	if err := unix.Munmap(s.buf); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	s.buf = nil
	return nil
}

// NewStore returns a shared-memory store, falling back to heap memory when
// memfd is unavailable.
func NewStore(name string) Store {
	s, err := NewShmStore(name)
	if err != nil {
		return NewMemStore()
	}
	return s
}
