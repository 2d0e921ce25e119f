package framebuffer

import "fmt"

// Store is resizable backing memory for the framebuffer. Bytes is only
// valid until the next Resize.
type Store interface {
	Resize(size int) error
	Bytes() []byte
	Close() error
}

// MemStore is a heap-backed Store for tests and for presenters that copy
// pixels out instead of sharing memory.
type MemStore struct {
	buf []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Resize(size int) error {
	if size < 0 {
		return fmt.Errorf("invalid store size %d", size)
	}
	m.buf = make([]byte, size)
	return nil
}

func (m *MemStore) Bytes() []byte {
	return m.buf
}

func (m *MemStore) Close() error {
	m.buf = nil
	return nil
}
