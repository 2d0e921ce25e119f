//go:build !linux

package framebuffer

// NewStore returns a heap-backed store; memfd is Linux only.
func NewStore(name string) Store {
	return NewMemStore()
}
