//go:build linux

package framebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestShmStore_ResizeRemaps(t *testing.T) {
	s, err := NewShmStore("keynav-test")
	if err != nil {
		t.Skipf("memfd unavailable: %v", err)
	}
	defer s.Close()

	require.NoError(t, s.Resize(400))
	require.Len(t, s.Bytes(), 400)
	s.Bytes()[399] = 0x7f

	require.NoError(t, s.Resize(800*150))
	assert.Len(t, s.Bytes(), 800*150)

	var st unix.Stat_t
	require.NoError(t, unix.Fstat(s.Fd(), &st))
	assert.Equal(t, int64(800*150), st.Size)

	require.NoError(t, s.Resize(0))
	assert.Nil(t, s.Bytes())
}

func TestFramebuffer_ShmStoreMatchesStride(t *testing.T) {
	s, err := NewShmStore("keynav-test")
	if err != nil {
		t.Skipf("memfd unavailable: %v", err)
	}
	fb := New(ARGB32, s, &recordingPresenter{}, nil)
	defer fb.Close()

	require.NoError(t, fb.Resize(100, 100))
	require.NoError(t, fb.Resize(200, 150))
	assert.Len(t, s.Bytes(), ARGB32.StrideForWidth(200)*150)
}

func TestShmStore_BytesAreTheMemfdContents(t *testing.T) {
	s, err := NewShmStore("keynav-test")
	if err != nil {
		t.Skipf("memfd unavailable: %v", err)
	}

	require.NoError(t, s.Resize(64))
	copy(s.Bytes()[16:], []byte{0xde, 0xad, 0xbe, 0xef})

	got := make([]byte, 4)
	n, err := unix.Pread(s.Fd(), got, 16)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got)

	require.NoError(t, s.Close())
	assert.Equal(t, -1, s.Fd())
	assert.Nil(t, s.Bytes())
}
