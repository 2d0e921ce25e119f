package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPresenter struct {
	calls    []string
	views    []View
	attached int
	failNext error
}

func (p *recordingPresenter) DestroyBuffer() error {
	p.calls = append(p.calls, "destroy")
	p.attached--
	return nil
}

func (p *recordingPresenter) CreateBuffer(v View) error {
	if p.failNext != nil {
		err := p.failNext
		p.failNext = nil
		return err
	}
	p.calls = append(p.calls, fmt.Sprintf("create %dx%d", v.Width, v.Height))
	p.views = append(p.views, v)
	p.attached++
	return nil
}

func (p *recordingPresenter) Commit(damage image.Rectangle) error {
	p.calls = append(p.calls, "commit "+damage.String())
	return nil
}

func TestStrideForWidth(t *testing.T) {
	assert.Equal(t, 0, ARGB32.StrideForWidth(0))
	assert.Equal(t, 4, ARGB32.StrideForWidth(1))
	assert.Equal(t, 800, ARGB32.StrideForWidth(200))
	assert.Equal(t, 12, XRGB32.StrideForWidth(3))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("XRGB32")
	require.NoError(t, err)
	assert.Equal(t, XRGB32, f)

	_, err = ParseFormat("rgb565")
	assert.Error(t, err)
}

func TestFramebuffer_ResizeKeepsStoreSizeInStep(t *testing.T) {
	store := NewMemStore()
	pres := &recordingPresenter{}
	fb := New(ARGB32, store, pres, nil)

	require.NoError(t, fb.Resize(100, 100))
	assert.Equal(t, ARGB32.StrideForWidth(100), fb.Stride())
	assert.Len(t, store.Bytes(), fb.Stride()*100)

	require.NoError(t, fb.Resize(200, 150))
	assert.Equal(t, ARGB32.StrideForWidth(200), fb.Stride())
	assert.Len(t, store.Bytes(), fb.Stride()*150)
	assert.Equal(t, fb.Stride()*150, fb.Size())

	s := fb.Surface()
	require.NotNil(t, s)
	assert.Equal(t, image.Rect(0, 0, 200, 150), s.Bounds())
	assert.Len(t, s.Pix, len(store.Bytes()))
}

func TestFramebuffer_DestroyBeforeCreate(t *testing.T) {
	pres := &recordingPresenter{}
	fb := New(ARGB32, NewMemStore(), pres, nil)

	require.NoError(t, fb.Resize(10, 10))
	require.NoError(t, fb.Commit())
	require.NoError(t, fb.Resize(20, 5))
	require.NoError(t, fb.Close())

	assert.Equal(t, []string{
		"create 10x10",
		"commit (0,0)-(10,10)",
		"destroy",
		"create 20x5",
		"destroy",
	}, pres.calls)
	assert.Equal(t, 0, pres.attached)
}

func TestFramebuffer_UnboundState(t *testing.T) {
	fb := New(ARGB32, NewMemStore(), &recordingPresenter{}, nil)

	assert.False(t, fb.Bound())
	assert.Nil(t, fb.Surface())
	assert.ErrorIs(t, fb.Commit(), ErrUnbound)

	w, h := fb.DeviceToUser(100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
	w, h = fb.UserToDevice(1, 1)
	assert.Zero(t, w)
	assert.Zero(t, h)

	assert.Error(t, fb.Resize(0, 10))
}

func TestFramebuffer_CreateFailureLeavesUnbound(t *testing.T) {
	boom := errors.New("boom")
	pres := &recordingPresenter{failNext: boom}
	fb := New(ARGB32, NewMemStore(), pres, nil)

	require.ErrorIs(t, fb.Resize(10, 10), boom)
	assert.False(t, fb.Bound())

	require.NoError(t, fb.Resize(10, 10))
	assert.Equal(t, []string{"create 10x10"}, pres.calls)
}

func TestFramebuffer_Scale(t *testing.T) {
	fb := New(ARGB32, NewMemStore(), &recordingPresenter{}, nil)
	require.NoError(t, fb.Resize(1920, 1080))

	w, h := fb.UserToDevice(0.5, 0.5)
	assert.Equal(t, 960.0, w)
	assert.Equal(t, 540.0, h)

	w, h = fb.DeviceToUser(192, 108)
	assert.InDelta(t, 0.1, w, 1e-12)
	assert.InDelta(t, 0.1, h, 1e-12)
}

func TestSurface_FillAndBlend(t *testing.T) {
	fb := New(ARGB32, NewMemStore(), &recordingPresenter{}, nil)
	require.NoError(t, fb.Resize(4, 4))
	s := fb.Surface()

	s.FillRect(s.Bounds(), color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})
	i := s.PixOffset(1, 1)
	assert.Equal(t, []byte{0x30, 0x20, 0x10, 0xff}, s.Pix[i:i+4])

	s.FillRect(image.Rect(0, 0, 2, 2), color.RGBA{})
	s.BlendRect(image.Rect(0, 0, 1, 1), color.RGBA{R: 0x80, A: 0x80})
	assert.Equal(t, color.RGBA{R: 0x80, A: 0x80}, s.At(0, 0))

	s.BlendRect(image.Rect(3, 3, 10, 10), color.RGBA{A: 0xff})
	assert.Equal(t, color.RGBA{A: 0xff}, s.At(3, 3))
}

func TestSurface_XRGBForcesOpaque(t *testing.T) {
	fb := New(XRGB32, NewMemStore(), &recordingPresenter{}, nil)
	require.NoError(t, fb.Resize(2, 2))
	s := fb.Surface()

	s.Set(0, 0, color.RGBA{R: 1, A: 0})
	assert.Equal(t, byte(0xff), s.Pix[3])
}

func TestSurface_CopyFrom(t *testing.T) {
	src := newSurface(make([]byte, 3*3*4), 3, 3, 12, XRGB32)
	src.FillRect(src.Bounds(), color.RGBA{R: 9, G: 8, B: 7, A: 0xff})
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0
	}

	dst := newSurface(make([]byte, 2*2*4), 2, 2, 8, ARGB32)
	dst.CopyFrom(src)
	assert.Equal(t, color.RGBA{R: 9, G: 8, B: 7, A: 0xff}, dst.At(1, 1))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(0, 1, color.RGBA{G: 0xff, A: 0xff})
	dst.CopyFrom(rgba)
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, dst.At(0, 1))
}

func TestSurface_CopyFromSmallerSourceClearsRest(t *testing.T) {
	blue := color.RGBA{B: 0xff, A: 0xff}
	src := newSurface(make([]byte, 2*2*4), 2, 2, 8, ARGB32)
	src.FillRect(src.Bounds(), blue)

	dst := newSurface(make([]byte, 4*4*4), 4, 4, 16, ARGB32)
	dst.FillRect(dst.Bounds(), color.RGBA{R: 0xff, A: 0xff})
	dst.CopyFrom(src)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := color.RGBA{}
			if x < 2 && y < 2 {
				want = blue
			}
			assert.Equal(t, want, dst.At(x, y), "pixel %d,%d", x, y)
		}
	}

	dst.FillRect(dst.Bounds(), color.RGBA{R: 0xff, A: 0xff})
	dst.CopyFrom(image.NewUniform(blue))
	assert.Equal(t, blue, dst.At(3, 3), "unbounded sources cover everything")

	col := image.NewRGBA(image.Rect(0, 0, 1, 4))
	dst.FillRect(dst.Bounds(), color.RGBA{R: 0xff, A: 0xff})
	dst.CopyFrom(col)
	assert.Equal(t, color.RGBA{}, dst.At(0, 3))
	assert.Equal(t, color.RGBA{}, dst.At(3, 0))
}
