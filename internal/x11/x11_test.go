package x11

import (
	"errors"
	"image"
	"testing"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/keynav/internal/framebuffer"
	"github.com/1broseidon/keynav/internal/keyboard"
	"github.com/1broseidon/keynav/internal/pointer"
)

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{Name: "left", X: 0, Y: 0, Width: 1920, Height: 1080},
		{Name: "right", X: 1920, Y: 0, Width: 2560, Height: 1440},
	}

	assert.Equal(t, "left", monitorAt(monitors, 10, 10).Name)
	assert.Equal(t, "right", monitorAt(monitors, 1920, 0).Name)
	assert.Equal(t, "right", monitorAt(monitors, 4000, 1400).Name)
	// Below the shorter monitor falls back to the first.
	assert.Equal(t, "left", monitorAt(monitors, 100, 1200).Name)
}

func TestCrtcMonitor(t *testing.T) {
	names := map[randr.Output]string{7: "DP-1"}
	var asked []randr.Output
	lookup := func(out randr.Output) (string, error) {
		asked = append(asked, out)
		if name, ok := names[out]; ok {
			return name, nil
		}
		return "", errors.New("bad output")
	}

	m, ok := crtcMonitor(2, &randr.GetCrtcInfoReply{X: 1920, Y: -10, Width: 2560, Height: 1440, Outputs: []randr.Output{7, 8}}, lookup)
	require.True(t, ok)
	assert.Equal(t, Monitor{ID: 2, Name: "DP-1", X: 1920, Y: -10, Width: 2560, Height: 1440}, m)

	m, ok = crtcMonitor(3, &randr.GetCrtcInfoReply{Width: 800, Height: 600, Outputs: []randr.Output{9}}, lookup)
	require.True(t, ok)
	assert.Equal(t, "Monitor3", m.Name)

	_, ok = crtcMonitor(4, &randr.GetCrtcInfoReply{Width: 800, Height: 600}, lookup)
	assert.False(t, ok, "no outputs")
	_, ok = crtcMonitor(5, &randr.GetCrtcInfoReply{Outputs: []randr.Output{7}}, lookup)
	assert.False(t, ok, "no size")

	assert.Equal(t, []randr.Output{7, 9}, asked)
	assert.Equal(t, "Monitor6", outputName(6, nil, lookup))
	assert.Len(t, asked, 2)
}

func TestStateMods(t *testing.T) {
	numLock := keyboard.Bit(4)
	state := uint16(xproto.ModMaskShift | xproto.ModMaskLock | xproto.ModMask2 | xproto.ModMaskControl | xproto.KeyButMaskButton1)

	depressed, locked := stateMods(state, numLock)
	assert.Equal(t, keyboard.ModMask(xproto.ModMaskShift|xproto.ModMaskControl), depressed)
	assert.Equal(t, keyboard.ModMask(xproto.ModMaskLock)|numLock, locked)
}

func TestRawCode(t *testing.T) {
	// Keycode 38 is "a" on evdev layouts; its input code is 30.
	assert.Equal(t, uint32(30), rawCode(38))
}

func TestNamedKeysym(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		columns [][]keyboard.Keysym
		want    keyboard.Keysym
		ok      bool
	}{
		{"exact name at shifted level", "Aogonek", [][]keyboard.Keysym{{0x01b1, 0x01a1}}, 0x01a1, true},
		{"exact name at base level", "aogonek", [][]keyboard.Keysym{{0x01b1, 0x01a1}}, 0x01b1, true},
		{"case folded", "xf86next_vmode", [][]keyboard.Keysym{{0x1008fe22, 0, 0, 0}}, 0x1008fe22, true},
		{"alias of the only keysym", "L3", [][]keyboard.Keysym{{0xffca, 0xffca}}, 0xffca, true},
		{"shared by every keycode", "XF86Next_VMode", [][]keyboard.Keysym{{0x1008fe22, 0x61}, {0x62, 0x1008fe22}}, 0x1008fe22, true},
		{"ambiguous", "Nope", [][]keyboard.Keysym{{0x61, 0x41}}, 0, false},
		{"no keycodes", "XF86Next_VMode", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := namedKeysym(tt.token, tt.columns)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVirtualPointerQueuesUntilFrame(t *testing.T) {
	p := NewVirtualPointer(nil, Monitor{X: 100, Y: 50, Width: 1000, Height: 500})

	require.NoError(t, p.MotionAbsolute(5000, 2500, pointer.Extent, pointer.Extent))
	require.NoError(t, p.Button(0x110, pointer.Pressed))
	require.NoError(t, p.Button(0x111, pointer.Released))
	require.NoError(t, p.Button(0x112, pointer.Pressed))

	assert.Equal(t, []fakeInput{
		{kind: xproto.MotionNotify, x: 600, y: 175},
		{kind: xproto.ButtonPress, detail: 1},
		{kind: xproto.ButtonRelease, detail: 3},
		{kind: xproto.ButtonPress, detail: 2},
	}, p.pending)
}

func TestVirtualPointerRejectsBadInput(t *testing.T) {
	p := NewVirtualPointer(nil, Monitor{Width: 100, Height: 100})

	assert.Error(t, p.MotionAbsolute(1, 1, 0, pointer.Extent))
	assert.Error(t, p.Button(0x113, pointer.Pressed))
	assert.Empty(t, p.pending)
}

func TestRootPositionRounds(t *testing.T) {
	p := NewVirtualPointer(nil, Monitor{Width: 3, Height: 3})

	x, y := p.rootPosition(5000, 10000, pointer.Extent, pointer.Extent)
	assert.Equal(t, int16(2), x) // 1.5 rounds away from zero
	assert.Equal(t, int16(3), y)
}

func TestCropSurface(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 3)
	stride := 4 * 4
	pix := make([]byte, stride*3)
	for i := range pix {
		pix[i] = byte(i)
	}

	s, err := cropSurface(pix, stride, bounds, Monitor{X: 1, Y: 1, Width: 2, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), s.Rect)
	assert.Equal(t, stride, s.Stride)
	assert.Equal(t, framebuffer.XRGB32, s.Format)
	assert.Equal(t, byte(stride+4), s.Pix[s.PixOffset(0, 0)])
	assert.Equal(t, byte(2*stride+8), s.Pix[s.PixOffset(1, 1)])
}

func TestCropSurfaceClipsToCapture(t *testing.T) {
	pix := make([]byte, 4*4*4)

	s, err := cropSurface(pix, 16, image.Rect(0, 0, 4, 4), Monitor{X: 2, Y: 2, Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), s.Rect)

	_, err = cropSurface(pix, 16, image.Rect(0, 0, 4, 4), Monitor{X: 8, Y: 8, Width: 2, Height: 2})
	assert.Error(t, err)
}
