package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysymFromName(t *testing.T) {
	tests := []struct {
		name string
		want Keysym
	}{
		{"h", 0x68},
		{"H", 0x48},
		{"0", 0x30},
		{"Return", KeyReturn},
		{"semicolon", 0x3b},
		{"F12", 0xffc9},
		{"KP_5", 0xffb5},
		{"Prior", KeyPageUp},
		{"F13", 0xffca},
		{"F35", 0xffe0},
		{"Print", 0xff61},
		{"Pause", 0xff13},
		{"Menu", 0xff67},
		{"KP_Add", 0xffab},
		{"odiaeresis", 0x00f6},
		{"Odiaeresis", 0x00d6},
		{"ssharp", 0x00df},
		{"XF86AudioPlay", 0x1008ff14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeysymFromName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := KeysymFromName("NotAKey")
	assert.False(t, ok)
	_, ok = KeysymFromName("return")
	assert.False(t, ok, "keysym names are case sensitive")
}

func TestKeysymName(t *testing.T) {
	assert.Equal(t, "h", Keysym(0x68).Name())
	assert.Equal(t, "Return", KeyReturn.Name())
	assert.Equal(t, "Page_Up", KeyPageUp.Name())
	assert.Equal(t, "odiaeresis", Keysym(0x00f6).Name())
	assert.Equal(t, "Aogonek", Keysym(0x01a1).Name())
	assert.Equal(t, "0x1234", Keysym(0x1234).Name())
}

func TestStaticKeymap_WithNames(t *testing.T) {
	base := USKeymap()
	_, ok := base.KeysymFromName("XF86Next_VMode")
	require.False(t, ok)

	km := base.WithNames(map[string]Keysym{"XF86Next_VMode": 0x1008fe22, "h": 0x0068})
	ks, ok := km.KeysymFromName("XF86Next_VMode")
	require.True(t, ok)
	assert.Equal(t, Keysym(0x1008fe22), ks)

	ks, ok = km.KeysymFromName("Return")
	require.True(t, ok, "built-in names still resolve")
	assert.Equal(t, KeyReturn, ks)

	_, ok = base.KeysymFromName("XF86Next_VMode")
	assert.False(t, ok, "the original keymap is unchanged")
	assert.Equal(t, base.KeySym(Keycode(EvdevEsc+KeycodeOffset)), km.KeySym(Keycode(EvdevEsc+KeycodeOffset)))
}

func TestModMaskString(t *testing.T) {
	assert.Equal(t, "none", ModMask(0).String())
	assert.Equal(t, "Shift+Control", (Bit(ModIndexShift) | Bit(ModIndexControl)).String())
	assert.Equal(t, "mod9", Bit(9).String())
}

func TestUSKeymap_ModIndexAndKeySym(t *testing.T) {
	km := USKeymap()

	idx, ok := km.ModIndex("Shift")
	require.True(t, ok)
	assert.Equal(t, ModIndexShift, idx)

	idx, ok = km.ModIndex("Alt")
	require.True(t, ok)
	assert.Equal(t, ModIndexMod1, idx)

	_, ok = km.ModIndex("h")
	assert.False(t, ok)

	raw, ok := km.RawCode(0x68)
	require.True(t, ok)
	assert.Equal(t, uint32(35), raw)
	assert.Equal(t, Keysym(0x68), km.KeySym(Keycode(raw+KeycodeOffset)))
}

func TestState_KeySymAppliesOffset(t *testing.T) {
	st := NewState(USKeymap())
	assert.Equal(t, KeyReturn, st.KeySym(28))
	assert.Equal(t, Keysym(0x71), st.KeySym(16))
	assert.Equal(t, NoSymbol, st.KeySym(250))
}

func TestState_ModifierKeysTrackDepressedMask(t *testing.T) {
	st := NewState(USKeymap())
	shift := Bit(ModIndexShift)

	st.UpdateKey(EvdevLeftShift, Down)
	assert.Equal(t, shift, st.EffectiveMods())
	assert.True(t, st.IsDown(EvdevLeftShift))

	st.UpdateKey(EvdevRightShift, Down)
	st.UpdateKey(EvdevLeftShift, Up)
	assert.Equal(t, shift, st.EffectiveMods(), "right shift still held")

	st.UpdateKey(EvdevRightShift, Up)
	assert.Equal(t, ModMask(0), st.EffectiveMods())
	assert.False(t, st.IsDown(EvdevRightShift))
}

func TestState_NonModifierKeysLeaveMaskAlone(t *testing.T) {
	st := NewState(USKeymap())
	st.UpdateKey(35, Down)
	assert.Equal(t, ModMask(0), st.EffectiveMods())
	assert.True(t, st.IsDown(35))
	st.UpdateKey(35, Up)
	assert.False(t, st.IsDown(35))
}

func TestState_UpdateMask(t *testing.T) {
	st := NewState(USKeymap())
	st.UpdateMask(Bit(ModIndexControl), Bit(ModIndexShift), Bit(ModIndexLock), 1)
	assert.Equal(t, Bit(ModIndexControl)|Bit(ModIndexShift)|Bit(ModIndexLock), st.EffectiveMods())
	assert.Equal(t, uint32(1), st.Group())

	st.UpdateMask(0, 0, 0, 0)
	assert.Equal(t, ModMask(0), st.EffectiveMods())
}
