package keyboard

import (
	"math/bits"
	"strconv"
	"strings"
)

// Keycode is a layout keycode (raw input code plus KeycodeOffset).
type Keycode uint32

// KeycodeOffset converts raw evdev codes into layout keycodes. X11 and XKB
// keycodes start at 8.
const KeycodeOffset = 8

// ModMask is a bitmask of modifier indices.
type ModMask uint32

// Real modifier indices shared by X11 and XKB keymaps.
const (
	ModIndexShift uint = iota
	ModIndexLock
	ModIndexControl
	ModIndexMod1
	ModIndexMod2
	ModIndexMod3
	ModIndexMod4
	ModIndexMod5
)

var realModNames = map[string]uint{
	"Shift":   ModIndexShift,
	"Lock":    ModIndexLock,
	"Control": ModIndexControl,
	"Mod1":    ModIndexMod1,
	"Mod2":    ModIndexMod2,
	"Mod3":    ModIndexMod3,
	"Mod4":    ModIndexMod4,
	"Mod5":    ModIndexMod5,
}

// RealModIndex returns the index for one of the eight core modifier names.
func RealModIndex(name string) (uint, bool) {
	idx, ok := realModNames[name]
	return idx, ok
}

// Bit returns the mask with only the modifier at idx set.
func Bit(idx uint) ModMask {
	return ModMask(1) << idx
}

// String lists the set modifier indices using core names where possible.
func (m ModMask) String() string {
	if m == 0 {
		return "none"
	}
	names := [...]string{"Shift", "Lock", "Control", "Mod1", "Mod2", "Mod3", "Mod4", "Mod5"}
	var parts []string
	for rest := uint32(m); rest != 0; rest &= rest - 1 {
		idx := bits.TrailingZeros32(rest)
		if idx < len(names) {
			parts = append(parts, names[idx])
		} else {
			parts = append(parts, "mod"+strconv.Itoa(idx))
		}
	}
	return strings.Join(parts, "+")
}

// Keymap is the layout description delivered by the display server. It
// answers the two questions binding resolution needs (is this token a
// modifier, is it a keysym) and the lookups key handling needs.
type Keymap interface {
	// ModIndex returns the bit position of a named modifier.
	ModIndex(name string) (uint, bool)
	// KeysymFromName returns the keysym named by a config token.
	KeysymFromName(name string) (Keysym, bool)
	// KeySym returns the first keysym of the first shift level for code.
	KeySym(code Keycode) Keysym
	// ModifierMask returns the modifiers set while code is held, or 0.
	ModifierMask(code Keycode) ModMask
}
