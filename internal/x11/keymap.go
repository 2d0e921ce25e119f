package x11

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/keynav/internal/keyboard"
)

// modifierAliases name modifiers by the keysym that drives them. Their
// modifier bit depends on the server's modifier map.
var modifierAliases = []struct {
	name    string
	keysyms []string
}{
	{"Ctrl", []string{"Control_L", "Control_R"}},
	{"Alt", []string{"Alt_L", "Alt_R"}},
	{"Meta", []string{"Meta_L", "Meta_R", "Alt_L"}},
	{"Super", []string{"Super_L", "Super_R"}},
	{"NumLock", []string{"Num_Lock"}},
}

// ReadKeymap snapshots the server's keyboard and modifier mappings into an
// immutable keymap. Only the base level of each keycode is kept. Names the
// built-in table does not know are looked up in keybind's keysymdef table
// against the current mapping, so any key the layout has can be bound.
// It must run on the goroutine that owns xu's keyboard state.
func ReadKeymap(xu *xgbutil.XUtil, names []string) *keyboard.StaticKeymap {
	setup := xproto.Setup(xu.Conn())
	syms := make(map[uint32]keyboard.Keysym)
	mods := make(map[uint32]keyboard.ModMask)

	for code := int(setup.MinKeycode); code <= int(setup.MaxKeycode); code++ {
		kc := xproto.Keycode(code)
		raw := uint32(code) - keyboard.KeycodeOffset
		if ks := keybind.KeysymGet(xu, kc, 0); ks != 0 {
			syms[raw] = keyboard.Keysym(ks)
		}
		if mask := keybind.ModGet(xu, kc); mask != 0 {
			mods[raw] = keyboard.ModMask(mask)
		}
	}

	aliases := make(map[string]uint)
	for _, alias := range modifierAliases {
		for _, name := range alias.keysyms {
			if mask := modMaskForKeysym(xu, name); mask != 0 {
				aliases[alias.name] = uint(bits.TrailingZeros16(mask))
				break
			}
		}
	}

	km := keyboard.NewStaticKeymap(syms, mods, aliases)
	if extra := lookupNames(xu, names); len(extra) > 0 {
		km = km.WithNames(extra)
	}
	return km
}

func lookupNames(xu *xgbutil.XUtil, names []string) map[string]keyboard.Keysym {
	perCode := keybind.KeyMapGet(xu).KeysymsPerKeycode
	out := make(map[string]keyboard.Keysym)
	for _, name := range names {
		// keybind's table files some keypad names under their ASCII
		// keysym, so names the built-in table has keep their own value.
		if _, ok := keyboard.KeysymFromName(name); ok {
			continue
		}
		var columns [][]keyboard.Keysym
		for _, kc := range keybind.StrToKeycodes(xu, name) {
			col := make([]keyboard.Keysym, 0, perCode)
			for c := byte(0); c < perCode; c++ {
				col = append(col, keyboard.Keysym(keybind.KeysymGet(xu, kc, c)))
			}
			columns = append(columns, col)
		}
		if ks, ok := namedKeysym(name, columns); ok {
			out[name] = ks
		}
	}
	return out
}

// namedKeysym picks the keysym called name out of the keysym columns of
// the keycodes that produce it. Only keysyms every keycode carries are
// candidates. An exact name wins over a case-insensitive one; failing
// both, a single candidate is taken as the keysym under another alias.
func namedKeysym(name string, columns [][]keyboard.Keysym) (keyboard.Keysym, bool) {
	if len(columns) == 0 {
		return 0, false
	}
	var candidates []keyboard.Keysym
	for _, ks := range columns[0] {
		if ks == keyboard.NoSymbol || slices.Contains(candidates, ks) {
			continue
		}
		shared := true
		for _, col := range columns[1:] {
			if !slices.Contains(col, ks) {
				shared = false
				break
			}
		}
		if shared {
			candidates = append(candidates, ks)
		}
	}

	var folded []keyboard.Keysym
	for _, ks := range candidates {
		str := keybind.KeysymToStr(xproto.Keysym(ks))
		if str == name {
			return ks, true
		}
		if strings.EqualFold(str, name) {
			folded = append(folded, ks)
		}
	}
	switch {
	case len(folded) == 1:
		return folded[0], true
	case len(folded) == 0 && len(candidates) == 1:
		return candidates[0], true
	}
	return 0, false
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

// stateMods splits a core event state into held and locked modifiers.
// Pointer button bits are dropped.
func stateMods(state uint16, numLock keyboard.ModMask) (depressed, locked keyboard.ModMask) {
	mods := keyboard.ModMask(state & 0xff)
	lockBits := keyboard.ModMask(xproto.ModMaskLock) | numLock
	return mods &^ lockBits, mods & lockBits
}
