package keyboard

// StaticKeymap is an in-memory keymap. It backs `keynav check`, which
// resolves bindings without a display connection, and the tests.
type StaticKeymap struct {
	syms    map[Keycode]Keysym
	mods    map[Keycode]ModMask
	aliases map[string]uint
	names   map[string]Keysym
}

// NewStaticKeymap builds a keymap from raw-code → keysym and raw-code →
// modifier tables. Aliases name additional modifiers (e.g. "Alt" → Mod1).
func NewStaticKeymap(syms map[uint32]Keysym, mods map[uint32]ModMask, aliases map[string]uint) *StaticKeymap {
	km := &StaticKeymap{
		syms:    make(map[Keycode]Keysym, len(syms)),
		mods:    make(map[Keycode]ModMask, len(mods)),
		aliases: make(map[string]uint, len(aliases)),
	}
	for raw, ks := range syms {
		km.syms[Keycode(raw+KeycodeOffset)] = ks
	}
	for raw, m := range mods {
		km.mods[Keycode(raw+KeycodeOffset)] = m
	}
	for name, idx := range aliases {
		km.aliases[name] = idx
	}
	return km
}

// ModIndex implements Keymap.
func (k *StaticKeymap) ModIndex(name string) (uint, bool) {
	if idx, ok := RealModIndex(name); ok {
		return idx, true
	}
	idx, ok := k.aliases[name]
	return idx, ok
}

// WithNames returns a copy of k that also resolves the given keysym names.
// They are consulted before the built-in name table.
func (k *StaticKeymap) WithNames(names map[string]Keysym) *StaticKeymap {
	out := *k
	out.names = make(map[string]Keysym, len(k.names)+len(names))
	for name, ks := range k.names {
		out.names[name] = ks
	}
	for name, ks := range names {
		out.names[name] = ks
	}
	return &out
}

// KeysymFromName implements Keymap.
func (k *StaticKeymap) KeysymFromName(name string) (Keysym, bool) {
	if ks, ok := k.names[name]; ok {
		return ks, true
	}
	return KeysymFromName(name)
}

// KeySym implements Keymap.
func (k *StaticKeymap) KeySym(code Keycode) Keysym {
	return k.syms[code]
}

// ModifierMask implements Keymap.
func (k *StaticKeymap) ModifierMask(code Keycode) ModMask {
	return k.mods[code]
}

// RawCode returns a raw input code that produces ks at the base level.
func (k *StaticKeymap) RawCode(ks Keysym) (uint32, bool) {
	var best Keycode
	found := false
	for code, sym := range k.syms {
		if sym == ks && (!found || code < best) {
			best, found = code, true
		}
	}
	if !found {
		return 0, false
	}
	return uint32(best) - KeycodeOffset, true
}

// Evdev codes for a US PC105 keyboard.
const (
	EvdevEsc        = 1
	EvdevLeftCtrl   = 29
	EvdevLeftShift  = 42
	EvdevRightShift = 54
	EvdevLeftAlt    = 56
	EvdevCapsLock   = 58
	EvdevNumLock    = 69
	EvdevRightCtrl  = 97
	EvdevRightAlt   = 100
	EvdevLeftMeta   = 125
)

// USKeymap returns a static US QWERTY layout with the conventional X11
// modifier assignment (Alt on Mod1, NumLock on Mod2, Super on Mod4).
func USKeymap() *StaticKeymap {
	syms := map[uint32]Keysym{
		EvdevEsc: KeyEscape,
		14:       KeyBackSpace,
		15:       KeyTab,
		28:       KeyReturn,
		57:       0x0020,
		12:       0x002d, // minus
		13:       0x003d, // equal
		26:       0x005b, // bracketleft
		27:       0x005d, // bracketright
		39:       0x003b, // semicolon
		40:       0x0027, // apostrophe
		41:       0x0060, // grave
		43:       0x005c, // backslash
		51:       0x002c, // comma
		52:       0x002e, // period
		53:       0x002f, // slash
		102:      KeyHome,
		103:      KeyUp,
		104:      KeyPageUp,
		105:      KeyLeft,
		106:      KeyRight,
		107:      KeyEnd,
		108:      KeyDown,
		109:      KeyPageDown,
		110:      KeyInsert,
		111:      KeyDelete,
		96:       KeyKPEnter,

		EvdevLeftCtrl:   KeyControlL,
		EvdevRightCtrl:  KeyControlR,
		EvdevLeftShift:  KeyShiftL,
		EvdevRightShift: KeyShiftR,
		EvdevLeftAlt:    KeyAltL,
		EvdevRightAlt:   KeyAltR,
		EvdevLeftMeta:   KeySuperL,
		EvdevCapsLock:   KeyCapsLock,
		EvdevNumLock:    KeyNumLock,
	}

	rows := []struct {
		first uint32
		keys  string
	}{
		{2, "1234567890"},
		{16, "qwertyuiop"},
		{30, "asdfghjkl"},
		{44, "zxcvbnm"},
	}
	for _, row := range rows {
		for i, c := range row.keys {
			syms[row.first+uint32(i)] = Keysym(c)
		}
	}
	for i := uint32(0); i < 10; i++ {
		syms[59+i] = KeyF1 + Keysym(i)
	}
	syms[87] = KeyF1 + 10
	syms[88] = KeyF1 + 11

	mods := map[uint32]ModMask{
		EvdevLeftShift:  Bit(ModIndexShift),
		EvdevRightShift: Bit(ModIndexShift),
		EvdevLeftCtrl:   Bit(ModIndexControl),
		EvdevRightCtrl:  Bit(ModIndexControl),
		EvdevLeftAlt:    Bit(ModIndexMod1),
		EvdevRightAlt:   Bit(ModIndexMod1),
		EvdevLeftMeta:   Bit(ModIndexMod4),
	}

	aliases := map[string]uint{
		"Ctrl":    ModIndexControl,
		"Alt":     ModIndexMod1,
		"Meta":    ModIndexMod1,
		"NumLock": ModIndexMod2,
		"Super":   ModIndexMod4,
	}

	return NewStaticKeymap(syms, mods, aliases)
}
