package keyboard

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Keysym is an X11 keysym value.
type Keysym uint32

// NoSymbol is the keysym reported for keycodes without a mapping.
const NoSymbol Keysym = 0

const (
	KeyBackSpace  Keysym = 0xff08
	KeyTab        Keysym = 0xff09
	KeyReturn     Keysym = 0xff0d
	KeyScrollLock Keysym = 0xff14
	KeyEscape     Keysym = 0xff1b
	KeyHome       Keysym = 0xff50
	KeyLeft       Keysym = 0xff51
	KeyUp         Keysym = 0xff52
	KeyRight      Keysym = 0xff53
	KeyDown       Keysym = 0xff54
	KeyPageUp     Keysym = 0xff55
	KeyPageDown   Keysym = 0xff56
	KeyEnd        Keysym = 0xff57
	KeyInsert     Keysym = 0xff63
	KeyNumLock    Keysym = 0xff7f
	KeyKPEnter    Keysym = 0xff8d
	KeyF1         Keysym = 0xffbe
	KeyShiftL     Keysym = 0xffe1
	KeyShiftR     Keysym = 0xffe2
	KeyControlL   Keysym = 0xffe3
	KeyControlR   Keysym = 0xffe4
	KeyCapsLock   Keysym = 0xffe5
	KeyMetaL      Keysym = 0xffe7
	KeyMetaR      Keysym = 0xffe8
	KeyAltL       Keysym = 0xffe9
	KeyAltR       Keysym = 0xffea
	KeySuperL     Keysym = 0xffeb
	KeySuperR     Keysym = 0xffec
	KeyDelete     Keysym = 0xffff
)

var keysymNames = map[string]Keysym{
	"BackSpace":   KeyBackSpace,
	"Tab":         KeyTab,
	"Return":      KeyReturn,
	"Scroll_Lock": KeyScrollLock,
	"Escape":      KeyEscape,
	"Home":        KeyHome,
	"Left":        KeyLeft,
	"Up":          KeyUp,
	"Right":       KeyRight,
	"Down":        KeyDown,
	"Prior":       KeyPageUp,
	"Page_Up":     KeyPageUp,
	"Next":        KeyPageDown,
	"Page_Down":   KeyPageDown,
	"End":         KeyEnd,
	"Insert":      KeyInsert,
	"Num_Lock":    KeyNumLock,
	"KP_Enter":    KeyKPEnter,
	"Shift_L":     KeyShiftL,
	"Shift_R":     KeyShiftR,
	"Control_L":   KeyControlL,
	"Control_R":   KeyControlR,
	"Caps_Lock":   KeyCapsLock,
	"Meta_L":      KeyMetaL,
	"Meta_R":      KeyMetaR,
	"Alt_L":       KeyAltL,
	"Alt_R":       KeyAltR,
	"Super_L":     KeySuperL,
	"Super_R":     KeySuperR,
	"Delete":      KeyDelete,

	"space":        0x0020,
	"exclam":       0x0021,
	"quotedbl":     0x0022,
	"numbersign":   0x0023,
	"dollar":       0x0024,
	"percent":      0x0025,
	"ampersand":    0x0026,
	"apostrophe":   0x0027,
	"parenleft":    0x0028,
	"parenright":   0x0029,
	"asterisk":     0x002a,
	"plus":         0x002b,
	"comma":        0x002c,
	"minus":        0x002d,
	"period":       0x002e,
	"slash":        0x002f,
	"colon":        0x003a,
	"semicolon":    0x003b,
	"less":         0x003c,
	"equal":        0x003d,
	"greater":      0x003e,
	"question":     0x003f,
	"at":           0x0040,
	"bracketleft":  0x005b,
	"backslash":    0x005c,
	"bracketright": 0x005d,
	"asciicircum":  0x005e,
	"underscore":   0x005f,
	"grave":        0x0060,
	"braceleft":    0x007b,
	"bar":          0x007c,
	"braceright":   0x007d,
	"asciitilde":   0x007e,

	"Clear":            0xff0b,
	"Pause":            0xff13,
	"Sys_Req":          0xff15,
	"Select":           0xff60,
	"Print":            0xff61,
	"Execute":          0xff62,
	"Undo":             0xff65,
	"Redo":             0xff66,
	"Menu":             0xff67,
	"Find":             0xff68,
	"Cancel":           0xff69,
	"Help":             0xff6a,
	"Break":            0xff6b,
	"Mode_switch":      0xff7e,
	"ISO_Level3_Shift": 0xfe03,
	"Hyper_L":          0xffed,
	"Hyper_R":          0xffee,

	"KP_Space":     0xff80,
	"KP_Tab":       0xff89,
	"KP_Home":      0xff95,
	"KP_Left":      0xff96,
	"KP_Up":        0xff97,
	"KP_Right":     0xff98,
	"KP_Down":      0xff99,
	"KP_Prior":     0xff9a,
	"KP_Page_Up":   0xff9a,
	"KP_Next":      0xff9b,
	"KP_Page_Down": 0xff9b,
	"KP_End":       0xff9c,
	"KP_Begin":     0xff9d,
	"KP_Insert":    0xff9e,
	"KP_Delete":    0xff9f,
	"KP_Multiply":  0xffaa,
	"KP_Add":       0xffab,
	"KP_Separator": 0xffac,
	"KP_Subtract":  0xffad,
	"KP_Decimal":   0xffae,
	"KP_Divide":    0xffaf,
	"KP_Equal":     0xffbd,

	"dead_grave":      0xfe50,
	"dead_acute":      0xfe51,
	"dead_circumflex": 0xfe52,
	"dead_tilde":      0xfe53,
	"dead_diaeresis":  0xfe57,
	"EuroSign":        0x20ac,

	"XF86MonBrightnessUp":   0x1008ff02,
	"XF86MonBrightnessDown": 0x1008ff03,
	"XF86KbdBrightnessUp":   0x1008ff05,
	"XF86KbdBrightnessDown": 0x1008ff06,
	"XF86AudioLowerVolume":  0x1008ff11,
	"XF86AudioMute":         0x1008ff12,
	"XF86AudioRaiseVolume":  0x1008ff13,
	"XF86AudioPlay":         0x1008ff14,
	"XF86AudioStop":         0x1008ff15,
	"XF86AudioPrev":         0x1008ff16,
	"XF86AudioNext":         0x1008ff17,
	"XF86HomePage":          0x1008ff18,
	"XF86Mail":              0x1008ff19,
	"XF86Search":            0x1008ff1b,
	"XF86Calculator":        0x1008ff1d,
	"XF86Back":              0x1008ff26,
	"XF86Forward":           0x1008ff27,
	"XF86PowerOff":          0x1008ff2a,
	"XF86Eject":             0x1008ff2c,
	"XF86Sleep":             0x1008ff2f,
	"XF86AudioPause":        0x1008ff31,
	"XF86Display":           0x1008ff59,
	"XF86TouchpadToggle":    0x1008ffa9,
	"XF86AudioMicMute":      0x1008ffb2,
}

// latin1Names are the keysymdef names of 0xa0-0xff, which equal their
// Latin-1 code points.
var latin1Names = [...]string{
	"nobreakspace", "exclamdown", "cent", "sterling", "currency", "yen", "brokenbar", "section",
	"diaeresis", "copyright", "ordfeminine", "guillemotleft", "notsign", "hyphen", "registered", "macron",
	"degree", "plusminus", "twosuperior", "threesuperior", "acute", "mu", "paragraph", "periodcentered",
	"cedilla", "onesuperior", "masculine", "guillemotright", "onequarter", "onehalf", "threequarters", "questiondown",
	"Agrave", "Aacute", "Acircumflex", "Atilde", "Adiaeresis", "Aring", "AE", "Ccedilla",
	"Egrave", "Eacute", "Ecircumflex", "Ediaeresis", "Igrave", "Iacute", "Icircumflex", "Idiaeresis",
	"ETH", "Ntilde", "Ograve", "Oacute", "Ocircumflex", "Otilde", "Odiaeresis", "multiply",
	"Oslash", "Ugrave", "Uacute", "Ucircumflex", "Udiaeresis", "Yacute", "THORN", "ssharp",
	"agrave", "aacute", "acircumflex", "atilde", "adiaeresis", "aring", "ae", "ccedilla",
	"egrave", "eacute", "ecircumflex", "ediaeresis", "igrave", "iacute", "icircumflex", "idiaeresis",
	"eth", "ntilde", "ograve", "oacute", "ocircumflex", "otilde", "odiaeresis", "division",
	"oslash", "ugrave", "uacute", "ucircumflex", "udiaeresis", "yacute", "thorn", "ydiaeresis",
}

func init() {
	// Latin letters and digits are named by themselves and map to their ASCII value.
	for c := 'a'; c <= 'z'; c++ {
		keysymNames[string(c)] = Keysym(c)
		keysymNames[string(c-'a'+'A')] = Keysym(c - 'a' + 'A')
	}
	for c := '0'; c <= '9'; c++ {
		keysymNames[string(c)] = Keysym(c)
		keysymNames["KP_"+string(c)] = 0xffb0 + Keysym(c-'0')
	}
	for i, name := range latin1Names {
		keysymNames[name] = 0x00a0 + Keysym(i)
	}
	// F11 and up share codes with the L and R names of some keyboards;
	// only the F names are kept.
	for i := 0; i < 35; i++ {
		keysymNames[fmt.Sprintf("F%d", i+1)] = KeyF1 + Keysym(i)
	}
	canonicalNames = buildCanonicalNames()
}

// KeysymFromName returns the keysym for an X11 keysym name such as "h",
// "Return" or "semicolon". Names are case sensitive, as in keysymdef.h.
// The table covers the keys commonly bound; a live keymap also resolves
// the rest of keysymdef.h through the server's mapping.
func KeysymFromName(name string) (Keysym, bool) {
	ks, ok := keysymNames[name]
	return ks, ok
}

// Name returns a canonical name for the keysym, or its hex value if unknown.
func (k Keysym) Name() string {
	if name, ok := canonicalNames[k]; ok {
		return name
	}
	// keybind shortens punctuation names to the character itself; those are
	// all in the table above, so what reaches here is a full name.
	if name := keybind.KeysymToStr(xproto.Keysym(k)); name != "" {
		return name
	}
	return fmt.Sprintf("0x%04x", uint32(k))
}

func (k Keysym) String() string {
	return k.Name()
}

var canonicalNames map[Keysym]string

func buildCanonicalNames() map[Keysym]string {
	out := make(map[Keysym]string, len(keysymNames))
	for name, ks := range keysymNames {
		if existing, ok := out[ks]; ok && existing < name {
			continue
		}
		out[ks] = name
	}
	return out
}
