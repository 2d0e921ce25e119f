package keyboard

// Direction is the press state of a single key.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// State tracks the modifier mask and per-key direction for one keymap. A
// new State is created whenever a new keymap is received.
type State struct {
	keymap    Keymap
	depressed ModMask
	latched   ModMask
	locked    ModMask
	group     uint32
	keys      map[Keycode]Direction
}

// NewState returns an empty state bound to km.
func NewState(km Keymap) *State {
	return &State{
		keymap: km,
		keys:   make(map[Keycode]Direction),
	}
}

// Keymap returns the layout this state is bound to.
func (s *State) Keymap() Keymap {
	return s.keymap
}

// KeySym resolves a raw input code against the current layout.
func (s *State) KeySym(raw uint32) Keysym {
	return s.keymap.KeySym(Keycode(raw + KeycodeOffset))
}

// UpdateKey records a key transition. Modifier keys add or remove their
// modifiers from the depressed mask.
func (s *State) UpdateKey(raw uint32, dir Direction) {
	code := Keycode(raw + KeycodeOffset)
	if dir == Down {
		s.keys[code] = Down
	} else {
		delete(s.keys, code)
	}

	mods := s.keymap.ModifierMask(code)
	if mods == 0 {
		return
	}
	if dir == Down {
		s.depressed |= mods
		return
	}
	// Another held key may still provide the same modifier.
	var held ModMask
	for other := range s.keys {
		held |= s.keymap.ModifierMask(other)
	}
	s.depressed &^= mods &^ held
}

// UpdateMask replaces the serialized modifier state with the values
// reported by the display server.
func (s *State) UpdateMask(depressed, latched, locked ModMask, group uint32) {
	s.depressed = depressed
	s.latched = latched
	s.locked = locked
	s.group = group
}

// EffectiveMods returns depressed, latched and locked modifiers combined.
func (s *State) EffectiveMods() ModMask {
	return s.depressed | s.latched | s.locked
}

// Group returns the active layout group.
func (s *State) Group() uint32 {
	return s.group
}

// IsDown reports whether the raw code is currently held.
func (s *State) IsDown(raw uint32) bool {
	return s.keys[Keycode(raw+KeycodeOffset)] == Down
}
