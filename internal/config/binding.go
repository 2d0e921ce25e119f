package config

// Binding is either the raw bindings waiting for a keymap or the resolved
// lookup table. It is one of Unresolved or Resolved; callers switch on the
// concrete type.
type Binding interface {
	binding()
}

// Unresolved holds bindings that have not yet seen a keymap.
type Unresolved struct {
	Raw RawConfig
}

// Resolved holds the lookup table built from a keymap.
type Resolved struct {
	Config *Config
}

func (Unresolved) binding() {}
func (Resolved) binding()   {}
