package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1broseidon/keynav/internal/action"
	"github.com/1broseidon/keynav/internal/keyboard"
)

var (
	ErrUnknownToken       = errors.New("token is neither a modifier nor a key symbol")
	ErrNoKeySymbol        = errors.New("combination has no key symbol")
	ErrMultipleKeySymbols = errors.New("combination has more than one key symbol")
)

// ResolveError reports a bindings entry that cannot be bound to the layout.
type ResolveError struct {
	Keys  []string
	Token string
	Line  int
	Err   error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("binding %q", joinKeys(e.Keys))
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %q: %v", msg, e.Token, e.Err)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Combo is a resolved key combination.
type Combo struct {
	Mods keyboard.ModMask
	Sym  keyboard.Keysym
}

func (c Combo) String() string {
	if c.Mods == 0 {
		return c.Sym.Name()
	}
	return c.Mods.String() + "+" + c.Sym.Name()
}

// Config is the resolved lookup table. It is immutable once built.
type Config struct {
	mappings map[Combo][]action.Action
}

// Lookup returns the actions bound to the combination.
func (c *Config) Lookup(mods keyboard.ModMask, sym keyboard.Keysym) ([]action.Action, bool) {
	acts, ok := c.mappings[Combo{Mods: mods, Sym: sym}]
	return acts, ok
}

// Len returns the number of distinct combinations.
func (c *Config) Len() int {
	return len(c.mappings)
}

// Combos returns the bound combinations ordered by keysym, then mask.
func (c *Config) Combos() []Combo {
	out := make([]Combo, 0, len(c.mappings))
	for combo := range c.mappings {
		out = append(out, combo)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sym != out[j].Sym {
			return out[i].Sym < out[j].Sym
		}
		return out[i].Mods < out[j].Mods
	})
	return out
}

// Resolve binds every entry of raw against km. Each token is either a
// modifier (OR'd into the mask) or the single key symbol of the entry.
// Later entries override earlier ones with the same resolved combination.
// Any failing entry fails the whole resolution.
func Resolve(raw RawConfig, km keyboard.Keymap) (*Config, error) {
	mappings := make(map[Combo][]action.Action, len(raw.Entries))
	for _, entry := range raw.Entries {
		combo, err := resolveEntry(entry, km)
		if err != nil {
			return nil, err
		}
		acts := make([]action.Action, len(entry.Actions))
		copy(acts, entry.Actions)
		mappings[combo] = acts
	}
	return &Config{mappings: mappings}, nil
}

func resolveEntry(entry Entry, km keyboard.Keymap) (Combo, error) {
	var (
		combo  Combo
		hasSym bool
	)
	for _, tok := range entry.Keys {
		if idx, ok := km.ModIndex(tok); ok {
			combo.Mods |= keyboard.Bit(idx)
			continue
		}
		sym, ok := km.KeysymFromName(tok)
		if !ok {
			return Combo{}, &ResolveError{Keys: entry.Keys, Token: tok, Line: entry.Line, Err: ErrUnknownToken}
		}
		if hasSym {
			return Combo{}, &ResolveError{Keys: entry.Keys, Token: tok, Line: entry.Line, Err: ErrMultipleKeySymbols}
		}
		combo.Sym = sym
		hasSym = true
	}
	if !hasSym {
		return Combo{}, &ResolveError{Keys: entry.Keys, Line: entry.Line, Err: ErrNoKeySymbol}
	}
	return combo, nil
}

func joinKeys(keys []string) string {
	return Entry{Keys: keys}.Combo()
}
