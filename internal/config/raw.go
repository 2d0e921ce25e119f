package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/1broseidon/keynav/internal/action"
)

// Entry is one bindings line: a key combination and the actions it runs.
type Entry struct {
	Keys    []string
	Actions []action.Action
	Line    int
}

// Combo returns the key tokens joined the way they are written.
func (e Entry) Combo() string {
	return strings.Join(e.Keys, "+")
}

// RawConfig is the parsed but unresolved bindings file, in declaration order.
type RawConfig struct {
	Entries []Entry
}

// Len returns the number of entries.
func (r RawConfig) Len() int {
	return len(r.Entries)
}

// Tokens returns every distinct key token in order of first use.
func (r RawConfig) Tokens() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.Entries {
		for _, tok := range e.Keys {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	return out
}

// ParseError reports a malformed bindings line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads the line-oriented bindings grammar:
//
//	# comment
//	KEY[+KEY...] verb [arg...][, verb [arg...]]*
//
// Parsing stops at the first malformed line.
func Parse(text string) (RawConfig, error) {
	var raw RawConfig
	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		split := strings.IndexFunc(line, unicode.IsSpace)
		if split < 0 {
			return RawConfig{}, &ParseError{Line: lineNum, Err: fmt.Errorf("expected a key combination followed by actions, got %q", line)}
		}

		keys, err := parseKeys(line[:split])
		if err != nil {
			return RawConfig{}, &ParseError{Line: lineNum, Err: err}
		}
		actions, err := action.ParseList(line[split:])
		if err != nil {
			return RawConfig{}, &ParseError{Line: lineNum, Err: err}
		}

		raw.Entries = append(raw.Entries, Entry{
			Keys:    keys,
			Actions: actions,
			Line:    lineNum,
		})
	}
	return raw, nil
}

func parseKeys(combo string) ([]string, error) {
	tokens := strings.Split(combo, "+")
	for _, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("empty key in combination %q (use \"plus\" for the + key)", combo)
		}
	}
	return tokens, nil
}
