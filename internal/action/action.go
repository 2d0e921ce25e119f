package action

import (
	"fmt"
	"strconv"
	"strings"
)

// Default parameters applied when an action spec omits its argument.
const (
	DefaultCutFraction  = 0.5
	DefaultMoveFraction = 1.0
)

// Kind identifies one member of the closed action set.
type Kind int

const (
	KindCutLeft Kind = iota
	KindCutRight
	KindCutUp
	KindCutDown
	KindMoveLeft
	KindMoveRight
	KindMoveUp
	KindMoveDown
	KindCursorZoom
	KindWarp
	KindClick
	KindDoubleClick
	KindDrag
	KindEnd
)

var kindVerbs = map[Kind]string{
	KindCutLeft:     "cut-left",
	KindCutRight:    "cut-right",
	KindCutUp:       "cut-up",
	KindCutDown:     "cut-down",
	KindMoveLeft:    "move-left",
	KindMoveRight:   "move-right",
	KindMoveUp:      "move-up",
	KindMoveDown:    "move-down",
	KindCursorZoom:  "cursorzoom",
	KindWarp:        "warp",
	KindClick:       "click",
	KindDoubleClick: "doubleclick",
	KindDrag:        "drag",
	KindEnd:         "end",
}

var verbKinds = func() map[string]Kind {
	out := make(map[string]Kind, len(kindVerbs))
	for k, v := range kindVerbs {
		out[v] = k
	}
	return out
}()

// String returns the config verb for the kind.
func (k Kind) String() string {
	if v, ok := kindVerbs[k]; ok {
		return v
	}
	return "unknown"
}

// IsCut reports whether the kind narrows the region.
func (k Kind) IsCut() bool {
	return k >= KindCutLeft && k <= KindCutDown
}

// IsMove reports whether the kind shifts the region.
func (k Kind) IsMove() bool {
	return k >= KindMoveLeft && k <= KindMoveDown
}

// MouseButton is one of the pointer buttons an action can drive.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle

	// ButtonCount is the number of supported buttons.
	ButtonCount = 3
)

// Linux input event codes (BTN_LEFT, BTN_RIGHT, BTN_MIDDLE).
const (
	codeLeft   = 0x110
	codeRight  = 0x111
	codeMiddle = 0x112
)

// Code returns the evdev button code sent to the pointer device.
func (b MouseButton) Code() uint32 {
	switch b {
	case ButtonRight:
		return codeRight
	case ButtonMiddle:
		return codeMiddle
	default:
		return codeLeft
	}
}

// String returns the lowercase button name.
func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ParseButton accepts X-style button numbers (1 left, 2 middle, 3 right) or
// button names.
func ParseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "1", "left":
		return ButtonLeft, nil
	case "2", "middle":
		return ButtonMiddle, nil
	case "3", "right":
		return ButtonRight, nil
	default:
		return ButtonLeft, fmt.Errorf("unknown mouse button %q (want 1, 2, 3, left, middle or right)", s)
	}
}

// Action is a single command bound to a key combination.
//
// Fraction is nil when a cut or move spec omits its argument; Button is nil
// for click and doubleclick without an argument. Width and Height are only
// meaningful for KindCursorZoom and are device pixels.
type Action struct {
	Kind     Kind
	Fraction *float64
	Button   *MouseButton
	Width    uint32
	Height   uint32
}

// FractionOrDefault returns the explicit fraction or the default for the kind.
func (a Action) FractionOrDefault() float64 {
	if a.Fraction != nil {
		return *a.Fraction
	}
	if a.Kind.IsMove() {
		return DefaultMoveFraction
	}
	return DefaultCutFraction
}

// ButtonOrDefault returns the explicit button or ButtonLeft.
func (a Action) ButtonOrDefault() MouseButton {
	if a.Button != nil {
		return *a.Button
	}
	return ButtonLeft
}

// String renders the action back into config syntax.
func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Kind.String())
	switch {
	case a.Kind.IsCut(), a.Kind.IsMove():
		if a.Fraction != nil {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(*a.Fraction, 'g', -1, 64))
		}
	case a.Kind == KindCursorZoom:
		fmt.Fprintf(&b, " %d %d", a.Width, a.Height)
	case a.Kind == KindClick, a.Kind == KindDoubleClick, a.Kind == KindDrag:
		if a.Button != nil {
			b.WriteByte(' ')
			b.WriteString(a.Button.String())
		}
	}
	return b.String()
}

// Parse parses one action spec: a verb optionally followed by
// whitespace-separated arguments, e.g. "cut-right 0.25" or "cursorzoom 100 100".
func Parse(spec string) (Action, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("empty action")
	}
	verb, args := fields[0], fields[1:]
	kind, ok := verbKinds[strings.ToLower(verb)]
	if !ok {
		return Action{}, fmt.Errorf("did not recognize %q as an action", verb)
	}

	act := Action{Kind: kind}
	switch {
	case kind.IsCut(), kind.IsMove():
		if len(args) > 1 {
			return Action{}, fmt.Errorf("%s takes at most one argument, got %d", verb, len(args))
		}
		if len(args) == 1 {
			f, err := parseFraction(args[0], kind.IsCut())
			if err != nil {
				return Action{}, fmt.Errorf("%s: %w", verb, err)
			}
			act.Fraction = &f
		}

	case kind == KindCursorZoom:
		if len(args) != 2 {
			return Action{}, fmt.Errorf("%s takes width and height, got %d arguments", verb, len(args))
		}
		w, err := parseDimension(args[0])
		if err != nil {
			return Action{}, fmt.Errorf("%s width: %w", verb, err)
		}
		h, err := parseDimension(args[1])
		if err != nil {
			return Action{}, fmt.Errorf("%s height: %w", verb, err)
		}
		act.Width, act.Height = w, h

	case kind == KindClick, kind == KindDoubleClick:
		if len(args) > 1 {
			return Action{}, fmt.Errorf("%s takes at most one argument, got %d", verb, len(args))
		}
		if len(args) == 1 {
			btn, err := ParseButton(args[0])
			if err != nil {
				return Action{}, fmt.Errorf("%s: %w", verb, err)
			}
			act.Button = &btn
		}

	case kind == KindDrag:
		if len(args) != 1 {
			return Action{}, fmt.Errorf("%s takes exactly one button argument, got %d", verb, len(args))
		}
		btn, err := ParseButton(args[0])
		if err != nil {
			return Action{}, fmt.Errorf("%s: %w", verb, err)
		}
		act.Button = &btn

	default:
		if len(args) != 0 {
			return Action{}, fmt.Errorf("%s takes no arguments, got %d", verb, len(args))
		}
	}
	return act, nil
}

// ParseList parses a comma-separated list of action specs. The list must be
// nonempty and no element may be blank.
func ParseList(raw string) ([]Action, error) {
	parts := strings.Split(raw, ",")
	out := make([]Action, 0, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("action %d is empty", i+1)
		}
		act, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, act)
	}
	return out, nil
}

func parseFraction(s string, isCut bool) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	if !(f > 0) {
		return 0, fmt.Errorf("fraction %q must be greater than 0", s)
	}
	if isCut && f > 1 {
		return 0, fmt.Errorf("cut fraction %q must not exceed 1", s)
	}
	return f, nil
}

func parseDimension(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid pixel size %q", s)
	}
	return uint32(n), nil
}
