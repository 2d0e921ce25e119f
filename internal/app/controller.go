// Package app owns the overlay's state and turns display events into
// region changes and pointer commands.
package app

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/keynav/internal/action"
	"github.com/1broseidon/keynav/internal/config"
	"github.com/1broseidon/keynav/internal/framebuffer"
	"github.com/1broseidon/keynav/internal/keyboard"
	"github.com/1broseidon/keynav/internal/pointer"
	"github.com/1broseidon/keynav/internal/region"
	"github.com/1broseidon/keynav/internal/render"
)

// Options configures a Controller.
type Options struct {
	Bindings    config.RawConfig
	Device      pointer.Device
	Framebuffer *framebuffer.Framebuffer // required
	Renderer    *render.Renderer
	Logger      *slog.Logger

	// IgnoreLockModifiers drops Lock and NumLock from the modifier mask
	// before looking up a binding.
	IgnoreLockModifiers bool
}

// Controller is the single owner of the keyboard state, the bindings, the
// active region and the framebuffer. All mutation happens through its
// Handle methods.
type Controller struct {
	logger   *slog.Logger
	binding  config.Binding
	state    *keyboard.State
	ignore   keyboard.ModMask
	ignoreLk bool

	fb       *framebuffer.Framebuffer
	renderer *render.Renderer
	engine   *region.Engine
	pointer  *pointer.Executor

	pointerX int
	pointerY int
	status   Status
}

func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.Default()
	}
	return &Controller{
		logger:   logger,
		binding:  config.Unresolved{Raw: opts.Bindings},
		ignoreLk: opts.IgnoreLockModifiers,
		fb:       opts.Framebuffer,
		renderer: renderer,
		engine:   region.NewEngine(opts.Framebuffer),
		pointer:  pointer.NewExecutor(opts.Device, logger),
	}
}

// Active returns the active region.
func (c *Controller) Active() region.Region {
	return c.engine.Active()
}

// Binding returns the current binding state.
func (c *Controller) Binding() config.Binding {
	return c.binding
}

// ShouldEnd reports whether an end action has run.
func (c *Controller) ShouldEnd() bool {
	return c.status == StatusEnd
}

// Handle dispatches ev. A non-nil error is fatal to the session.
func (c *Controller) Handle(ev Event) (Status, error) {
	switch e := ev.(type) {
	case LayoutEvent:
		if err := c.HandleLayout(e.Keymap); err != nil {
			return c.status, err
		}
	case ModifiersEvent:
		c.HandleModifiers(e.Depressed, e.Latched, e.Locked, e.Group)
	case KeyEvent:
		c.HandleKey(e.Code, e.Pressed)
	case PointerEnterEvent:
		c.HandlePointerEnter(e.X, e.Y)
	case ResizeEvent:
		if err := c.HandleResize(e.Width, e.Height); err != nil {
			return c.status, err
		}
	case ExposeEvent:
		c.commit()
	default:
		return c.status, fmt.Errorf("unknown event %T", ev)
	}
	return c.status, nil
}

// HandleLayout binds km. The first layout resolves the bindings; a
// resolution failure is returned and must end the session. Later layouts
// replace the keyboard state and keep the resolved bindings.
func (c *Controller) HandleLayout(km keyboard.Keymap) error {
	c.state = keyboard.NewState(km)
	c.ignore = 0
	if c.ignoreLk {
		c.ignore = keyboard.Bit(keyboard.ModIndexLock)
		if idx, ok := km.ModIndex("NumLock"); ok {
			c.ignore |= keyboard.Bit(idx)
		}
	}

	switch b := c.binding.(type) {
	case config.Unresolved:
		cfg, err := config.Resolve(b.Raw, km)
		if err != nil {
			c.logger.Error("failed to resolve bindings", "error", err)
			return fmt.Errorf("resolve bindings: %w", err)
		}
		c.binding = config.Resolved{Config: cfg}
		c.logger.Debug("bindings resolved", "combinations", cfg.Len())
	case config.Resolved:
		c.logger.Debug("keyboard layout replaced")
	}
	return nil
}

// HandleModifiers replaces the tracked modifier state. It never triggers
// a lookup.
func (c *Controller) HandleModifiers(depressed, latched, locked keyboard.ModMask, group uint32) {
	if c.state == nil {
		return
	}
	c.state.UpdateMask(depressed, latched, locked, group)
}

// HandleKey tracks a key transition and, on press, runs the actions bound
// to the resulting combination in order, then redraws.
func (c *Controller) HandleKey(code uint32, pressed bool) {
	if c.state == nil {
		if pressed {
			c.redraw()
		}
		return
	}

	sym := c.state.KeySym(code)
	dir := keyboard.Up
	if pressed {
		dir = keyboard.Down
	}
	c.state.UpdateKey(code, dir)
	if !pressed {
		return
	}

	mods := c.state.EffectiveMods() &^ c.ignore
	if resolved, ok := c.binding.(config.Resolved); ok {
		if acts, found := resolved.Config.Lookup(mods, sym); found {
			c.run(acts)
		} else {
			c.logger.Debug("no binding", "keysym", sym.Name(), "mods", mods.String())
		}
	}
	c.redraw()
}

// HandlePointerEnter records the pointer position used by cursorzoom.
func (c *Controller) HandlePointerEnter(x, y int) {
	c.pointerX, c.pointerY = x, y
}

// HandleResize rebinds the framebuffer to the new size and redraws.
func (c *Controller) HandleResize(width, height int) error {
	if width == c.fb.Width() && height == c.fb.Height() && c.fb.Bound() {
		return nil
	}
	if err := c.fb.Resize(width, height); err != nil {
		return fmt.Errorf("resize framebuffer: %w", err)
	}
	c.redraw()
	return nil
}

func (c *Controller) run(acts []action.Action) {
	for _, act := range acts {
		c.logger.Debug("executing action", "action", act.String())
		if err := c.execute(act); err != nil {
			c.logger.Error("action failed", "action", act.String(), "error", err)
			return
		}
	}
}

func (c *Controller) execute(act action.Action) error {
	f := act.FractionOrDefault()
	var moved bool
	switch act.Kind {
	case action.KindCutLeft:
		moved = c.engine.CutLeft(f)
	case action.KindCutRight:
		moved = c.engine.CutRight(f)
	case action.KindCutUp:
		moved = c.engine.CutUp(f)
	case action.KindCutDown:
		moved = c.engine.CutDown(f)
	case action.KindMoveLeft:
		moved = c.engine.MoveLeft(f)
	case action.KindMoveRight:
		moved = c.engine.MoveRight(f)
	case action.KindMoveUp:
		moved = c.engine.MoveUp(f)
	case action.KindMoveDown:
		moved = c.engine.MoveDown(f)
	case action.KindCursorZoom:
		px, py := c.pointerPosition()
		moved = c.engine.CursorZoom(act.Width, act.Height, px, py)
	case action.KindWarp:
		return c.pointer.Warp(c.engine.Active())
	case action.KindClick:
		return c.pointer.Click(c.engine.Active(), act.ButtonOrDefault())
	case action.KindDoubleClick:
		return c.pointer.DoubleClick(c.engine.Active(), act.ButtonOrDefault())
	case action.KindDrag:
		return c.pointer.Drag(c.engine.Active(), act.ButtonOrDefault())
	case action.KindEnd:
		c.status = StatusEnd
		return nil
	default:
		return fmt.Errorf("unsupported action %s", act.Kind)
	}
	if !moved {
		c.logger.Debug("region unchanged", "action", act.String(), "region", c.engine.Active().String())
	}
	return nil
}

func (c *Controller) pointerPosition() (float64, float64) {
	if c.fb.Width() == 0 || c.fb.Height() == 0 {
		return 0, 0
	}
	return float64(c.pointerX) / float64(c.fb.Width()), float64(c.pointerY) / float64(c.fb.Height())
}

func (c *Controller) redraw() {
	if !c.fb.Bound() {
		return
	}
	c.renderer.Draw(c.fb.Surface(), c.engine.Active())
	c.commit()
}

func (c *Controller) commit() {
	if !c.fb.Bound() {
		return
	}
	if err := c.fb.Commit(); err != nil {
		c.logger.Warn("failed to commit frame", "error", err)
	}
}
