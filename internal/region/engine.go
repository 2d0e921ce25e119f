package region

// Engine owns the active region. Every mutation goes through Update, which
// drops candidates that fail Valid and keeps the previous region.
type Engine struct {
	scale  Scale
	active Region
}

// NewEngine starts with the full-surface region.
func NewEngine(scale Scale) *Engine {
	return &Engine{scale: scale, active: Full()}
}

// Active returns the current region.
func (e *Engine) Active() Region {
	return e.active
}

// Update replaces the active region with candidate if it is valid and
// reports whether it did.
func (e *Engine) Update(candidate Region) bool {
	if !Valid(candidate, e.scale) {
		return false
	}
	e.active = candidate
	return true
}

func (e *Engine) CutLeft(f float64) bool  { return e.Update(CutLeft(e.active, f)) }
func (e *Engine) CutRight(f float64) bool { return e.Update(CutRight(e.active, f)) }
func (e *Engine) CutUp(f float64) bool    { return e.Update(CutUp(e.active, f)) }
func (e *Engine) CutDown(f float64) bool  { return e.Update(CutDown(e.active, f)) }

func (e *Engine) MoveLeft(f float64) bool  { return e.Update(MoveLeft(e.active, f)) }
func (e *Engine) MoveRight(f float64) bool { return e.Update(MoveRight(e.active, f)) }
func (e *Engine) MoveUp(f float64) bool    { return e.Update(MoveUp(e.active, f)) }
func (e *Engine) MoveDown(f float64) bool  { return e.Update(MoveDown(e.active, f)) }

// CursorZoom converts the w×h device-pixel box to normalized size and
// centers it on the pointer position (px, py), given in normalized
// coordinates.
func (e *Engine) CursorZoom(w, h uint32, px, py float64) bool {
	nw, nh := e.scale.DeviceToUser(float64(w), float64(h))
	return e.Update(Zoom(nw, nh, px, py))
}
