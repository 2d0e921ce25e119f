package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the root coordinate (x, y) is on m.
func (m Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	lookup := func(out randr.Output) (string, error) {
		info, err := randr.GetOutputInfo(c.XUtil.Conn(), out, resources.ConfigTimestamp).Reply()
		if err != nil {
			return "", err
		}
		return string(info.Name), nil
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if m, ok := crtcMonitor(i, crtcInfo, lookup); ok {
			monitors = append(monitors, m)
		}
	}

	return monitors, nil
}

// crtcMonitor converts an active CRTC into a Monitor. CRTCs without a size
// or without outputs are disabled.
func crtcMonitor(id int, info *randr.GetCrtcInfoReply, lookup func(randr.Output) (string, error)) (Monitor, bool) {
	if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
		return Monitor{}, false
	}
	return Monitor{
		ID:     id,
		Name:   outputName(id, info.Outputs, lookup),
		X:      int(info.X),
		Y:      int(info.Y),
		Width:  int(info.Width),
		Height: int(info.Height),
	}, true
}

// outputName names a monitor after its first output, or by index when the
// output cannot be queried.
func outputName(id int, outputs []randr.Output, lookup func(randr.Output) (string, error)) string {
	if len(outputs) > 0 {
		if name, err := lookup(outputs[0]); err == nil {
			return name
		}
	}
	return fmt.Sprintf("Monitor%d", id)
}

// OverlayGeometry returns the area the overlay covers. With perMonitor set
// it is the monitor under the pointer; otherwise, or when RandR reports no
// monitors, the whole screen.
func (c *Connection) OverlayGeometry(perMonitor bool) Monitor {
	w, h := c.ScreenSize()
	screen := Monitor{Name: "screen", Width: w, Height: h}
	if !perMonitor {
		return screen
	}

	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		return screen
	}
	px, py, err := c.PointerPosition()
	if err != nil {
		return monitors[0]
	}
	return monitorAt(monitors, px, py)
}

// monitorAt returns the monitor containing (x, y), or the first monitor.
func monitorAt(monitors []Monitor, x, y int) Monitor {
	for _, mon := range monitors {
		if mon.Contains(x, y) {
			return mon
		}
	}
	return monitors[0]
}
