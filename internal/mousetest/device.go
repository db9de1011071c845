// Package mousetest provides a recording pointer device for tests.
package mousetest

import (
	"fmt"
	"sync"

	"github.com/vedantwpatil/mouse/internal/platform"
)

// ErrInjected is the failure returned once FailAfter calls have succeeded.
var ErrInjected = fmt.Errorf("%w: injected failure", platform.ErrUnavailable)

// Call is one primitive invocation seen by a Device.
type Call struct {
	Op     string
	X, Y   float64
	Button platform.Button
	Clicks int
	DY, DX int32
	Unit   platform.ScrollUnit
}

// Device records every call and keeps a cursor position that warps and
// drags update. It is safe for concurrent use.
type Device struct {
	mu    sync.Mutex
	x, y  float64
	calls []Call

	// FailAfter makes every call after the first FailAfter calls return
	// ErrInjected. Zero or negative disables failures.
	FailAfter int
	// FailPosition makes Position fail regardless of FailAfter.
	FailPosition bool
}

// NewDevice returns a Device whose cursor starts at (x, y).
func NewDevice(x, y float64) *Device {
	return &Device{x: x, y: y}
}

func (d *Device) record(c Call) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailAfter > 0 && len(d.calls) >= d.FailAfter {
		return ErrInjected
	}
	d.calls = append(d.calls, c)
	switch c.Op {
	case "warp", "drag", "press", "release":
		d.x, d.y = c.X, c.Y
	}
	return nil
}

func (d *Device) Position() (float64, float64, error) {
	d.mu.Lock()
	fail := d.FailPosition
	d.mu.Unlock()
	if fail {
		return 0, 0, ErrInjected
	}
	if err := d.record(Call{Op: "position"}); err != nil {
		return 0, 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y, nil
}

func (d *Device) Warp(x, y float64) error {
	return d.record(Call{Op: "warp", X: x, Y: y})
}

func (d *Device) Press(b platform.Button, x, y float64, clicks int) error {
	return d.record(Call{Op: "press", X: x, Y: y, Button: b, Clicks: clicks})
}

func (d *Device) Release(b platform.Button, x, y float64, clicks int) error {
	return d.record(Call{Op: "release", X: x, Y: y, Button: b, Clicks: clicks})
}

func (d *Device) Drag(b platform.Button, x, y float64) error {
	return d.record(Call{Op: "drag", X: x, Y: y, Button: b})
}

func (d *Device) Scroll(dy, dx int32, unit platform.ScrollUnit) error {
	return d.record(Call{Op: "scroll", DY: dy, DX: dx, Unit: unit})
}

// Calls returns a copy of the recorded calls.
func (d *Device) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Ops returns the recorded calls filtered to the given operations.
func (d *Device) Ops(ops ...string) []Call {
	var out []Call
	for _, c := range d.Calls() {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Moves returns the number of calls that change the OS state.
func (d *Device) Moves() int {
	return len(d.Ops("warp", "drag", "press", "release", "scroll"))
}

// SetPosition moves the cursor without recording a call, as another
// process would.
func (d *Device) SetPosition(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.x, d.y = x, y
}

var _ platform.Device = (*Device)(nil)
