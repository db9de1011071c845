// Package platform binds the cursor primitives to the operating system.
package platform

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the OS cannot read or synthesize pointer events.
var ErrUnavailable = errors.New("platform unavailable")

// Button is a CoreGraphics mouse button number.
type Button int

const (
	Left   Button = 0
	Right  Button = 1
	Middle Button = 2
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	default:
		return fmt.Sprintf("button%d", int(b))
	}
}

// ParseButton accepts the names printed by Button.String.
func ParseButton(s string) (Button, error) {
	switch s {
	case "left", "":
		return Left, nil
	case "right", "secondary":
		return Right, nil
	case "middle", "center":
		return Middle, nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "button%d", &n); err == nil && n >= 0 {
		return Button(n), nil
	}
	return Left, fmt.Errorf("unknown button %q", s)
}

// ScrollUnit selects how scroll amounts are interpreted.
type ScrollUnit int

const (
	Line ScrollUnit = iota
	Pixel
)

func (u ScrollUnit) String() string {
	if u == Pixel {
		return "pixel"
	}
	return "line"
}

func ParseScrollUnit(s string) (ScrollUnit, error) {
	switch s {
	case "line", "":
		return Line, nil
	case "pixel":
		return Pixel, nil
	}
	return Line, fmt.Errorf("unknown scroll unit %q", s)
}

// Device is the full set of pointer primitives a backend provides.
type Device interface {
	Position() (x, y float64, err error)
	Warp(x, y float64) error
	Press(b Button, x, y float64, clicks int) error
	Release(b Button, x, y float64, clicks int) error
	Drag(b Button, x, y float64) error
	Scroll(dy, dx int32, unit ScrollUnit) error
}

const (
	Native  = "native"
	Robotgo = "robotgo"
)

// New returns the backend registered under name. An empty name selects Native.
func New(name string) (Device, error) {
	if name == "" {
		name = Native
	}
	ctor, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: no %q backend in this build%s", ErrUnavailable, name, hint)
	}
	return ctor()
}

var backends = map[string]func() (Device, error){}

// Backends lists the backend names compiled into this build.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for _, n := range []string{Native, Robotgo} {
		if _, ok := backends[n]; ok {
			names = append(names, n)
		}
	}
	return names
}
