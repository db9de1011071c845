//go:build darwin && cgo

package platform

import (
	"fmt"
	"math"

	"github.com/go-vgo/robotgo"
)

func init() {
	backends[Robotgo] = func() (Device, error) { return robot{}, nil }
}

// robot drives the cursor through robotgo. Coordinates are rounded to whole
// points and click state is not forwarded. Scroll amounts are always pixels
// since robotgo posts pixel scroll events, so Line is treated as Pixel.
type robot struct{}

func (robot) Position() (float64, float64, error) {
	x, y := robotgo.Location()
	return float64(x), float64(y), nil
}

func (robot) Warp(x, y float64) error {
	robotgo.Move(round(x), round(y))
	return nil
}

func (r robot) Press(b Button, x, y float64, _ int) error {
	return r.toggle(b, "down", x, y)
}

func (r robot) Release(b Button, x, y float64, _ int) error {
	return r.toggle(b, "up", x, y)
}

// Drag moves while the button toggled by Press is still held.
func (robot) Drag(_ Button, x, y float64) error {
	robotgo.Move(round(x), round(y))
	return nil
}

// Scroll ignores unit; see the type comment.
func (robot) Scroll(dy, dx int32, _ ScrollUnit) error {
	robotgo.Scroll(int(dx), int(dy))
	return nil
}

func (robot) toggle(b Button, dir string, x, y float64) error {
	name, err := robotButton(b)
	if err != nil {
		return err
	}
	robotgo.Move(round(x), round(y))
	if err := robotgo.Toggle(name, dir); err != nil {
		return fmt.Errorf("%w: robotgo toggle %s %s: %v", ErrUnavailable, name, dir, err)
	}
	return nil
}

func robotButton(b Button) (string, error) {
	switch b {
	case Left:
		return "left", nil
	case Right:
		return "right", nil
	case Middle:
		return "center", nil
	}
	return "", fmt.Errorf("%w: robotgo has no %s", ErrUnavailable, b)
}

func round(v float64) int {
	return int(math.Round(v))
}
