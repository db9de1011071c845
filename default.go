package mouse

import (
	"context"
	"sync"
	"time"

	"github.com/vedantwpatil/mouse/internal/platform"
)

var (
	defaultOnce  sync.Once
	defaultMouse *Mouse
	defaultErr   error
)

// Default returns a Mouse on the native backend, creating it on first use.
func Default() (*Mouse, error) {
	defaultOnce.Do(func() {
		dev, err := platform.New(platform.Native)
		if err != nil {
			defaultErr = err
			return
		}
		defaultMouse = NewMouse(dev)
	})
	return defaultMouse, defaultErr
}

// Open returns a Mouse on the named backend ("native" or "robotgo").
func Open(backend string, opts ...Option) (*Mouse, error) {
	dev, err := platform.New(backend)
	if err != nil {
		return nil, err
	}
	return NewMouse(dev, opts...), nil
}

// CurrentPosition reads the cursor location through Default.
func CurrentPosition() (Point, error) {
	m, err := Default()
	if err != nil {
		return Point{}, err
	}
	return m.CurrentPosition()
}

// MoveTo moves the cursor through Default. See Mover.MoveTo.
func MoveTo(ctx context.Context, target Coercible, d time.Duration) error {
	m, err := Default()
	if err != nil {
		return err
	}
	return m.MoveTo(ctx, target, d)
}

// DragTo drags with the left button through Default. See Mouse.DragTo.
func DragTo(ctx context.Context, target Coercible, d time.Duration) error {
	m, err := Default()
	if err != nil {
		return err
	}
	return m.DragTo(ctx, target, d)
}

// Click clicks b at the current position through Default.
func Click(ctx context.Context, b Button) error {
	m, err := Default()
	if err != nil {
		return err
	}
	return m.Click(ctx, b)
}

// Scroll scrolls vertically through Default. See Mouse.Scroll.
func Scroll(ctx context.Context, amount int, unit ScrollUnit, d time.Duration) error {
	m, err := Default()
	if err != nil {
		return err
	}
	return m.Scroll(ctx, amount, unit, d)
}
