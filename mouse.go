package mouse

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vedantwpatil/mouse/internal/platform"
)

type (
	Button     = platform.Button
	ScrollUnit = platform.ScrollUnit
)

const (
	Left   = platform.Left
	Right  = platform.Right
	Middle = platform.Middle

	Line  = platform.Line
	Pixel = platform.Pixel
)

// DefaultHold is how long ClickDown keeps a button pressed.
const DefaultHold = 100 * time.Millisecond

// Device extends Platform with button and scroll wheel events.
type Device = platform.Device

// Mouse adds dragging, clicking and scrolling to a Mover.
type Mouse struct {
	*Mover
	dev  Device
	hold time.Duration
}

func NewMouse(dev Device, opts ...Option) *Mouse {
	s := newSettings(opts)
	return &Mouse{
		Mover: &Mover{platform: dev, rate: s.rate, log: s.log},
		dev:   dev,
		hold:  s.hold,
	}
}

// DragTo presses the left button at the current position, drags to target
// over d and releases. The button is released even when the drag fails or
// ctx is cancelled.
func (m *Mouse) DragTo(ctx context.Context, target Coercible, d time.Duration) error {
	to, err := toPoint(target)
	if err != nil {
		return err
	}
	if err := checkDuration(d); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	if err := m.press(Left, from, 1); err != nil {
		return err
	}

	last := from
	drag := func(p Point) error {
		if err := m.dev.Drag(Left, p.X, p.Y); err != nil {
			return platformError(fmt.Sprintf("drag to %v", p), err)
		}
		last = p
		return nil
	}

	var dragErr error
	if d == 0 {
		dragErr = drag(to)
	} else {
		steps, interval := m.plan(d)
		m.log.WithFields(logrus.Fields{
			"from":     from,
			"to":       to,
			"duration": d,
			"steps":    steps,
		}).Debug("dragging cursor")
		dragErr = m.pace(ctx, steps, interval, func(i int) error {
			return drag(from.Lerp(to, fraction(i, steps)))
		})
	}
	return errors.Join(dragErr, m.release(Left, last, 1))
}

// ClickDown presses b at the current position and holds it for the
// configured hold time.
func (m *Mouse) ClickDown(ctx context.Context, b Button) error {
	at, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	if err := m.press(b, at, 1); err != nil {
		return err
	}
	return sleep(ctx, m.hold)
}

// ClickDownAt warps to target, then presses and holds b there.
func (m *Mouse) ClickDownAt(ctx context.Context, b Button, target Coercible) error {
	at, err := m.jump(ctx, target)
	if err != nil {
		return err
	}
	if err := m.press(b, at, 1); err != nil {
		return err
	}
	return sleep(ctx, m.hold)
}

// ClickUp releases b at the current position.
func (m *Mouse) ClickUp(b Button) error {
	at, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	return m.release(b, at, 1)
}

// ClickUpAt warps to target and releases b there.
func (m *Mouse) ClickUpAt(ctx context.Context, b Button, target Coercible) error {
	at, err := m.jump(ctx, target)
	if err != nil {
		return err
	}
	return m.release(b, at, 1)
}

// Click presses and releases b at the current position.
func (m *Mouse) Click(ctx context.Context, b Button) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	at, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	return m.clickAt(ctx, b, at)
}

// ClickAt warps to target and clicks b there.
func (m *Mouse) ClickAt(ctx context.Context, b Button, target Coercible) error {
	at, err := m.jump(ctx, target)
	if err != nil {
		return err
	}
	return m.clickAt(ctx, b, at)
}

// jump coerces target and warps there unless ctx is already done.
func (m *Mouse) jump(ctx context.Context, target Coercible) (Point, error) {
	at, err := toPoint(target)
	if err != nil {
		return Point{}, err
	}
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}
	if err := m.warp(at); err != nil {
		return Point{}, err
	}
	return at, nil
}

func (m *Mouse) clickAt(ctx context.Context, b Button, at Point) error {
	if err := m.press(b, at, 1); err != nil {
		return err
	}
	held := sleep(ctx, m.hold)
	return errors.Join(held, m.release(b, at, 1))
}

// MultiClick posts one left press and release carrying a click count of n.
func (m *Mouse) MultiClick(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: click count %d", ErrInvalidArgument, n)
	}
	return m.clickSeries(n)
}

// DoubleClick posts a single click followed by a double click, since some
// applications expect to see the lower count first.
func (m *Mouse) DoubleClick() error {
	return m.clickSeries(1, 2)
}

// TripleClick posts click counts 1, 2 and 3.
func (m *Mouse) TripleClick() error {
	return m.clickSeries(1, 2, 3)
}

func (m *Mouse) clickSeries(counts ...int) error {
	at, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	for _, n := range counts {
		if err := m.press(Left, at, n); err != nil {
			return err
		}
		if err := m.release(Left, at, n); err != nil {
			return err
		}
	}
	return nil
}

// Scroll scrolls vertically by amount units, spread over d. Positive amounts
// scroll up. The events always add up to exactly amount.
func (m *Mouse) Scroll(ctx context.Context, amount int, unit ScrollUnit, d time.Duration) error {
	return m.scroll(ctx, amount, unit, d, false)
}

// HorizontalScroll is Scroll along the x axis. Positive amounts scroll left.
func (m *Mouse) HorizontalScroll(ctx context.Context, amount int, unit ScrollUnit, d time.Duration) error {
	return m.scroll(ctx, amount, unit, d, true)
}

func (m *Mouse) scroll(ctx context.Context, amount int, unit ScrollUnit, d time.Duration, horizontal bool) error {
	if err := checkDuration(d); err != nil {
		return err
	}
	if amount > math.MaxInt32 || amount < math.MinInt32 {
		return fmt.Errorf("%w: scroll amount %d out of range", ErrInvalidArgument, amount)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	emitted := 0
	post := func(i, steps int) error {
		want := int(math.Round(float64(amount) * fraction(i, steps)))
		delta := int32(want - emitted)
		emitted = want
		if delta == 0 {
			return nil
		}
		var err error
		if horizontal {
			err = m.dev.Scroll(0, delta, unit)
		} else {
			err = m.dev.Scroll(delta, 0, unit)
		}
		if err != nil {
			return platformError("scroll", err)
		}
		return nil
	}

	if d == 0 {
		return post(1, 1)
	}
	steps, interval := m.plan(d)
	m.log.WithFields(logrus.Fields{
		"amount":     amount,
		"unit":       unit,
		"horizontal": horizontal,
		"steps":      steps,
	}).Debug("scrolling")
	return m.pace(ctx, steps, interval, func(i int) error {
		return post(i, steps)
	})
}

func (m *Mouse) press(b Button, at Point, clicks int) error {
	if err := m.dev.Press(b, at.X, at.Y, clicks); err != nil {
		return platformError(fmt.Sprintf("press %s at %v", b, at), err)
	}
	return nil
}

func (m *Mouse) release(b Button, at Point, clicks int) error {
	if err := m.dev.Release(b, at.X, at.Y, clicks); err != nil {
		return platformError(fmt.Sprintf("release %s at %v", b, at), err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
