// Package mouse reads and moves the system mouse cursor, either instantly or
// as a smooth linear motion spread over a duration.
package mouse

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultRate is the number of intermediate cursor updates per second used
// for timed motion.
const DefaultRate = 90

// Platform is the pair of OS primitives the Mover is built on.
type Platform interface {
	Position() (x, y float64, err error)
	Warp(x, y float64) error
}

type settings struct {
	rate float64
	hold time.Duration
	log  logrus.FieldLogger
}

// Option configures a Mover or Mouse.
type Option func(*settings)

// WithRate sets the number of steps per second for timed operations.
// Non-positive rates are ignored.
func WithRate(stepsPerSecond float64) Option {
	return func(s *settings) {
		if stepsPerSecond > 0 && !math.IsInf(stepsPerSecond, 0) {
			s.rate = stepsPerSecond
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHold sets how long a button stays down during a click.
func WithHold(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.hold = d
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		rate: DefaultRate,
		hold: DefaultHold,
		log:  logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Mover positions the cursor. It keeps no state between calls and does not
// serialize concurrent moves.
type Mover struct {
	platform Platform
	rate     float64
	log      logrus.FieldLogger
}

func New(p Platform, opts ...Option) *Mover {
	s := newSettings(opts)
	return &Mover{platform: p, rate: s.rate, log: s.log}
}

// CurrentPosition reads the cursor location from the OS.
func (m *Mover) CurrentPosition() (Point, error) {
	x, y, err := m.platform.Position()
	if err != nil {
		return Point{}, platformError("read cursor position", err)
	}
	return Point{X: x, Y: y}, nil
}

// MoveTo moves the cursor to target. A zero duration warps straight there;
// a positive one moves in a straight line, one step per tick, and ends
// exactly on target. Invalid input is rejected before the cursor moves.
// Cancelling ctx stops the motion between steps.
func (m *Mover) MoveTo(ctx context.Context, target Coercible, d time.Duration) error {
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

	if d == 0 {
		m.log.WithField("target", to).Debug("warping cursor")
		return m.warp(to)
	}

	from, err := m.CurrentPosition()
	if err != nil {
		return err
	}
	steps, interval := m.plan(d)
	m.log.WithFields(logrus.Fields{
		"from":     from,
		"to":       to,
		"duration": d,
		"steps":    steps,
	}).Debug("moving cursor")

	return m.pace(ctx, steps, interval, func(i int) error {
		return m.warp(from.Lerp(to, fraction(i, steps)))
	})
}

func (m *Mover) warp(p Point) error {
	if err := m.platform.Warp(p.X, p.Y); err != nil {
		return platformError(fmt.Sprintf("warp to %v", p), err)
	}
	return nil
}

// plan splits d into steps at the configured rate. d must be positive.
func (m *Mover) plan(d time.Duration) (int, time.Duration) {
	steps := int(math.Round(d.Seconds() * m.rate))
	if steps < 1 {
		steps = 1
	}
	interval := d / time.Duration(steps)
	if interval <= 0 {
		interval = 1
	}
	return steps, interval
}

// pace calls step for i = 1..steps, waiting for a tick of interval after
// each call. Ticks are measured from the first step, so the time spent in
// step does not accumulate; late ticks are not caught up.
func (m *Mover) pace(ctx context.Context, steps int, interval time.Duration, step func(i int) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= steps; i++ {
		if err := step(i); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// fraction is i/steps, pinned to exactly 1 on the last step.
func fraction(i, steps int) float64 {
	if i >= steps {
		return 1
	}
	return float64(i) / float64(steps)
}

const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func checkDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: negative duration %s", ErrInvalidArgument, d)
	}
	return nil
}

// Seconds converts a fractional number of seconds to a Duration, rejecting
// negative, NaN and infinite values.
func Seconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) || s < 0 || s >= maxSeconds {
		return 0, fmt.Errorf("%w: duration %v seconds", ErrInvalidArgument, s)
	}
	return time.Duration(s * float64(time.Second)), nil
}

func platformError(op string, err error) error {
	if errors.Is(err, ErrPlatformUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPlatformUnavailable, err)
}
