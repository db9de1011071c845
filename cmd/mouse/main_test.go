package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/mouse"
	"github.com/vedantwpatil/mouse/internal/mousetest"
)

func run(t *testing.T, dev *mousetest.Device, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var gotBackend string
	app := NewApplication(func(backend string, opts ...mouse.Option) (*mouse.Mouse, error) {
		gotBackend = backend
		return mouse.NewMouse(dev, opts...), nil
	})
	c := app.CLI()
	var out bytes.Buffer
	c.Writer = &out
	c.ErrWriter = &out

	argv := append([]string{"mouse", "--log-level", "error"}, args...)
	err := c.RunContext(context.Background(), separateNegatives(c, argv))
	if err == nil && len(args) > 0 && args[0] != "--help" {
		assert.NotEmpty(t, gotBackend)
	}
	return out.String(), err
}

func TestPositionCommand(t *testing.T) {
	out, err := run(t, mousetest.NewDevice(3, 5), "position")
	require.NoError(t, err)
	assert.Equal(t, "<Point x=3 y=5>\n", out)
}

func TestMoveCommand(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	out, err := run(t, dev, "move", "120", "45.5")
	require.NoError(t, err)
	assert.Equal(t, "<Point x=120 y=45.5>\n", out)
	assert.Len(t, dev.Ops("warp"), 1)
}

func TestMoveCommandWithDuration(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	_, err := run(t, dev, "move", "--duration", "50ms", "90", "90")
	require.NoError(t, err)

	warps := dev.Ops("warp")
	require.Greater(t, len(warps), 1)
	assert.Equal(t, 90.0, warps[len(warps)-1].X)
}

func TestMoveCommandBadArgs(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)

	_, err := run(t, dev, "move", "1")
	assert.ErrorIs(t, err, mouse.ErrInvalidCoercion)

	_, err = run(t, dev, "move", "one", "2")
	assert.ErrorIs(t, err, mouse.ErrInvalidCoercion)

	assert.Zero(t, dev.Moves())
}

func TestMoveCommandNegativeCoordinates(t *testing.T) {
	for _, args := range [][]string{
		{"move", "-1920", "40"},
		{"move", "--", "-1920", "40"},
		{"move", "--duration", "0s", "-1920", "40"},
	} {
		dev := mousetest.NewDevice(0, 0)
		out, err := run(t, dev, args...)
		require.NoError(t, err, args)
		assert.Equal(t, "<Point x=-1920 y=40>\n", out, args)
	}
}

func TestClickCommandNegativeCoordinates(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	_, err := run(t, dev, "click", "-5", "-5")
	require.NoError(t, err)

	presses := dev.Ops("press")
	require.Len(t, presses, 1)
	assert.Equal(t, -5.0, presses[0].X)
	assert.Equal(t, -5.0, presses[0].Y)
}

func TestSeparateNegatives(t *testing.T) {
	c := NewApplication(nil).CLI()
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"mouse", "scroll", "-3"}, []string{"mouse", "scroll", "--", "-3"}},
		{[]string{"mouse", "-c", "x.toml", "move", "-1.5", "2"}, []string{"mouse", "-c", "x.toml", "move", "--", "-1.5", "2"}},
		{[]string{"mouse", "move", "--duration", "-1s", "1", "2"}, []string{"mouse", "move", "--duration", "-1s", "1", "2"}},
		{[]string{"mouse", "move", "--", "-1", "2"}, []string{"mouse", "move", "--", "-1", "2"}},
		{[]string{"mouse", "click", "5", "-5"}, []string{"mouse", "click", "5", "-5"}},
		{[]string{"mouse", "--count=-2"}, []string{"mouse", "--count=-2"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, separateNegatives(c, tt.args))
	}
}

func TestDragCommand(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	_, err := run(t, dev, "drag", "--duration", "0s", "10", "20")
	require.NoError(t, err)

	var ops []string
	for _, c := range dev.Ops("press", "drag", "release") {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []string{"press", "drag", "release"}, ops)
}

func TestClickCommand(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	_, err := run(t, dev, "click", "--button", "right", "7", "8")
	require.NoError(t, err)

	presses := dev.Ops("press")
	require.Len(t, presses, 1)
	assert.Equal(t, mouse.Right, presses[0].Button)
	assert.Equal(t, 7.0, presses[0].X)
}

func TestClickCommandCount(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	_, err := run(t, dev, "click", "--count", "2")
	require.NoError(t, err)
	assert.Len(t, dev.Ops("press"), 2)

	_, err = run(t, dev, "click", "--count", "2", "--button", "right")
	assert.ErrorIs(t, err, mouse.ErrInvalidArgument)
}

func TestScrollCommand(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	_, err := run(t, dev, "scroll", "--duration", "0s", "--unit", "pixel", "--horizontal", "12")
	require.NoError(t, err)

	scrolls := dev.Ops("scroll")
	require.Len(t, scrolls, 1)
	assert.Equal(t, int32(12), scrolls[0].DX)
	assert.Equal(t, mouse.Pixel, scrolls[0].Unit)
}

func TestScrollCommandNegativeAmount(t *testing.T) {
	for _, args := range [][]string{
		{"scroll", "--duration", "0s", "-3"},
		{"scroll", "--duration", "0s", "--", "-3"},
	} {
		dev := mousetest.NewDevice(0, 0)
		_, err := run(t, dev, args...)
		require.NoError(t, err, args)

		scrolls := dev.Ops("scroll")
		require.Len(t, scrolls, 1)
		assert.Equal(t, int32(-3), scrolls[0].DY)
	}
}

func TestUnknownBackendFlag(t *testing.T) {
	_, err := run(t, mousetest.NewDevice(0, 0), "--backend", "xdotool", "position")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xdotool"))
}
