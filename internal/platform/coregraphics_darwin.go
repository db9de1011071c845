//go:build darwin && cgo

package platform

// Synthetic mouse events posted through Core Graphics.

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

// mouse_position reads the cursor location from a fresh null event.
static int mouse_position(double *x, double *y) {
    CGEventRef event = CGEventCreate(NULL);
    if (event == NULL) {
        return -1;
    }
    CGPoint point = CGEventGetLocation(event);
    CFRelease(event);
    *x = point.x;
    *y = point.y;
    return 0;
}

static CGEventType mouse_event_type(int button, int phase) {
    // phase: 0 down, 1 up, 2 dragged
    switch (button) {
    case kCGMouseButtonLeft:
        return phase == 0 ? kCGEventLeftMouseDown : phase == 1 ? kCGEventLeftMouseUp : kCGEventLeftMouseDragged;
    case kCGMouseButtonRight:
        return phase == 0 ? kCGEventRightMouseDown : phase == 1 ? kCGEventRightMouseUp : kCGEventRightMouseDragged;
    default:
        return phase == 0 ? kCGEventOtherMouseDown : phase == 1 ? kCGEventOtherMouseUp : kCGEventOtherMouseDragged;
    }
}

static int mouse_post(CGEventType type, int button, double x, double y, int64_t clicks) {
    CGEventRef event = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), (CGMouseButton)button);
    if (event == NULL) {
        return -1;
    }
    if (clicks > 0) {
        CGEventSetIntegerValueField(event, kCGMouseEventClickState, clicks);
    }
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}

static int mouse_move(double x, double y) {
    return mouse_post(kCGEventMouseMoved, kCGMouseButtonLeft, x, y, 0);
}

static int mouse_button(int button, int phase, double x, double y, int64_t clicks) {
    return mouse_post(mouse_event_type(button, phase), button, x, y, clicks);
}

static int mouse_scroll(int pixel, int32_t dy, int32_t dx) {
    CGScrollEventUnit unit = pixel ? kCGScrollEventUnitPixel : kCGScrollEventUnitLine;
    CGEventRef event = CGEventCreateScrollWheelEvent(NULL, unit, 2, dy, dx);
    if (event == NULL) {
        return -1;
    }
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}
*/
import "C"

import "fmt"

const hint = ""

const (
	phaseDown = 0
	phaseUp   = 1
	phaseDrag = 2
)

func init() {
	backends[Native] = func() (Device, error) { return coreGraphics{}, nil }
}

// coreGraphics talks to the HID event tap directly.
type coreGraphics struct{}

func (coreGraphics) Position() (float64, float64, error) {
	var x, y C.double
	if C.mouse_position(&x, &y) != 0 {
		return 0, 0, fmt.Errorf("%w: CGEventCreate returned NULL", ErrUnavailable)
	}
	return float64(x), float64(y), nil
}

func (coreGraphics) Warp(x, y float64) error {
	if C.mouse_move(C.double(x), C.double(y)) != 0 {
		return fmt.Errorf("%w: cannot create mouse moved event at (%g, %g)", ErrUnavailable, x, y)
	}
	return nil
}

func (cg coreGraphics) Press(b Button, x, y float64, clicks int) error {
	return cg.button(b, phaseDown, x, y, clicks)
}

func (cg coreGraphics) Release(b Button, x, y float64, clicks int) error {
	return cg.button(b, phaseUp, x, y, clicks)
}

func (cg coreGraphics) Drag(b Button, x, y float64) error {
	return cg.button(b, phaseDrag, x, y, 0)
}

func (coreGraphics) button(b Button, phase int, x, y float64, clicks int) error {
	if C.mouse_button(C.int(b), C.int(phase), C.double(x), C.double(y), C.int64_t(clicks)) != 0 {
		return fmt.Errorf("%w: cannot create %s event at (%g, %g)", ErrUnavailable, b, x, y)
	}
	return nil
}

func (coreGraphics) Scroll(dy, dx int32, unit ScrollUnit) error {
	pixel := C.int(0)
	if unit == Pixel {
		pixel = 1
	}
	if C.mouse_scroll(pixel, C.int32_t(dy), C.int32_t(dx)) != 0 {
		return fmt.Errorf("%w: cannot create scroll event", ErrUnavailable)
	}
	return nil
}
