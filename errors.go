package mouse

import (
	"errors"

	"github.com/vedantwpatil/mouse/internal/platform"
)

var (
	// ErrInvalidArgument reports a caller error such as a negative duration.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCoercion reports a target that cannot be turned into a Point.
	ErrInvalidCoercion = errors.New("invalid coercion to point")
	// ErrPlatformUnavailable reports a failed OS call. Motion already issued
	// before the failure is not rolled back.
	ErrPlatformUnavailable = platform.ErrUnavailable
)
