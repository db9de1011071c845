package mouse

import "fmt"

// Pair is an ordered list whose first two elements are x and y.
type Pair []float64

func (s Pair) ToPoint() (Point, error) {
	return Coerce([]float64(s))
}

// Coerce builds a Point from the first two elements of s. Extra elements are
// ignored; fewer than two is an error.
func Coerce[T Number](s []T) (Point, error) {
	if len(s) < 2 {
		return Point{}, fmt.Errorf("%w: need 2 elements, got %d", ErrInvalidCoercion, len(s))
	}
	return NewPoint(s[0], s[1]), nil
}

func toPoint(target Coercible) (Point, error) {
	if target == nil {
		return Point{}, fmt.Errorf("%w: nil target", ErrInvalidCoercion)
	}
	return target.ToPoint()
}
