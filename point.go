package mouse

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Number is any real number type a coordinate can be given as.
type Number interface {
	constraints.Integer | constraints.Float
}

// Point is a location in the platform's global screen coordinates.
// Coordinates may be negative on multi-display setups.
type Point struct {
	X float64
	Y float64
}

// NewPoint builds a Point from any numeric type.
func NewPoint[T Number](x, y T) Point {
	return Point{X: float64(x), Y: float64(y)}
}

// Coercible is anything that can stand in for a Point.
type Coercible interface {
	ToPoint() (Point, error)
}

// ToPoint returns p itself.
func (p Point) ToPoint() (Point, error) {
	return p, nil
}

func (p Point) String() string {
	return fmt.Sprintf("<Point x=%s y=%s>", formatCoord(p.X), formatCoord(p.Y))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp returns the point fraction of the way from p to q. A fraction of 1
// returns q exactly.
func (p Point) Lerp(q Point, fraction float64) Point {
	if fraction >= 1 {
		return q
	}
	return p.Add(q.Sub(p).Scale(fraction))
}

func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Hypot(d.X, d.Y)
}
