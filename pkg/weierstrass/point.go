package weierstrass

import (
	"fmt"
	"math/big"
)

// Point is an immutable curve point: either an affine coordinate pair or
// the point at infinity (the group identity). The zero value is the point
// at infinity.
//
// Points are plain values; copying one is cheap and the coordinates are
// never mutated after construction, so points may be shared freely across
// goroutines.
type Point struct {
	x, y *big.Int
	// inf distinguishes the identity from any coordinate pair, so (0, 0)
	// remains a usable affine point.
	inf bool
}

// NewPoint returns the affine point (x, y). The coordinates are copied.
func NewPoint(x, y *big.Int) Point {
	return Point{
		x: new(big.Int).Set(x),
		y: new(big.Int).Set(y),
	}
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{inf: true}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.inf || p.x == nil
}

// X returns a copy of the x-coordinate. It must not be called on the point
// at infinity, which carries no coordinates.
func (p Point) X() *big.Int {
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate. It must not be called on the point
// at infinity.
func (p Point) Y() *big.Int {
	return new(big.Int).Set(p.y)
}

// Equal reports structural equality: infinity equals only infinity, and
// coordinate points are equal iff both components match.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// String renders the point for logs and demo output.
func (p Point) String() string {
	if p.IsInfinity() {
		return "Infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
