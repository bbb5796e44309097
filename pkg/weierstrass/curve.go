// Package weierstrass implements the group of points on a short
// Weierstrass curve y² = x³ + ax + b over a prime field, with affine
// point addition, doubling, and double-and-add scalar multiplication.
//
// The implementation favors clarity over speed and is not constant-time;
// it is meant for arbitrarily-parameterized curves, including tiny
// demonstration curves the production libraries cannot represent.
package weierstrass

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecdsa/pkg/field"
)

var (
	// ErrInvalidCurve is returned by NewCurve when 4a³ + 27b² ≡ 0 (mod p),
	// i.e. the curve is singular and does not form a group.
	ErrInvalidCurve = errors.New("weierstrass: singular curve parameters")

	// ErrPointNotOnCurve is returned when an operand point does not satisfy
	// the curve equation.
	ErrPointNotOnCurve = errors.New("weierstrass: point not on curve")

	// ErrInvalidScalar is returned by ScalarMult for nil or negative
	// multipliers.
	ErrInvalidScalar = errors.New("weierstrass: scalar must be non-negative")
)

// Curve is the short Weierstrass curve y² = x³ + Ax + B over F_P.
// A Curve is immutable after construction and safe for concurrent use.
type Curve struct {
	A, B, P *big.Int

	fp *field.Field
}

// NewCurve constructs the curve y² = x³ + ax + b over F_p. The
// coefficients are reduced mod p. Construction fails with ErrInvalidCurve
// when the discriminant condition 4a³ + 27b² ≠ 0 (mod p) is violated.
func NewCurve(a, b, p *big.Int) (*Curve, error) {
	fp, err := field.New(p)
	if err != nil {
		return nil, errors.Wrap(err, "weierstrass: invalid field modulus")
	}

	c := &Curve{
		A:  new(big.Int).Mod(a, fp.P),
		B:  new(big.Int).Mod(b, fp.P),
		P:  fp.P,
		fp: fp,
	}

	// 4a³ + 27b²
	a3 := fp.Mul(fp.Mul(c.A, c.A), c.A)
	disc := fp.Mul(big.NewInt(4), a3)
	b2 := fp.Mul(c.B, c.B)
	disc = fp.Add(disc, fp.Mul(big.NewInt(27), b2))
	if disc.Sign() == 0 {
		return nil, ErrInvalidCurve
	}

	return c, nil
}

// Field returns the underlying prime field.
func (c *Curve) Field() *field.Field {
	return c.fp
}

// Polynomial evaluates the right-hand side x³ + Ax + B mod P.
func (c *Curve) Polynomial(x *big.Int) *big.Int {
	rhs := c.fp.Mul(x, x)
	rhs = c.fp.Add(rhs, c.A)
	rhs = c.fp.Mul(rhs, x)
	return c.fp.Add(rhs, c.B)
}

// IsOnCurve reports whether p lies on the curve. The point at infinity is
// always on the curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	y2 := c.fp.Mul(p.y, p.y)
	return y2.Cmp(c.Polynomial(p.x)) == 0
}

// Negate returns -p, the reflection of p across the x-axis.
func (c *Curve) Negate(p Point) Point {
	if p.IsInfinity() {
		return Infinity()
	}
	return Point{x: new(big.Int).Set(p.x), y: c.fp.Neg(p.y)}
}

// Add returns p + q under the group law. It is total over all point pairs
// on the curve; operands off the curve fail with ErrPointNotOnCurve.
func (c *Curve) Add(p, q Point) (Point, error) {
	if !c.IsOnCurve(p) || !c.IsOnCurve(q) {
		return Point{}, ErrPointNotOnCurve
	}
	return c.add(p, q)
}

// Double returns 2p. Operands off the curve fail with ErrPointNotOnCurve.
func (c *Curve) Double(p Point) (Point, error) {
	if !c.IsOnCurve(p) {
		return Point{}, ErrPointNotOnCurve
	}
	return c.double(p)
}

// ScalarMult returns k*p computed by double-and-add over the bits of k,
// least significant first. k must be non-negative; k = 0 yields the point
// at infinity.
func (c *Curve) ScalarMult(p Point, k *big.Int) (Point, error) {
	if k == nil || k.Sign() < 0 {
		return Point{}, ErrInvalidScalar
	}
	if !c.IsOnCurve(p) {
		return Point{}, ErrPointNotOnCurve
	}

	result := Infinity()
	addend := p
	var err error

	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result, err = c.add(result, addend)
			if err != nil {
				return Point{}, err
			}
		}
		addend, err = c.double(addend)
		if err != nil {
			return Point{}, err
		}
	}
	return result, nil
}

// add implements the group law assuming both operands are on the curve.
//
// The mutual-inverse check must precede the equality check: two points
// sharing an x-coordinate are either inverses or equal, and only the
// remaining chord case may divide by x₂ - x₁.
func (c *Curve) add(p, q Point) (Point, error) {
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}

	if p.x.Cmp(q.x) == 0 && c.fp.Add(p.y, q.y).Sign() == 0 {
		return Infinity(), nil
	}
	if p.Equal(q) {
		return c.double(p)
	}

	// Chord slope s = (y₂ - y₁) / (x₂ - x₁).
	s, err := c.fp.Div(c.fp.Sub(q.y, p.y), c.fp.Sub(q.x, p.x))
	if err != nil {
		return Point{}, errors.Wrap(err, "weierstrass: chord slope")
	}

	x3 := c.fp.Sub(c.fp.Sub(c.fp.Mul(s, s), p.x), q.x)
	y3 := c.fp.Sub(c.fp.Mul(s, c.fp.Sub(p.x, x3)), p.y)
	return Point{x: x3, y: y3}, nil
}

// double implements point doubling assuming the operand is on the curve.
func (c *Curve) double(p Point) (Point, error) {
	if p.IsInfinity() {
		return Infinity(), nil
	}
	// A point with y = 0 has a vertical tangent and order 2.
	if p.y.Sign() == 0 {
		return Infinity(), nil
	}

	// Tangent slope s = (3x² + a) / (2y).
	num := c.fp.Mul(big.NewInt(3), c.fp.Mul(p.x, p.x))
	num = c.fp.Add(num, c.A)
	s, err := c.fp.Div(num, c.fp.Mul(big.NewInt(2), p.y))
	if err != nil {
		return Point{}, errors.Wrap(err, "weierstrass: tangent slope")
	}

	x3 := c.fp.Sub(c.fp.Sub(c.fp.Mul(s, s), p.x), p.x)
	y3 := c.fp.Sub(c.fp.Mul(s, c.fp.Sub(p.x, x3)), p.y)
	return Point{x: x3, y: y3}, nil
}
