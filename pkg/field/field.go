// Package field implements arbitrary-precision modular arithmetic over a
// fixed prime modulus. It is the arithmetic layer underneath the curve
// group law in pkg/weierstrass.
package field

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidModulus is returned by New when the modulus is less than 2.
	ErrInvalidModulus = errors.New("field: modulus must be at least 2")

	// ErrDivisionByZero is returned by Inv and Div when the divisor reduces
	// to the zero residue, which has no multiplicative inverse.
	ErrDivisionByZero = errors.New("field: division by zero")
)

var two = big.NewInt(2)

// Field provides modular arithmetic over the residues [0, P-1].
//
// P is assumed prime; the inverse computation relies on Fermat's little
// theorem and silently produces wrong results for composite moduli.
// A Field is stateless and safe for concurrent use.
type Field struct {
	P *big.Int
}

// New returns a Field over the given modulus. The modulus is copied, so
// later mutation of p by the caller does not affect the field.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Cmp(two) < 0 {
		return nil, ErrInvalidModulus
	}
	return &Field{P: new(big.Int).Set(p)}, nil
}

// Add returns (x + y) mod P. Inputs need not be reduced.
func (f *Field) Add(x, y *big.Int) *big.Int {
	z := new(big.Int).Add(x, y)
	return z.Mod(z, f.P)
}

// Sub returns (x - y) mod P. The result is always non-negative.
func (f *Field) Sub(x, y *big.Int) *big.Int {
	z := new(big.Int).Sub(x, y)
	return z.Mod(z, f.P)
}

// Mul returns (x * y) mod P.
func (f *Field) Mul(x, y *big.Int) *big.Int {
	z := new(big.Int).Mul(x, y)
	return z.Mod(z, f.P)
}

// Neg returns the additive inverse (P - x) mod P, with Neg(0) = 0.
func (f *Field) Neg(x *big.Int) *big.Int {
	z := new(big.Int).Neg(x)
	return z.Mod(z, f.P)
}

// Exp returns x^e mod P using square-and-multiply exponentiation,
// O(log e) multiplications.
func (f *Field) Exp(x, e *big.Int) *big.Int {
	return new(big.Int).Exp(x, e, f.P)
}

// Inv returns the multiplicative inverse x^(P-2) mod P per Fermat's little
// theorem. Fails with ErrDivisionByZero when x reduces to zero.
func (f *Field) Inv(x *big.Int) (*big.Int, error) {
	r := new(big.Int).Mod(x, f.P)
	if r.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	e := new(big.Int).Sub(f.P, two)
	return f.Exp(r, e), nil
}

// Div returns x * y^-1 mod P. Fails with ErrDivisionByZero when y reduces
// to zero.
func (f *Field) Div(x, y *big.Int) (*big.Int, error) {
	yInv, err := f.Inv(y)
	if err != nil {
		return nil, err
	}
	return f.Mul(x, yInv), nil
}
