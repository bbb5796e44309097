package ecdsa

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/smallyu/go-ecdsa/pkg/weierstrass"
)

// Secp256k1 returns an ECDSA context over the secp256k1 parameters
// (y² = x³ + 7, a = 0), sourced from the decred secp256k1 package but
// running on the generic arithmetic in this module. Useful when a
// realistic parameter size is wanted without switching implementations.
func Secp256k1() (*ECDSA, error) {
	params := secp256k1.S256().Params()

	curve, err := weierstrass.NewCurve(big.NewInt(0), params.B, params.P)
	if err != nil {
		return nil, errors.Wrap(err, "ecdsa: building secp256k1 curve")
	}
	g := weierstrass.NewPoint(params.Gx, params.Gy)

	return New(curve, g, params.N)
}
