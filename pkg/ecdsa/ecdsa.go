// Package ecdsa implements ECDSA key generation, signing, and verification
// over a caller-supplied short Weierstrass curve, generator, and group
// order. The arithmetic is the generic affine implementation in
// pkg/weierstrass rather than a fixed production curve, so the same code
// path works for tiny demonstration parameters and for secp256k1-sized
// ones (see Secp256k1).
//
// This implementation is for study and correctness demonstration: it is
// not constant-time and does not defend against timing side channels.
package ecdsa

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecdsa/pkg/field"
	"github.com/smallyu/go-ecdsa/pkg/weierstrass"
)

var (
	// ErrInvalidOrder is returned by New when the group order is nil or
	// less than 2.
	ErrInvalidOrder = errors.New("ecdsa: group order must be at least 2")

	// ErrInvalidScalar is returned when a private key is outside [1, n-1].
	ErrInvalidScalar = errors.New("ecdsa: scalar out of range [1, n-1]")

	// ErrNilRandomSource is returned when a nil random source is injected.
	// Randomness is an explicit capability here; callers wanting system
	// randomness pass crypto/rand.Reader themselves.
	ErrNilRandomSource = errors.New("ecdsa: nil random source")

	// ErrSignatureGeneration is returned when the sign retry loop exceeds
	// its defensive cap. With honest randomness the per-iteration failure
	// probability is about 1/n, so hitting the cap indicates a broken
	// random source rather than bad luck.
	ErrSignatureGeneration = errors.New("ecdsa: signature generation failed")
)

// maxSignAttempts bounds the nonce retry loop in Sign.
const maxSignAttempts = 64

// KeyPair holds a private scalar d in [1, n-1] and the public point
// Q = d*G. The private key must never leave the holder.
type KeyPair struct {
	PrivateKey *big.Int
	PublicKey  weierstrass.Point
}

// Signature is an ECDSA signature (r, s) with both components in [1, n-1].
type Signature struct {
	R *big.Int
	S *big.Int
}

// ECDSA is a signing context over a fixed (curve, generator, order)
// triple. It is immutable after construction; concurrent Sign and Verify
// calls are safe as long as any shared random source is itself safe for
// concurrent use (crypto/rand.Reader is).
type ECDSA struct {
	Curve     *weierstrass.Curve
	Generator weierstrass.Point
	N         *big.Int

	// fn provides arithmetic modulo the group order for the scalar side
	// of signing and verification.
	fn *field.Field
}

// New returns an ECDSA context. The caller is responsible for the
// generator lying on the curve and having the stated order n; neither is
// verified here.
func New(curve *weierstrass.Curve, generator weierstrass.Point, order *big.Int) (*ECDSA, error) {
	fn, err := field.New(order)
	if err != nil {
		return nil, ErrInvalidOrder
	}
	return &ECDSA{
		Curve:     curve,
		Generator: generator,
		N:         fn.P,
		fn:        fn,
	}, nil
}

// GenerateKeyPair samples a private key uniformly from [1, n-1] using the
// given random source and derives the public point Q = d*G.
func (e *ECDSA) GenerateKeyPair(random io.Reader) (*KeyPair, error) {
	d, err := randScalar(random, e.N)
	if err != nil {
		return nil, errors.Wrap(err, "ecdsa: sampling private key")
	}
	Q, err := e.Curve.ScalarMult(e.Generator, d)
	if err != nil {
		return nil, errors.Wrap(err, "ecdsa: deriving public key")
	}
	return &KeyPair{PrivateKey: d, PublicKey: Q}, nil
}

// HashToScalar computes the SHA-256 digest of message and reduces it
// modulo the group order. Sign and Verify use this same reduction, so a
// caller comparing detached hashes must as well.
func (e *ECDSA) HashToScalar(message []byte) *big.Int {
	h := sha256.Sum256(message)
	z := new(big.Int).SetBytes(h[:])
	return z.Mod(z, e.N)
}

// Sign produces an ECDSA signature of message under the private key,
// drawing the per-signature nonce from random.
//
// The nonce k is sampled fresh each attempt; attempts where R = k*G
// degenerates to the identity, r = 0, or s = 0 are retried. Reusing a
// nonce across two signatures with the same key leaks the key, which is
// why the nonce never leaves this function.
func (e *ECDSA) Sign(random io.Reader, message []byte, privateKey *big.Int) (*Signature, error) {
	if privateKey == nil || privateKey.Sign() <= 0 || privateKey.Cmp(e.N) >= 0 {
		return nil, ErrInvalidScalar
	}

	z := e.HashToScalar(message)

	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		k, err := randScalar(random, e.N)
		if err != nil {
			return nil, errors.Wrap(err, "ecdsa: sampling nonce")
		}

		R, err := e.Curve.ScalarMult(e.Generator, k)
		if err != nil {
			return nil, errors.Wrap(err, "ecdsa: computing R = k*G")
		}
		if R.IsInfinity() {
			continue
		}

		r := new(big.Int).Mod(R.X(), e.N)
		if r.Sign() == 0 {
			continue
		}

		// s = k⁻¹ (z + r·d) mod n. ModInverse is the extended-Euclid
		// inverse, so this stays correct for composite orders as well.
		kInv := new(big.Int).ModInverse(k, e.N)
		if kInv == nil {
			continue
		}
		s := e.fn.Mul(kInv, e.fn.Add(z, e.fn.Mul(r, privateKey)))
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s}, nil
	}

	return nil, ErrSignatureGeneration
}

// Verify reports whether signature is a valid signature of message under
// the public key. Malformed signatures, tampered messages, and wrong keys
// all yield false; Verify never returns an error.
func (e *ECDSA) Verify(message []byte, signature *Signature, publicKey weierstrass.Point) bool {
	if signature == nil || signature.R == nil || signature.S == nil {
		return false
	}
	if signature.R.Sign() <= 0 || signature.R.Cmp(e.N) >= 0 {
		return false
	}
	if signature.S.Sign() <= 0 || signature.S.Cmp(e.N) >= 0 {
		return false
	}

	z := e.HashToScalar(message)

	w := new(big.Int).ModInverse(signature.S, e.N)
	if w == nil {
		return false
	}
	u1 := e.fn.Mul(z, w)
	u2 := e.fn.Mul(signature.R, w)

	p1, err := e.Curve.ScalarMult(e.Generator, u1)
	if err != nil {
		return false
	}
	p2, err := e.Curve.ScalarMult(publicKey, u2)
	if err != nil {
		return false
	}
	P, err := e.Curve.Add(p1, p2)
	if err != nil || P.IsInfinity() {
		return false
	}

	// For a signature produced by Sign, u₁ + u₂·d ≡ k (mod n), so P is
	// k*G and its x-coordinate reduces to r.
	x := new(big.Int).Mod(P.X(), e.N)
	return x.Cmp(signature.R) == 0
}

// randScalar samples a uniform integer in [1, n-1] from random. Pass
// crypto/rand.Reader unless a deterministic source is wanted for tests.
func randScalar(random io.Reader, n *big.Int) (*big.Int, error) {
	if random == nil {
		return nil, ErrNilRandomSource
	}
	max := new(big.Int).Sub(n, big.NewInt(1))
	k, err := rand.Int(random, max)
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}
