package ecdsa

import (
	"crypto/rand"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecp256k1Params(t *testing.T) {
	e, err := Secp256k1()
	require.NoError(t, err)

	params := secp256k1.S256().Params()
	assert.Equal(t, params.N, e.N)
	assert.Equal(t, params.P, e.Curve.P)
	assert.True(t, e.Curve.IsOnCurve(e.Generator))
}

// TestSecp256k1ScalarMultCrossCheck pits the generic double-and-add
// against the optimized secp256k1 implementation.
func TestSecp256k1ScalarMultCrossCheck(t *testing.T) {
	e, err := Secp256k1()
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		k, err := randScalar(rand.Reader, e.N)
		require.NoError(t, err)

		got, err := e.Curve.ScalarMult(e.Generator, k)
		require.NoError(t, err)
		require.False(t, got.IsInfinity())

		wantX, wantY := secp256k1.S256().ScalarBaseMult(k.Bytes())
		assert.Equal(t, wantX, got.X(), "x mismatch for k = %s", k)
		assert.Equal(t, wantY, got.Y(), "y mismatch for k = %s", k)
	}
}

func TestSecp256k1SignVerify(t *testing.T) {
	e, err := Secp256k1()
	require.NoError(t, err)

	kp, err := e.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("hello world")
	sig, err := e.Sign(rand.Reader, msg, kp.PrivateKey)
	require.NoError(t, err)

	assert.True(t, e.Verify(msg, sig, kp.PublicKey))
	assert.False(t, e.Verify([]byte("hello worlD"), sig, kp.PublicKey))
}

// Two signatures over the same message use independent nonces and so
// differ, while both remain valid. The nonce space here is ~2^256, so a
// collision would itself be a bug.
func TestSecp256k1SignaturesAreNondeterministic(t *testing.T) {
	e, err := Secp256k1()
	require.NoError(t, err)

	kp, err := e.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("hello world")
	sig1, err := e.Sign(rand.Reader, msg, kp.PrivateKey)
	require.NoError(t, err)
	sig2, err := e.Sign(rand.Reader, msg, kp.PrivateKey)
	require.NoError(t, err)

	assert.NotEqual(t, 0, sig1.R.Cmp(sig2.R), "independent nonces should yield distinct r")
	assert.True(t, e.Verify(msg, sig1, kp.PublicKey))
	assert.True(t, e.Verify(msg, sig2, kp.PublicKey))
}
