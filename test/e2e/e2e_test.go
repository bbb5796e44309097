package e2e

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/smallyu/go-ecdsa/pkg/ecdsa"
	"github.com/smallyu/go-ecdsa/pkg/weierstrass"
)

// TestToyCurveFlow walks the whole stack on the 17-element demonstration
// curve: construction, keypair, signing, verification, and the rejection
// paths a caller hits in practice.
func TestToyCurveFlow(t *testing.T) {
	curve, err := weierstrass.NewCurve(big.NewInt(2), big.NewInt(2), big.NewInt(17))
	if err != nil {
		t.Fatalf("curve construction failed: %v", err)
	}
	generator := weierstrass.NewPoint(big.NewInt(5), big.NewInt(1))
	order := big.NewInt(19)

	// The generator must have the stated order.
	identity, err := curve.ScalarMult(generator, order)
	if err != nil {
		t.Fatalf("ScalarMult failed: %v", err)
	}
	if !identity.IsInfinity() {
		t.Fatalf("n*G = %s, want the identity", identity)
	}

	signer, err := ecdsa.New(curve, generator, order)
	if err != nil {
		t.Fatalf("context construction failed: %v", err)
	}

	// Fixed keys make the scenario reproducible: d = 7 signs, d = 3 is the
	// wrong key.
	q7, err := curve.ScalarMult(generator, big.NewInt(7))
	if err != nil {
		t.Fatalf("deriving public key failed: %v", err)
	}
	q3, err := curve.ScalarMult(generator, big.NewInt(3))
	if err != nil {
		t.Fatalf("deriving public key failed: %v", err)
	}

	message := []byte("hello world")
	signature, err := signer.Sign(rand.Reader, message, big.NewInt(7))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if !signer.Verify(message, signature, q7) {
		t.Error("signature did not verify under the signer's public key")
	}
	if signer.Verify(message, signature, q3) {
		t.Error("signature verified under the wrong public key")
	}
	if signer.Verify([]byte("hello worlx"), signature, q7) {
		t.Error("signature verified for a tampered message")
	}
}

// TestSecp256k1Flow runs the same story at a cryptographic parameter size.
func TestSecp256k1Flow(t *testing.T) {
	signer, err := ecdsa.Secp256k1()
	if err != nil {
		t.Fatalf("secp256k1 context failed: %v", err)
	}

	alice, err := signer.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("keypair generation failed: %v", err)
	}
	bob, err := signer.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("keypair generation failed: %v", err)
	}

	message := []byte("transfer 10 coins to bob")
	signature, err := signer.Sign(rand.Reader, message, alice.PrivateKey)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if !signer.Verify(message, signature, alice.PublicKey) {
		t.Error("signature did not verify under alice's key")
	}
	if signer.Verify(message, signature, bob.PublicKey) {
		t.Error("alice's signature verified under bob's key")
	}

	tampered := []byte("transfer 99 coins to bob")
	if signer.Verify(tampered, signature, alice.PublicKey) {
		t.Error("signature verified for a tampered message")
	}
}
