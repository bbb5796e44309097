package benchmark

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/smallyu/go-ecdsa/pkg/ecdsa"
	"github.com/smallyu/go-ecdsa/pkg/weierstrass"
)

// setup builds the secp256k1 context and one keypair, shared by all
// benchmarks below.
func setup(b *testing.B) (*ecdsa.ECDSA, *ecdsa.KeyPair) {
	b.Helper()
	signer, err := ecdsa.Secp256k1()
	if err != nil {
		b.Fatalf("secp256k1 context failed: %v", err)
	}
	kp, err := signer.GenerateKeyPair(rand.Reader)
	if err != nil {
		b.Fatalf("keypair generation failed: %v", err)
	}
	return signer, kp
}

func BenchmarkScalarMult(b *testing.B) {
	signer, kp := setup(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := signer.Curve.ScalarMult(signer.Generator, kp.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateKeyPair(b *testing.B) {
	signer, _ := setup(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := signer.GenerateKeyPair(rand.Reader); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign(b *testing.B) {
	signer, kp := setup(b)
	msg := []byte("hello world")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := signer.Sign(rand.Reader, msg, kp.PrivateKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	signer, kp := setup(b)
	msg := []byte("hello world")
	sig, err := signer.Sign(rand.Reader, msg, kp.PrivateKey)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !signer.Verify(msg, sig, kp.PublicKey) {
			b.Fatal("signature did not verify")
		}
	}
}

// BenchmarkToyCurveSign isolates the protocol cost from big-number cost by
// running on 17-element field arithmetic.
func BenchmarkToyCurveSign(b *testing.B) {
	curve, err := weierstrass.NewCurve(big.NewInt(2), big.NewInt(2), big.NewInt(17))
	if err != nil {
		b.Fatal(err)
	}
	signer, err := ecdsa.New(curve, weierstrass.NewPoint(big.NewInt(5), big.NewInt(1)), big.NewInt(19))
	if err != nil {
		b.Fatal(err)
	}
	msg := []byte("hello world")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := signer.Sign(rand.Reader, msg, big.NewInt(7)); err != nil {
			b.Fatal(err)
		}
	}
}
