//go:build js && wasm

package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-ecdsa/pkg/ecdsa"
	"github.com/smallyu/go-ecdsa/pkg/weierstrass"
)

// signer is the shared secp256k1 context; it is immutable, so concurrent
// JS calls are safe.
var signer *ecdsa.ECDSA

func main() {
	c := make(chan struct{}, 0)

	var err error
	signer, err = ecdsa.Secp256k1()
	if err != nil {
		panic(err)
	}

	fmt.Println("Go ECDSA WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoECDSA", map[string]interface{}{
		"KeyGen": js.FuncOf(KeyGen),
		"Sign":   js.FuncOf(Sign),
		"Verify": js.FuncOf(Verify),
	})

	<-c
}

// KeyGen generates a keypair.
// Returns:
// {privateKey, publicKeyX, publicKeyY} as hex strings, or throws error.
func KeyGen(this js.Value, args []js.Value) interface{} {
	kp, err := signer.GenerateKeyPair(rand.Reader)
	if err != nil {
		return jsError(err.Error())
	}
	return map[string]interface{}{
		"privateKey": kp.PrivateKey.Text(16),
		"publicKeyX": kp.PublicKey.X().Text(16),
		"publicKeyY": kp.PublicKey.Y().Text(16),
	}
}

// Sign signs a message.
// Arguments:
// 0: private key (hex string)
// 1: message (string)
// Returns:
// {r, s} as hex strings, or throws error.
func Sign(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return jsError("Sign expects (privateKeyHex, message)")
	}
	d, ok := new(big.Int).SetString(args[0].String(), 16)
	if !ok {
		return jsError("invalid private key hex")
	}

	sig, err := signer.Sign(rand.Reader, []byte(args[1].String()), d)
	if err != nil {
		return jsError(err.Error())
	}
	return map[string]interface{}{
		"r": sig.R.Text(16),
		"s": sig.S.Text(16),
	}
}

// Verify checks a signature.
// Arguments:
// 0: public key x (hex string)
// 1: public key y (hex string)
// 2: signature r (hex string)
// 3: signature s (hex string)
// 4: message (string)
// Returns:
// bool, or throws error on malformed hex.
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 5 {
		return jsError("Verify expects (pubXHex, pubYHex, rHex, sHex, message)")
	}

	values := make([]*big.Int, 4)
	for i := 0; i < 4; i++ {
		v, ok := new(big.Int).SetString(args[i].String(), 16)
		if !ok {
			return jsError("invalid hex argument")
		}
		values[i] = v
	}

	pub := weierstrass.NewPoint(values[0], values[1])
	sig := &ecdsa.Signature{R: values[2], S: values[3]}
	return signer.Verify([]byte(args[4].String()), sig, pub)
}

func jsError(msg string) interface{} {
	return js.Global().Get("Error").New(msg)
}
