// Command ecdsa is a small CLI over the library's secp256k1 preset:
// generate keypairs, sign messages, and verify signatures, with keys and
// signatures carried as hex strings.
package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecdsa/pkg/ecdsa"
	"github.com/smallyu/go-ecdsa/pkg/weierstrass"
)

func main() {
	cmd := rootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecdsa",
		Short:         "ECDSA keygen, signing, and verification on secp256k1 parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(keygenCommand())
	cmd.AddCommand(signCommand())
	cmd.AddCommand(verifyCommand())
	cmd.AddCommand(demoCommand())
	return cmd
}

func keygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a keypair and print it as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := ecdsa.Secp256k1()
			if err != nil {
				return err
			}
			kp, err := signer.GenerateKeyPair(rand.Reader)
			if err != nil {
				return err
			}
			fmt.Printf("private: %s\n", kp.PrivateKey.Text(16))
			fmt.Printf("public:  %s:%s\n", kp.PublicKey.X().Text(16), kp.PublicKey.Y().Text(16))
			return nil
		},
	}
}

func signCommand() *cobra.Command {
	var keyHex, msg string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with a hex private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := ecdsa.Secp256k1()
			if err != nil {
				return err
			}
			d, ok := new(big.Int).SetString(keyHex, 16)
			if !ok {
				return errors.Errorf("invalid private key hex %q", keyHex)
			}
			sig, err := signer.Sign(rand.Reader, []byte(msg), d)
			if err != nil {
				return err
			}
			fmt.Printf("signature: %s:%s\n", sig.R.Text(16), sig.S.Text(16))
			return nil
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "private key (hex)")
	cmd.Flags().StringVar(&msg, "msg", "", "message to sign")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("msg")
	return cmd
}

func verifyCommand() *cobra.Command {
	var pubHex, sigHex, msg string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature against a public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := ecdsa.Secp256k1()
			if err != nil {
				return err
			}
			pubX, pubY, err := splitHexPair(pubHex, "public key")
			if err != nil {
				return err
			}
			r, s, err := splitHexPair(sigHex, "signature")
			if err != nil {
				return err
			}

			pub := weierstrass.NewPoint(pubX, pubY)
			valid := signer.Verify([]byte(msg), &ecdsa.Signature{R: r, S: s}, pub)
			fmt.Printf("valid: %t\n", valid)
			if !valid {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pubHex, "pub", "", "public key as x:y (hex)")
	cmd.Flags().StringVar(&sigHex, "sig", "", "signature as r:s (hex)")
	cmd.Flags().StringVar(&msg, "msg", "", "message that was signed")
	cmd.MarkFlagRequired("pub")
	cmd.MarkFlagRequired("sig")
	cmd.MarkFlagRequired("msg")
	return cmd
}

func demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through keygen, signing, and verification on a tiny curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

// runDemo signs and verifies on the 17-element demonstration curve, where
// every intermediate value is small enough to read.
func runDemo(out io.Writer) error {
	curve, err := weierstrass.NewCurve(big.NewInt(2), big.NewInt(2), big.NewInt(17))
	if err != nil {
		return err
	}
	generator := weierstrass.NewPoint(big.NewInt(5), big.NewInt(1))
	order := big.NewInt(19)

	fmt.Fprintln(out, "Curve parameters:")
	fmt.Fprintf(out, "  y² = x³ + %sx + %s (mod %s)\n", curve.A, curve.B, curve.P)
	fmt.Fprintf(out, "  Generator: %s, order: %s\n\n", generator, order)

	signer, err := ecdsa.New(curve, generator, order)
	if err != nil {
		return err
	}

	keypair, err := signer.GenerateKeyPair(rand.Reader)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Private key: %s\n", keypair.PrivateKey)
	fmt.Fprintf(out, "Public key:  %s\n\n", keypair.PublicKey)

	message := []byte("Hello, ECDSA!")
	signature, err := signer.Sign(rand.Reader, message, keypair.PrivateKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Message:   %q\n", message)
	fmt.Fprintf(out, "Signature: r = %s, s = %s\n\n", signature.R, signature.S)

	fmt.Fprintf(out, "Verify with correct message: %t\n",
		signer.Verify(message, signature, keypair.PublicKey))
	fmt.Fprintf(out, "Verify with wrong message:   %t\n",
		signer.Verify([]byte("Wrong message!"), signature, keypair.PublicKey))

	fmt.Fprintln(out, "\nDemo complete")
	return nil
}

// splitHexPair parses "aaaa:bbbb" into two big integers.
func splitHexPair(value, what string) (*big.Int, *big.Int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return nil, nil, errors.Errorf("invalid %s: want two hex values separated by ':'", what)
	}
	first, ok := new(big.Int).SetString(parts[0], 16)
	if !ok {
		return nil, nil, errors.Errorf("invalid %s: bad hex %q", what, parts[0])
	}
	second, ok := new(big.Int).SetString(parts[1], 16)
	if !ok {
		return nil, nil, errors.Errorf("invalid %s: bad hex %q", what, parts[1])
	}
	return first, second, nil
}
