/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

const (
	pkixPublicKeyType  = "PUBLIC KEY"
	pkcs1PublicKeyType = "RSA PUBLIC KEY"
)

// PublicKeyVerifier makes signature verification using the public key.
type PublicKeyVerifier struct {
	exactType      string
	singleVerifier SignatureVerifier
}

// PublicKeyVerifierOpt is the PublicKeyVerifier functional option.
type PublicKeyVerifierOpt func(opts *PublicKeyVerifier)

// NewPublicKeyVerifier creates a new PublicKeyVerifier based on single signature algorithm.
func NewPublicKeyVerifier(sigAlg SignatureVerifier, opts ...PublicKeyVerifierOpt) *PublicKeyVerifier {
	v := &PublicKeyVerifier{
		singleVerifier: sigAlg,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// WithExactPublicKeyType option is used to check the type of the PublicKey.
func WithExactPublicKeyType(keyType string) PublicKeyVerifierOpt {
	return func(opts *PublicKeyVerifier) {
		opts.exactType = keyType
	}
}

// Verify verifies the signature.
func (pkv *PublicKeyVerifier) Verify(pubKey *api.PublicKey, digest, sig []byte) error {
	if pkv.exactType != "" && pubKey.Type != pkv.exactType {
		return fmt.Errorf("%w: a type of public key is not '%s'", signature.ErrKeyFormat, pkv.exactType)
	}

	if pubKey.Format != pkv.singleVerifier.KeyFormat() {
		return fmt.Errorf("%w: verifier does not match %s key", signature.ErrKeyFormat, pubKey.Format)
	}

	return pkv.singleVerifier.Verify(pubKey, digest, sig)
}

// SignatureVerifier makes signature verification of a certain algorithm.
type SignatureVerifier interface {
	KeyFormat() signature.KeyFormat

	Verify(pubKey *api.PublicKey, digest, signature []byte) error
}

// RSASignatureVerifier verifies RSASSA-PKCS1-v1_5 signatures of SHA-256 digests taking a PEM public key
// (PKIX or PKCS#1) as input.
type RSASignatureVerifier struct{}

// NewRSASignatureVerifier creates a new RSASignatureVerifier.
func NewRSASignatureVerifier() *RSASignatureVerifier {
	return &RSASignatureVerifier{}
}

// KeyFormat returns signature.KeyFormatPEMRSA.
func (sv RSASignatureVerifier) KeyFormat() signature.KeyFormat {
	return signature.KeyFormatPEMRSA
}

// Verify verifies the signature.
func (sv RSASignatureVerifier) Verify(key *api.PublicKey, digest, sig []byte) error {
	pubKey, err := ParseRSAPublicKey(key.Value)
	if err != nil {
		return err
	}

	if err := rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, digest, sig); err != nil {
		return fmt.Errorf("%w: %w", api.ErrInvalidSignature, err)
	}

	return nil
}

// ParseRSAPublicKey parses a PEM encoded PKIX or PKCS#1 RSA public key.
func ParseRSAPublicKey(publicKeyPem []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(publicKeyPem)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", signature.ErrKeyFormat)
	}

	switch block.Type {
	case pkixPublicKeyType:
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse PKIX public key: %w", signature.ErrKeyFormat, err)
		}

		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA public key", signature.ErrKeyFormat)
		}

		return rsaPub, nil
	case pkcs1PublicKeyType:
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse PKCS#1 public key: %w", signature.ErrKeyFormat, err)
		}

		return pub, nil
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", signature.ErrKeyFormat, block.Type)
	}
}

// KoblitzSignatureVerifier verifies Bitcoin signed message signatures taking a P2PKH address as input.
// The public key is recovered from the compact signature and its address compared to the expected one.
type KoblitzSignatureVerifier struct{}

// NewKoblitzSignatureVerifier creates a new KoblitzSignatureVerifier.
func NewKoblitzSignatureVerifier() *KoblitzSignatureVerifier {
	return &KoblitzSignatureVerifier{}
}

// KeyFormat returns signature.KeyFormatWIFSecp256k1.
func (sv KoblitzSignatureVerifier) KeyFormat() signature.KeyFormat {
	return signature.KeyFormatWIFSecp256k1
}

// Verify verifies the signature of a Bitcoin message hash.
func (sv KoblitzSignatureVerifier) Verify(key *api.PublicKey, digest, sig []byte) error {
	expected, err := decodeP2PKH(string(key.Value))
	if err != nil {
		return err
	}

	pub, compressed, err := btcec.RecoverCompact(btcec.S256(), sig, digest)
	if err != nil {
		return fmt.Errorf("%w: recover public key: %w", api.ErrInvalidSignature, err)
	}

	serialized := pub.SerializeUncompressed()
	if compressed {
		serialized = pub.SerializeCompressed()
	}

	if !bytes.Equal(btcutil.Hash160(serialized), expected) {
		return fmt.Errorf("%w: signer address does not match", api.ErrInvalidSignature)
	}

	return nil
}

func decodeP2PKH(address string) ([]byte, error) {
	addr, err := btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: decode address: %w", signature.ErrKeyFormat, err)
	}

	pkh, ok := addr.(*btcutil.AddressPubKeyHash)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a P2PKH address", signature.ErrKeyFormat, address)
	}

	return pkh.Hash160()[:], nil
}
