/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

// SignatureSuite defines general signature suite structure.
type SignatureSuite struct {
	Verifier verifier

	keyFormat  signature.KeyFormat
	dataFormat proof.DataFormat
}

type verifier interface {
	// Verify will verify a signature of a digest.
	Verify(pubKey *api.PublicKey, digest, signature []byte) error
}

// Opt is the SignatureSuite option.
type Opt func(opts *SignatureSuite)

// WithVerifier defines a verifier for the Signature Suite.
func WithVerifier(v verifier) Opt {
	return func(opts *SignatureSuite) {
		opts.Verifier = v
	}
}

// WithDataFormat defines how signature options are combined with the canonical document,
// proof.HeaderDataFormat by default.
func WithDataFormat(format proof.DataFormat) Opt {
	return func(opts *SignatureSuite) {
		opts.dataFormat = format
	}
}

// InitSuiteOptions initializes signature suite with its key format and options.
func InitSuiteOptions(suite *SignatureSuite, keyFormat signature.KeyFormat, opts ...Opt) *SignatureSuite {
	suite.keyFormat = keyFormat

	for _, opt := range opts {
		opt(suite)
	}

	return suite
}

// KeyFormat returns the format of the keys the suite works with.
func (s *SignatureSuite) KeyFormat() signature.KeyFormat {
	return s.keyFormat
}

// DataFormat returns the layout of the data to hash.
func (s *SignatureSuite) DataFormat() proof.DataFormat {
	return s.dataFormat
}

// Sign signs digest and returns the signature in base64.
func (s *SignatureSuite) Sign(signer signature.Signer, digest []byte) (string, error) {
	if signer == nil {
		return "", ErrSignerNotDefined
	}

	if signer.KeyFormat() != s.keyFormat {
		return "", fmt.Errorf("%w: expected %s key, got %s", signature.ErrKeyFormat, s.keyFormat, signer.KeyFormat())
	}

	sig, err := signer.Sign(digest)
	if err != nil {
		return "", fmt.Errorf("sign digest: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify will verify a base64 signature value.
func (s *SignatureSuite) Verify(pubKey *api.PublicKey, digest []byte, signatureValue string) error {
	if s.Verifier == nil {
		return ErrVerifierNotDefined
	}

	if pubKey == nil || pubKey.Format != s.keyFormat {
		return fmt.Errorf("%w: public key is not a %s key", signature.ErrKeyFormat, s.keyFormat)
	}

	sig, err := base64.StdEncoding.DecodeString(signatureValue)
	if err != nil {
		return fmt.Errorf("%w: decode signature value: %w", api.ErrInvalidSignature, err)
	}

	return s.Verifier.Verify(pubKey, digest, sig)
}

// ErrSignerNotDefined is returned when Sign() is called without a signer.
var ErrSignerNotDefined = errors.New("signer is not defined")

// ErrVerifierNotDefined is returned when Verify() is called but verifier option is not defined.
var ErrVerifierNotDefined = errors.New("verifier is not defined")
