/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"errors"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

var (
	// ErrUnknownSuite is returned when no signature suite is registered for a signature type.
	ErrUnknownSuite = errors.New("unknown signature suite")

	// ErrInvalidSignature is returned when a signature does not match the digest and public key.
	// Verification reports it as a false result rather than an error.
	ErrInvalidSignature = errors.New("invalid signature")
)

// SignatureSuite encapsulates signature suite methods required for signing and signature verification.
type SignatureSuite interface {

	// GetCanonicalDocument will return normalized/canonical version of the document
	GetCanonicalDocument(doc map[string]interface{}, opts ...processor.Opts) ([]byte, error)

	// GetDigest returns document digest
	GetDigest(doc []byte) []byte

	// DataFormat returns how signature options and the canonical document are combined before digesting
	DataFormat() proof.DataFormat

	// Sign signs the digest with signer and returns the base64 signature value
	Sign(signer signature.Signer, digest []byte) (string, error)

	// Verify will verify the base64 signature value of digest against public key
	Verify(pubKey *PublicKey, digest []byte, signatureValue string) error

	// Accept registers this signature suite with the given signature type
	Accept(signatureType string) bool

	// Type returns the signature type the suite produces
	Type() string

	// KeyFormat returns the format of the keys the suite signs and verifies with
	KeyFormat() signature.KeyFormat

	// CanonicalizationAlgorithm returns the RDF normalization algorithm identifier
	CanonicalizationAlgorithm() string
}

// SuiteResolver finds the signature suite of a signature type.
type SuiteResolver interface {
	Resolve(signatureType string) (SignatureSuite, error)
}

// PublicKey contains a result of public key resolution.
type PublicKey struct {
	ID     string
	Type   string
	Owner  string
	Format signature.KeyFormat
	Value  []byte
}
