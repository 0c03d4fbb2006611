/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signature holds the private key signers used by the signature suites.
package signature

import (
	"errors"
	"fmt"
)

// KeyFormat identifies how a key is serialized.
type KeyFormat string

const (
	// KeyFormatPEMRSA is an RSA key in PEM encoding.
	KeyFormatPEMRSA KeyFormat = "PEM_RSA"
	// KeyFormatWIFSecp256k1 is a secp256k1 private key in Wallet Import Format. Its public counterpart is a
	// Bitcoin P2PKH address.
	KeyFormatWIFSecp256k1 KeyFormat = "WIF_SECP256K1"
)

// ErrKeyFormat is returned when key material cannot be decoded in the expected format.
var ErrKeyFormat = errors.New("invalid key format")

// Signer defines a private key signer. Sign receives the digest of the canonical document.
type Signer interface {
	Sign(digest []byte) ([]byte, error)
	KeyFormat() KeyFormat
}

// ParsePrivateKey decodes private key material of the given format into a Signer.
func ParsePrivateKey(format KeyFormat, material string) (Signer, error) {
	switch format {
	case KeyFormatPEMRSA:
		return NewRSASigner(material)
	case KeyFormatWIFSecp256k1:
		return NewKoblitzSigner(material)
	default:
		return nil, fmt.Errorf("%w: unsupported key format %q", ErrKeyFormat, format)
	}
}
