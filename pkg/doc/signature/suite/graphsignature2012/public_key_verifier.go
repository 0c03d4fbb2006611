/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package graphsignature2012

import (
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/verifier"
)

const keyType = "CryptographicKey"

// NewPublicKeyVerifier creates a signature verifier that verifies a GraphSignature2012 signature
// taking a PEM RSA public key as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewRSASignatureVerifier(), verifier.WithExactPublicKeyType(keyType))
}
