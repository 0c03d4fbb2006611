/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package linkeddatasignature2015

import (
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/verifier"
)

const keyType = "CryptographicKey"

// NewPublicKeyVerifier creates a signature verifier that verifies a LinkedDataSignature2015 signature
// taking a PEM RSA public key as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewRSASignatureVerifier(), verifier.WithExactPublicKeyType(keyType))
}
