/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsakoblitzsignature2016

import (
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/verifier"
)

const keyType = "CryptographicKey"

// NewPublicKeyVerifier creates a signature verifier that verifies a EcdsaKoblitzSignature2016 signature
// taking a Bitcoin address as input.
func NewPublicKeyVerifier() *verifier.PublicKeyVerifier {
	return verifier.NewPublicKeyVerifier(verifier.NewKoblitzSignatureVerifier(), verifier.WithExactPublicKeyType(keyType))
}
