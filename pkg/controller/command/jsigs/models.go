/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigs

import "time"

// SignRequest is model for sign request.
type SignRequest struct {
	Document map[string]interface{} `json:"document"`
	Options  *SignOptions           `json:"options"`
}

// SignOptions is model for signature options.
type SignOptions struct {
	Algorithm     string     `json:"algorithm"`
	Creator       string     `json:"creator"`
	Created       *time.Time `json:"created,omitempty"`
	Domain        string     `json:"domain,omitempty"`
	Nonce         string     `json:"nonce,omitempty"`
	PrivateKeyPem string     `json:"privateKeyPem,omitempty"`
	PrivateKeyWif string     `json:"privateKeyWif,omitempty"`
}

// SignResponse is model for sign response.
type SignResponse struct {
	Document map[string]interface{} `json:"document"`
}

// VerifyRequest is model for verify request. Key and owner documents not given are loaded by the
// configured key loader.
type VerifyRequest struct {
	Document       map[string]interface{} `json:"document"`
	PublicKey      map[string]interface{} `json:"publicKey,omitempty"`
	PublicKeyOwner map[string]interface{} `json:"publicKeyOwner,omitempty"`
}

// VerifyResponse is model for verify response.
type VerifyResponse struct {
	Verified bool `json:"verified"`
}
