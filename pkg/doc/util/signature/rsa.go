/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const (
	pkcs1PrivateKeyType = "RSA PRIVATE KEY"
	pkcs8PrivateKeyType = "PRIVATE KEY"
)

// RSASigner makes RSASSA-PKCS1-v1_5 signatures over SHA-256 digests.
type RSASigner struct {
	privateKey *rsa.PrivateKey

	PublicKey *rsa.PublicKey
}

// NewRSASigner creates a new RSASigner from a PKCS#1 or PKCS#8 PEM encoded private key.
func NewRSASigner(privateKeyPem string) (*RSASigner, error) {
	block, _ := pem.Decode([]byte(privateKeyPem))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKeyFormat)
	}

	var (
		privKey *rsa.PrivateKey
		err     error
	)

	switch block.Type {
	case pkcs1PrivateKeyType:
		privKey, err = x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse PKCS#1 private key: %w", ErrKeyFormat, err)
		}
	case pkcs8PrivateKeyType:
		key, e := x509.ParsePKCS8PrivateKey(block.Bytes)
		if e != nil {
			return nil, fmt.Errorf("%w: parse PKCS#8 private key: %w", ErrKeyFormat, e)
		}

		var ok bool

		privKey, ok = key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKCS#8 key is not an RSA key", ErrKeyFormat)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", ErrKeyFormat, block.Type)
	}

	return GetRSASigner(privKey), nil
}

// GetRSASigner creates a new RSASigner with provided RSA private key.
func GetRSASigner(privKey *rsa.PrivateKey) *RSASigner {
	return &RSASigner{privateKey: privKey, PublicKey: &privKey.PublicKey}
}

// Sign signs a SHA-256 digest.
func (s *RSASigner) Sign(digest []byte) ([]byte, error) {
	return rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest)
}

// KeyFormat returns KeyFormatPEMRSA.
func (s *RSASigner) KeyFormat() KeyFormat {
	return KeyFormatPEMRSA
}

// PublicKeyPem returns the PKIX PEM encoding of the signer's public key.
func (s *RSASigner) PublicKeyPem() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(s.PublicKey)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
