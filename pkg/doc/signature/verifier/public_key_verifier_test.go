/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-framework-go/component/jsigs/internal/jsonldtest"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

func TestPublicKeyVerifier_Verify(t *testing.T) {
	rsaSigner, err := signature.NewRSASigner(jsonldtest.PrivateKeyPem)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("test message"))

	sig, err := rsaSigner.Sign(digest[:])
	require.NoError(t, err)

	pubKey := &api.PublicKey{
		ID:     jsonldtest.PublicKeyURL,
		Type:   "CryptographicKey",
		Format: signature.KeyFormatPEMRSA,
		Value:  []byte(jsonldtest.PublicKeyPem),
	}

	v := NewPublicKeyVerifier(NewRSASignatureVerifier(), WithExactPublicKeyType("CryptographicKey"))

	require.NoError(t, v.Verify(pubKey, digest[:], sig))

	t.Run("tampered digest", func(t *testing.T) {
		other := sha256.Sum256([]byte("other message"))

		err := v.Verify(pubKey, other[:], sig)
		require.ErrorIs(t, err, api.ErrInvalidSignature)
	})

	t.Run("unexpected key type", func(t *testing.T) {
		err := v.Verify(&api.PublicKey{
			Type:   "RsaVerificationKey2018",
			Format: signature.KeyFormatPEMRSA,
			Value:  []byte(jsonldtest.PublicKeyPem),
		}, digest[:], sig)
		require.ErrorIs(t, err, signature.ErrKeyFormat)
		require.Contains(t, err.Error(), "a type of public key is not 'CryptographicKey'")
	})

	t.Run("unexpected key format", func(t *testing.T) {
		err := v.Verify(&api.PublicKey{
			Type:   "CryptographicKey",
			Format: signature.KeyFormatWIFSecp256k1,
			Value:  []byte(jsonldtest.PublicKeyWif),
		}, digest[:], sig)
		require.ErrorIs(t, err, signature.ErrKeyFormat)
	})

	t.Run("any key type", func(t *testing.T) {
		err := NewPublicKeyVerifier(NewRSASignatureVerifier()).Verify(&api.PublicKey{
			Type:   "RsaVerificationKey2018",
			Format: signature.KeyFormatPEMRSA,
			Value:  []byte(jsonldtest.PublicKeyPem),
		}, digest[:], sig)
		require.NoError(t, err)
	})
}

func TestParseRSAPublicKey(t *testing.T) {
	tests := []struct {
		name string
		pem  string
		err  string
	}{
		{
			name: "PKIX",
			pem:  jsonldtest.PublicKeyPem,
		},
		{
			name: "no PEM block",
			pem:  "not a pem",
			err:  "no PEM block found",
		},
		{
			name: "unsupported block type",
			pem:  "-----BEGIN CERTIFICATE-----\nAAAA\n-----END CERTIFICATE-----\n",
			err:  "unsupported PEM block type",
		},
		{
			name: "corrupted PKIX",
			pem:  "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n",
			err:  "parse PKIX public key",
		},
		{
			name: "corrupted PKCS#1",
			pem:  "-----BEGIN RSA PUBLIC KEY-----\nAAAA\n-----END RSA PUBLIC KEY-----\n",
			err:  "parse PKCS#1 public key",
		},
	}

	for _, test := range tests {
		tc := test
		t.Run(tc.name, func(t *testing.T) {
			pub, err := ParseRSAPublicKey([]byte(tc.pem))
			if tc.err != "" {
				require.ErrorIs(t, err, signature.ErrKeyFormat)
				require.Contains(t, err.Error(), tc.err)
				require.Nil(t, pub)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, pub)
		})
	}
}

func TestKoblitzSignatureVerifier_Verify(t *testing.T) {
	koblitzSigner, err := signature.NewKoblitzSigner(jsonldtest.PrivateKeyWif)
	require.NoError(t, err)

	digest := signature.BitcoinMessageHash([]byte("test message"))

	sig, err := koblitzSigner.Sign(digest)
	require.NoError(t, err)

	pubKey := func(address string) *api.PublicKey {
		return &api.PublicKey{
			ID:     jsonldtest.KoblitzCreator,
			Type:   "CryptographicKey",
			Format: signature.KeyFormatWIFSecp256k1,
			Value:  []byte(address),
		}
	}

	v := NewKoblitzSignatureVerifier()
	require.Equal(t, signature.KeyFormatWIFSecp256k1, v.KeyFormat())

	require.NoError(t, v.Verify(pubKey(jsonldtest.PublicKeyWif), digest, sig))

	t.Run("unrelated address", func(t *testing.T) {
		err := v.Verify(pubKey(jsonldtest.UnrelatedPublicKeyWif), digest, sig)
		require.ErrorIs(t, err, api.ErrInvalidSignature)
	})

	t.Run("other digest", func(t *testing.T) {
		other := signature.BitcoinMessageHash([]byte("other message"))

		err := v.Verify(pubKey(jsonldtest.PublicKeyWif), other, sig)
		require.ErrorIs(t, err, api.ErrInvalidSignature)
	})

	t.Run("malformed signature", func(t *testing.T) {
		err := v.Verify(pubKey(jsonldtest.PublicKeyWif), digest, []byte{1, 2, 3})
		require.ErrorIs(t, err, api.ErrInvalidSignature)
	})

	t.Run("malformed address", func(t *testing.T) {
		err := v.Verify(pubKey("1LGpGhGK8whX23ZNdxrgtjKrek9rP4xWEX"), digest, sig)
		require.ErrorIs(t, err, signature.ErrKeyFormat)
	})
}
