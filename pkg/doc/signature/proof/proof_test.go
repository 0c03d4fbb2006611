/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSignature(t *testing.T) {
	sig, err := NewSignature(map[string]interface{}{
		"type":           "RsaSignature2017",
		"creator":        "https://example.com/i/alice/keys/1",
		"created":        "2017-03-25T22:01:04Z",
		"domain":         "example.com",
		"nonce":          "abc",
		"signatureValue": "c2lnbmF0dXJl",
	})
	require.NoError(t, err)
	require.Equal(t, "RsaSignature2017", sig.Type)
	require.Equal(t, "https://example.com/i/alice/keys/1", sig.Creator)
	require.Equal(t, "2017-03-25T22:01:04Z", sig.Created.FormatToString())
	require.Equal(t, "example.com", sig.Domain)
	require.Equal(t, "abc", sig.Nonce)
	require.Equal(t, "c2lnbmF0dXJl", sig.SignatureValue)

	t.Run("without created", func(t *testing.T) {
		sig, err := NewSignature(map[string]interface{}{
			"type":           "RsaSignature2017",
			"creator":        "https://example.com/i/alice/keys/1",
			"signatureValue": "c2lnbmF0dXJl",
		})
		require.NoError(t, err)
		require.Nil(t, sig.Created)
	})

	t.Run("missing mandatory fields", func(t *testing.T) {
		tests := []struct {
			name string
			node map[string]interface{}
			err  string
		}{
			{
				name: "type",
				node: map[string]interface{}{"creator": "c", "signatureValue": "v"},
				err:  "signature type is not defined",
			},
			{
				name: "creator",
				node: map[string]interface{}{"type": "t", "signatureValue": "v"},
				err:  "signature creator is not defined",
			},
			{
				name: "signature value",
				node: map[string]interface{}{"type": "t", "creator": "c"},
				err:  "signature value is not defined",
			},
			{
				name: "non string creator",
				node: map[string]interface{}{"type": "t", "creator": map[string]interface{}{}, "signatureValue": "v"},
				err:  "signature creator is not defined",
			},
			{
				name: "invalid created",
				node: map[string]interface{}{"type": "t", "creator": "c", "signatureValue": "v", "created": "yesterday"},
				err:  "invalid created",
			},
		}

		for _, test := range tests {
			tc := test
			t.Run(tc.name, func(t *testing.T) {
				sig, err := NewSignature(tc.node)
				require.ErrorIs(t, err, ErrMissingSignature)
				require.Contains(t, err.Error(), tc.err)
				require.Nil(t, sig)
			})
		}
	})
}

func TestSignature_JSONLdObject(t *testing.T) {
	sig, err := NewSignature(map[string]interface{}{
		"type":           "LinkedDataSignature2015",
		"creator":        "https://example.com/i/alice/keys/1",
		"created":        "2017-03-25T22:01:04Z",
		"signatureValue": "c2lnbmF0dXJl",
	})
	require.NoError(t, err)

	require.Equal(t, map[string]interface{}{
		"type":           "LinkedDataSignature2015",
		"creator":        "https://example.com/i/alice/keys/1",
		"created":        "2017-03-25T22:01:04Z",
		"signatureValue": "c2lnbmF0dXJl",
	}, sig.JSONLdObject())

	require.Equal(t, map[string]interface{}{
		"type":    "LinkedDataSignature2015",
		"creator": "https://example.com/i/alice/keys/1",
		"created": "2017-03-25T22:01:04Z",
	}, sig.unsignedJSONLdObject())
}
