/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

type mockSigner struct {
	format signature.KeyFormat
	err    error
}

func (s *mockSigner) Sign(digest []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	return append([]byte("signed:"), digest...), nil
}

func (s *mockSigner) KeyFormat() signature.KeyFormat {
	return s.format
}

type mockVerifier struct {
	sig []byte
	err error
}

func (v *mockVerifier) Verify(_ *api.PublicKey, _, sig []byte) error {
	v.sig = sig

	return v.err
}

func TestSignatureSuite_Sign(t *testing.T) {
	ss := InitSuiteOptions(&SignatureSuite{}, signature.KeyFormatPEMRSA)
	require.Equal(t, signature.KeyFormatPEMRSA, ss.KeyFormat())

	sigValue, err := ss.Sign(&mockSigner{format: signature.KeyFormatPEMRSA}, []byte("digest"))
	require.NoError(t, err)
	require.Equal(t, "c2lnbmVkOmRpZ2VzdA==", sigValue)

	_, err = ss.Sign(nil, []byte("digest"))
	require.ErrorIs(t, err, ErrSignerNotDefined)

	_, err = ss.Sign(&mockSigner{format: signature.KeyFormatWIFSecp256k1}, []byte("digest"))
	require.ErrorIs(t, err, signature.ErrKeyFormat)

	signErr := errors.New("sign error")
	_, err = ss.Sign(&mockSigner{format: signature.KeyFormatPEMRSA, err: signErr}, []byte("digest"))
	require.ErrorIs(t, err, signErr)
}

func TestWithDataFormat(t *testing.T) {
	ss := InitSuiteOptions(&SignatureSuite{}, signature.KeyFormatPEMRSA)
	require.Equal(t, proof.HeaderDataFormat, ss.DataFormat())

	ss = InitSuiteOptions(&SignatureSuite{}, signature.KeyFormatPEMRSA, WithDataFormat(proof.ConcatenatedDataFormat))
	require.Equal(t, proof.ConcatenatedDataFormat, ss.DataFormat())
}

func TestSignatureSuite_Verify(t *testing.T) {
	v := &mockVerifier{}
	ss := InitSuiteOptions(&SignatureSuite{}, signature.KeyFormatPEMRSA, WithVerifier(v))

	pubKey := &api.PublicKey{Format: signature.KeyFormatPEMRSA}

	require.NoError(t, ss.Verify(pubKey, []byte("digest"), "c2lnbmVkOmRpZ2VzdA=="))
	require.Equal(t, []byte("signed:digest"), v.sig)

	err := ss.Verify(pubKey, []byte("digest"), "%%%")
	require.ErrorIs(t, err, api.ErrInvalidSignature)

	err = ss.Verify(nil, []byte("digest"), "c2lnbmVkOmRpZ2VzdA==")
	require.ErrorIs(t, err, signature.ErrKeyFormat)

	err = ss.Verify(&api.PublicKey{Format: signature.KeyFormatWIFSecp256k1}, []byte("digest"), "c2lnbmVkOmRpZ2VzdA==")
	require.ErrorIs(t, err, signature.ErrKeyFormat)

	v.err = api.ErrInvalidSignature
	err = ss.Verify(pubKey, []byte("digest"), "c2lnbmVkOmRpZ2VzdA==")
	require.ErrorIs(t, err, api.ErrInvalidSignature)

	err = InitSuiteOptions(&SignatureSuite{}, signature.KeyFormatPEMRSA).
		Verify(pubKey, []byte("digest"), "c2lnbmVkOmRpZ2VzdA==")
	require.ErrorIs(t, err, ErrVerifierNotDefined)
}
