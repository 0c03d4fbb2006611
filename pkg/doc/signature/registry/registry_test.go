/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/registry"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite/rsasignature2017"
)

func TestDefault(t *testing.T) {
	r := registry.Default()

	require.Equal(t, []string{
		"EcdsaKoblitzSignature2016",
		"GraphSignature2012",
		"LinkedDataSignature2015",
		"RsaSignature2017",
	}, r.Types())

	tests := []struct {
		signatureType string
		algorithm     string
	}{
		{signatureType: "GraphSignature2012", algorithm: processor.AlgorithmURGNA2012},
		{signatureType: "LinkedDataSignature2015", algorithm: processor.AlgorithmURDNA2015},
		{signatureType: "EcdsaKoblitzSignature2016", algorithm: processor.AlgorithmURDNA2015},
		{signatureType: "RsaSignature2017", algorithm: processor.AlgorithmURDNA2015},
	}

	for _, test := range tests {
		tc := test
		t.Run(tc.signatureType, func(t *testing.T) {
			s, err := r.Resolve(tc.signatureType)
			require.NoError(t, err)
			require.Equal(t, tc.signatureType, s.Type())
			require.True(t, s.Accept(tc.signatureType))
			require.Equal(t, tc.algorithm, s.CanonicalizationAlgorithm())
		})
	}

	t.Run("registries are independent", func(t *testing.T) {
		other := registry.Default()
		require.NoError(t, other.Register(rsasignature2017.New(), registry.WithOverride()))

		s1, err := r.Resolve(rsasignature2017.SignatureType)
		require.NoError(t, err)

		s2, err := other.Resolve(rsasignature2017.SignatureType)
		require.NoError(t, err)

		require.NotSame(t, s1, s2)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Run("duplicate suite", func(t *testing.T) {
		r := registry.Default()

		err := r.Register(rsasignature2017.New())
		require.ErrorIs(t, err, registry.ErrDuplicateSuite)
	})

	t.Run("override suite", func(t *testing.T) {
		r := registry.Default()
		s := rsasignature2017.New()

		require.NoError(t, r.Register(s, registry.WithOverride()))

		resolved, err := r.Resolve(rsasignature2017.SignatureType)
		require.NoError(t, err)
		require.Same(t, s, resolved)
	})

	t.Run("nil suite", func(t *testing.T) {
		require.Error(t, registry.New().Register(nil))
	})

	t.Run("concurrent register and resolve", func(t *testing.T) {
		r := registry.New()

		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(2)

			go func() {
				defer wg.Done()

				_ = r.Register(rsasignature2017.New(), registry.WithOverride()) //nolint:errcheck
			}()

			go func() {
				defer wg.Done()

				_, _ = r.Resolve(rsasignature2017.SignatureType) //nolint:errcheck
			}()
		}

		wg.Wait()

		_, err := r.Resolve(rsasignature2017.SignatureType)
		require.NoError(t, err)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	s, err := registry.New().Resolve("Ed25519Signature2018")
	require.Nil(t, s)
	require.ErrorIs(t, err, registry.ErrUnknownSuite)
	require.ErrorIs(t, err, api.ErrUnknownSuite)
}
