/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonldtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	mockstorage "github.com/hyperledger/aries-framework-go/component/storageutil/mock/storage"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
)

// WithDocumentLoader returns an option with a JSON-LD document loader preloaded with embedded contexts.
func WithDocumentLoader(t *testing.T) processor.Opts {
	t.Helper()

	return processor.WithDocumentLoader(DocumentLoader(t))
}

// DocumentLoader returns JSON-LD document loader preloaded with embedded contexts and provided extra contexts.
func DocumentLoader(t *testing.T, extraContexts ...jsonld.ContextDocument) *jsonld.DocumentLoader {
	t.Helper()

	loader, err := jsonld.NewDocumentLoader(mockstorage.NewMockStoreProvider(),
		jsonld.WithExtraContexts(extraContexts...),
	)
	require.NoError(t, err)

	return loader
}
