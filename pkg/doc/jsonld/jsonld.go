/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jsonld provides the JSON-LD context loading used by signing and verification.
package jsonld

import (
	_ "embed" // embedded security context

	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
)

const (
	// SecurityContextURL is the security vocabulary context every signature node is expressed in.
	SecurityContextURL = "https://w3id.org/security/v1"
	// SecurityVocab is the expanded security vocabulary prefix.
	SecurityVocab = "https://w3id.org/security#"
)

//go:embed contexts/security_v1.jsonld
var securityV1 []byte

// EmbedContexts are the contexts always preloaded into the document loader store.
var EmbedContexts = []ContextDocument{ //nolint:gochecknoglobals
	{
		URL:         SecurityContextURL,
		DocumentURL: SecurityContextURL,
		Content:     securityV1,
	},
}

// NewDefaultDocumentLoader returns a DocumentLoader backed by an in-memory store with the embedded
// contexts preloaded. Remote fetching is disabled.
func NewDefaultDocumentLoader(opts ...DocumentLoaderOpts) (*DocumentLoader, error) {
	return NewDocumentLoader(mem.NewProvider(), opts...)
}
