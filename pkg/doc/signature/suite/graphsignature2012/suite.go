/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package graphsignature2012 implements the GraphSignature2012 signature suite
// for the Linked Data Signatures specification (https://web-payments.org/specs/source/ld-signatures/#graphsignature2012).
// It uses the Universal RDF Graph Normalization Algorithm 2012 to transform the input document into its
// canonical form. The nonce, the creation date, the canonical document and the domain are concatenated
// and hashed with SHA-256. The digest is signed with RSASSA-PKCS1-v1_5.
package graphsignature2012

import (
	"crypto/sha256"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

// Suite implements GraphSignature2012 signature suite.
type Suite struct {
	suite.SignatureSuite
	jsonldProcessor *processor.Processor
}

const (
	// SignatureType is the signature type of the suite.
	SignatureType = "GraphSignature2012"
	rdfDataSetAlg = processor.AlgorithmURGNA2012
)

// New an instance of GraphSignature2012 suite. Signatures are verified with NewPublicKeyVerifier unless
// suite.WithVerifier is given.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{jsonldProcessor: processor.NewProcessor(rdfDataSetAlg)}

	suite.InitSuiteOptions(&s.SignatureSuite, signature.KeyFormatPEMRSA,
		append([]suite.Opt{
			suite.WithVerifier(NewPublicKeyVerifier()),
			suite.WithDataFormat(proof.ConcatenatedDataFormat),
		}, opts...)...)

	return s
}

// GetCanonicalDocument will return normalized/canonical version of the document.
func (s *Suite) GetCanonicalDocument(doc map[string]interface{}, opts ...processor.Opts) ([]byte, error) {
	return s.jsonldProcessor.GetCanonicalDocument(doc, opts...)
}

// GetDigest returns document digest.
func (s *Suite) GetDigest(doc []byte) []byte {
	digest := sha256.Sum256(doc)
	return digest[:]
}

// Accept will accept only GraphSignature2012 signature type.
func (s *Suite) Accept(t string) bool {
	return t == SignatureType
}

// Type returns GraphSignature2012.
func (s *Suite) Type() string {
	return SignatureType
}

// CanonicalizationAlgorithm returns URGNA2012.
func (s *Suite) CanonicalizationAlgorithm() string {
	return rdfDataSetAlg
}
