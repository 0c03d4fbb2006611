/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rsasignature2017 implements the RsaSignature2017 signature suite
// for the Linked Data Signatures specification (https://w3c-dvcg.github.io/lds-rsa2017/).
// It uses the RDF Dataset Normalization Algorithm to transform the input document into its canonical form.
// It uses SHA-256 as the message digest algorithm and RSASSA-PKCS1-v1_5 as the signature algorithm.
package rsasignature2017

import (
	"crypto/sha256"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

// Suite implements RsaSignature2017 signature suite.
type Suite struct {
	suite.SignatureSuite
	jsonldProcessor *processor.Processor
}

const (
	// SignatureType is the signature type of the suite.
	SignatureType = "RsaSignature2017"
	rdfDataSetAlg = processor.AlgorithmURDNA2015
)

// New an instance of RsaSignature2017 suite. Signatures are verified with NewPublicKeyVerifier unless
// suite.WithVerifier is given.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{jsonldProcessor: processor.NewProcessor(rdfDataSetAlg)}

	suite.InitSuiteOptions(&s.SignatureSuite, signature.KeyFormatPEMRSA,
		append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)...)

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

// Accept will accept only RsaSignature2017 signature type.
func (s *Suite) Accept(t string) bool {
	return t == SignatureType
}

// Type returns RsaSignature2017.
func (s *Suite) Type() string {
	return SignatureType
}

// CanonicalizationAlgorithm returns URDNA2015.
func (s *Suite) CanonicalizationAlgorithm() string {
	return rdfDataSetAlg
}
