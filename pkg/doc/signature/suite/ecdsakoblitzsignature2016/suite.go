/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecdsakoblitzsignature2016 implements the EcdsaKoblitzSignature2016 signature suite
// for the Linked Data Signatures specification (https://w3c-dvcg.github.io/lds-koblitz2016/).
// It uses the RDF Dataset Normalization Algorithm to transform the input document into its canonical form.
// The canonical document, prefixed with the signature option headers, is treated as a Bitcoin signed
// message: its digest is the double SHA-256 of the magic-prefixed message, signed with a secp256k1 key
// given in Wallet Import Format into a recoverable compact signature. Public keys are Bitcoin P2PKH
// addresses.
package ecdsakoblitzsignature2016

import (
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

// Suite implements EcdsaKoblitzSignature2016 signature suite.
type Suite struct {
	suite.SignatureSuite
	jsonldProcessor *processor.Processor
}

const (
	// SignatureType is the signature type of the suite.
	SignatureType = "EcdsaKoblitzSignature2016"
	rdfDataSetAlg = processor.AlgorithmURDNA2015
)

// New an instance of EcdsaKoblitzSignature2016 suite. Signatures are verified with NewPublicKeyVerifier unless
// suite.WithVerifier is given.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{jsonldProcessor: processor.NewProcessor(rdfDataSetAlg)}

	suite.InitSuiteOptions(&s.SignatureSuite, signature.KeyFormatWIFSecp256k1,
		append([]suite.Opt{suite.WithVerifier(NewPublicKeyVerifier())}, opts...)...)

	return s
}

// GetCanonicalDocument will return normalized/canonical version of the document.
func (s *Suite) GetCanonicalDocument(doc map[string]interface{}, opts ...processor.Opts) ([]byte, error) {
	return s.jsonldProcessor.GetCanonicalDocument(doc, opts...)
}

// GetDigest returns the Bitcoin signed message hash of doc.
func (s *Suite) GetDigest(doc []byte) []byte {
	return signature.BitcoinMessageHash(doc)
}

// Accept will accept only EcdsaKoblitzSignature2016 signature type.
func (s *Suite) Accept(t string) bool {
	return t == SignatureType
}

// Type returns EcdsaKoblitzSignature2016.
func (s *Suite) Type() string {
	return SignatureType
}

// CanonicalizationAlgorithm returns URDNA2015.
func (s *Suite) CanonicalizationAlgorithm() string {
	return rdfDataSetAlg
}
