/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/maphelpers"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
	afgotime "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/time"
)

var logger = log.New("aries-framework/jsigs/signer")

// ErrInvalidOptions is returned when the signing options are incomplete or do not fit the signature suite.
var ErrInvalidOptions = errors.New("invalid signature options")

const (
	jsonldContext         = "@context"
	securitySignatureIRI  = jsonld.SecurityVocab + "signature"
	securitySignatureTerm = "signature"
)

// DocumentSigner implements signing of JSONLD documents.
type DocumentSigner struct {
	suites api.SuiteResolver
}

// Context holds signing options and private key.
type Context struct {
	SignatureType string           // required
	Creator       string           // required
	PrivateKeyPem string           // required by PEM_RSA suites unless Signer is set
	PrivateKeyWif string           // required by WIF_SECP256K1 suites unless Signer is set
	Signer        signature.Signer // optional, takes precedence over key material
	Created       *time.Time       // optional
	Domain        string           // optional
	Nonce         string           // optional
}

// New returns new instance of document signer.
func New(suites api.SuiteResolver) *DocumentSigner {
	return &DocumentSigner{suites: suites}
}

// Sign will sign JSON LD document.
func (signer *DocumentSigner) Sign(context *Context, jsonLdDoc []byte, opts ...processor.Opts) ([]byte, error) {
	var jsonLdObject map[string]interface{}

	err := json.Unmarshal(jsonLdDoc, &jsonLdObject)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal json ld document: %w", err)
	}

	signed, err := signer.SignObject(context, jsonLdObject, opts...)
	if err != nil {
		return nil, err
	}

	return json.Marshal(signed)
}

// SignObject signs a JSON LD object and returns a signed copy. The input object is not modified.
func (signer *DocumentSigner) SignObject(context *Context, jsonLdObject map[string]interface{},
	opts ...processor.Opts) (map[string]interface{}, error) {
	suite, keySigner, err := signer.prepare(context)
	if err != nil {
		return nil, err
	}

	created := time.Now()
	if context.Created != nil {
		created = *context.Created
	}

	sig := &proof.Signature{
		Type:    suite.Type(),
		Creator: context.Creator,
		Created: afgotime.NewTime(created),
		Domain:  context.Domain,
		Nonce:   context.Nonce,
	}

	err = processor.Default().CheckTerms(jsonLdObject, opts...)
	if err != nil {
		return nil, err
	}

	compacted, err := proof.CompactSecurity(jsonLdObject, opts...)
	if err != nil {
		return nil, err
	}

	digest, err := proof.CreateVerifyData(suite, compacted, sig, append(opts, processor.WithValidateRDF())...)
	if err != nil {
		return nil, err
	}

	sig.SignatureValue, err = suite.Sign(keySigner, digest)
	if err != nil {
		return nil, err
	}

	logger.Debugf("signed document with %s by %s", sig.Type, sig.Creator)

	return attachSignature(jsonLdObject, sig, opts)
}

// prepare validates the signing context and resolves its suite and signer.
func (signer *DocumentSigner) prepare(context *Context) (api.SignatureSuite, signature.Signer, error) {
	if context == nil {
		return nil, nil, fmt.Errorf("%w: signing context is missing", ErrInvalidOptions)
	}

	if context.SignatureType == "" {
		return nil, nil, fmt.Errorf("%w: signature type is missing", ErrInvalidOptions)
	}

	if context.Creator == "" {
		return nil, nil, fmt.Errorf("%w: creator is missing", ErrInvalidOptions)
	}

	suite, err := signer.suites.Resolve(context.SignatureType)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	if context.Signer != nil {
		if context.Signer.KeyFormat() != suite.KeyFormat() {
			return nil, nil, fmt.Errorf("%w: %s requires a %s key, got %s", ErrInvalidOptions,
				suite.Type(), suite.KeyFormat(), context.Signer.KeyFormat())
		}

		return suite, context.Signer, nil
	}

	var material string

	switch suite.KeyFormat() {
	case signature.KeyFormatPEMRSA:
		material = context.PrivateKeyPem
	case signature.KeyFormatWIFSecp256k1:
		material = context.PrivateKeyWif
	}

	if material == "" {
		return nil, nil, fmt.Errorf("%w: %s requires a %s private key", ErrInvalidOptions,
			suite.Type(), suite.KeyFormat())
	}

	keySigner, err := signature.ParsePrivateKey(suite.KeyFormat(), material)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	return suite, keySigner, nil
}

// attachSignature returns a copy of doc with the signature node compacted against the document's own context.
func attachSignature(doc map[string]interface{}, sig *proof.Signature,
	opts []processor.Opts) (map[string]interface{}, error) {
	hostContext := doc[jsonldContext]
	if hostContext == nil {
		hostContext = map[string]interface{}{}
	}

	node := map[string]interface{}{
		jsonldContext:         jsonld.SecurityContextURL,
		securitySignatureTerm: sig.JSONLdObject(),
	}

	compacted, err := processor.Default().Compact(node,
		map[string]interface{}{jsonldContext: hostContext}, opts...)
	if err != nil {
		return nil, fmt.Errorf("compact signature with document context: %w", err)
	}

	delete(compacted, jsonldContext)

	signed := maphelpers.CopyMap(doc)
	delete(signed, securitySignatureIRI)

	for k, v := range compacted {
		signed[k] = v
	}

	return signed, nil
}
