/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/maphelpers"
)

// DataFormat selects how the signature options are combined with the canonical document into the
// data that is hashed and signed.
type DataFormat int

const (
	// HeaderDataFormat prefixes the canonical document with "<IRI>: <value>\n" lines for created,
	// domain and nonce, sorted by IRI. Used by LinkedDataSignature2015 and later suites.
	HeaderDataFormat DataFormat = iota

	// ConcatenatedDataFormat hashes nonce, created, the canonical document and "@" domain concatenated
	// in this order. Used by GraphSignature2012.
	ConcatenatedDataFormat
)

const (
	createdHeader = "http://purl.org/dc/elements/1.1/created"
	domainHeader  = jsonld.SecurityVocab + "domain"
	nonceHeader   = jsonld.SecurityVocab + "nonce"
)

// signatureSuite encapsulates the suite methods required to create verify data.
type signatureSuite interface {

	// GetCanonicalDocument will return normalized/canonical version of the document
	GetCanonicalDocument(doc map[string]interface{}, opts ...processor.Opts) ([]byte, error)

	// GetDigest returns document digest
	GetDigest(doc []byte) []byte

	// DataFormat returns the layout of the data to hash
	DataFormat() DataFormat
}

// SecurityContext returns the JSON-LD context object of the security vocabulary.
func SecurityContext() map[string]interface{} {
	return map[string]interface{}{jsonldContext: jsonld.SecurityContextURL}
}

// CompactSecurity compacts doc with the security context so that its signature node, whatever
// alias the document uses for it, is found under "signature".
func CompactSecurity(doc map[string]interface{}, opts ...processor.Opts) (map[string]interface{}, error) {
	compacted, err := processor.Default().Compact(doc, SecurityContext(), opts...)
	if err != nil {
		return nil, fmt.Errorf("compact document with security context: %w", err)
	}

	return compacted, nil
}

// GetSignature returns the signature node of a document compacted with the security context.
func GetSignature(compactedDoc map[string]interface{}) (*Signature, error) {
	entry, ok := compactedDoc[jsonldSignature]
	if !ok || entry == nil {
		return nil, fmt.Errorf("%w: document has no signature", ErrMissingSignature)
	}

	node, ok := entry.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a single signature node", ErrMissingSignature)
	}

	return NewSignature(node)
}

// CreateVerifyData creates the digest that is signed and verified. The document compacted with the
// security context is canonicalized without its signature node; created, domain and nonce of sig are
// then combined with the canonical document in the suite's data format and digested by the suite.
func CreateVerifyData(suite signatureSuite, compactedDoc map[string]interface{}, sig *Signature,
	opts ...processor.Opts) ([]byte, error) {
	view := maphelpers.CopyMap(compactedDoc)

	delete(view, jsonldSignature)

	view[jsonldContext] = jsonld.SecurityContextURL

	canonicalDoc, err := suite.GetCanonicalDocument(view, opts...)
	if err != nil {
		return nil, err
	}

	return suite.GetDigest(DataToHash(suite.DataFormat(), canonicalDoc, sig)), nil
}

// DataToHash combines the signature options of sig with a canonical document.
func DataToHash(format DataFormat, canonicalDoc []byte, sig *Signature) []byte {
	var created string
	if sig.Created != nil {
		created = sig.Created.FormatToString()
	}

	var sb strings.Builder

	if format == ConcatenatedDataFormat {
		sb.WriteString(sig.Nonce)
		sb.WriteString(created)
		sb.Write(canonicalDoc)

		if sig.Domain != "" {
			sb.WriteString("@" + sig.Domain)
		}

		return []byte(sb.String())
	}

	headers := map[string]string{
		createdHeader: created,
		domainHeader:  sig.Domain,
		nonceHeader:   sig.Nonce,
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		if headers[k] != "" {
			sb.WriteString(k + ": " + headers[k] + "\n")
		}
	}

	sb.Write(canonicalDoc)

	return []byte(sb.String())
}
