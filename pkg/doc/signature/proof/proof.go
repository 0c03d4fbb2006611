/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"errors"
	"fmt"

	afgotime "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/time"
)

const (
	// jsonldType is key for signature type.
	jsonldType = "type"
	// jsonldCreator is key for creator.
	jsonldCreator = "creator"
	// jsonldCreated is key for time signature created.
	jsonldCreated = "created"
	// jsonldDomain is key for domain name.
	jsonldDomain = "domain"
	// jsonldNonce is key for nonce.
	jsonldNonce = "nonce"
	// jsonldSignatureValue is key for the base64 signature value.
	jsonldSignatureValue = "signatureValue"

	// jsonldSignature is the key of the signature node in a document compacted with the security context.
	jsonldSignature = "signature"
	// jsonldContext is the JSON-LD context key.
	jsonldContext = "@context"
)

// ErrMissingSignature is returned when a document has no usable signature node.
var ErrMissingSignature = errors.New("missing signature")

// Signature is the signature node attached to a signed document.
type Signature struct {
	Type           string
	Creator        string
	Created        *afgotime.TimeWrapper
	Domain         string
	Nonce          string
	SignatureValue string
}

// NewSignature creates a signature from a signature node expressed in the security context terms.
// Type, creator and signatureValue are mandatory.
func NewSignature(emap map[string]interface{}) (*Signature, error) {
	sig := &Signature{
		Type:           stringEntry(emap[jsonldType]),
		Creator:        stringEntry(emap[jsonldCreator]),
		Domain:         stringEntry(emap[jsonldDomain]),
		Nonce:          stringEntry(emap[jsonldNonce]),
		SignatureValue: stringEntry(emap[jsonldSignatureValue]),
	}

	switch {
	case sig.Type == "":
		return nil, fmt.Errorf("%w: signature type is not defined", ErrMissingSignature)
	case sig.Creator == "":
		return nil, fmt.Errorf("%w: signature creator is not defined", ErrMissingSignature)
	case sig.SignatureValue == "":
		return nil, fmt.Errorf("%w: signature value is not defined", ErrMissingSignature)
	}

	if created := stringEntry(emap[jsonldCreated]); created != "" {
		timeValue, err := afgotime.ParseTimeWrapper(created)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid created: %w", ErrMissingSignature, err)
		}

		sig.Created = timeValue
	}

	return sig, nil
}

// stringEntry.
func stringEntry(entry interface{}) string {
	if entry == nil {
		return ""
	}

	if strVal, ok := entry.(string); ok {
		return strVal
	}

	return ""
}

// JSONLdObject returns map that represents the signature node.
func (s *Signature) JSONLdObject() map[string]interface{} {
	emap := s.unsignedJSONLdObject()

	if s.SignatureValue != "" {
		emap[jsonldSignatureValue] = s.SignatureValue
	}

	return emap
}

func (s *Signature) unsignedJSONLdObject() map[string]interface{} {
	emap := make(map[string]interface{})
	emap[jsonldType] = s.Type

	if s.Creator != "" {
		emap[jsonldCreator] = s.Creator
	}

	if s.Created != nil {
		emap[jsonldCreated] = s.Created.FormatToString()
	}

	if s.Domain != "" {
		emap[jsonldDomain] = s.Domain
	}

	if s.Nonce != "" {
		emap[jsonldNonce] = s.Nonce
	}

	return emap
}
