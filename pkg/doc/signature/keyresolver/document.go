/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyresolver

import (
	"fmt"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/maphelpers"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
	afgotime "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/time"
)

const (
	jsonldContext = "@context"
	jsonldID      = "id"
)

// KeyDocument is a public key document. Expires and Revoked are informational and not enforced.
type KeyDocument struct {
	ID           string                `json:"id"`
	Type         string                `json:"type,omitempty"`
	Owner        string                `json:"owner,omitempty"`
	PublicKeyPem string                `json:"publicKeyPem,omitempty"`
	PublicKeyWif string                `json:"publicKeyWif,omitempty"`
	Expires      *afgotime.TimeWrapper `json:"expires,omitempty"`
	Revoked      *afgotime.TimeWrapper `json:"revoked,omitempty"`
}

// OwnerDocument is a key owner document. PublicKey entries are key URIs or embedded key documents.
type OwnerDocument struct {
	ID        string        `json:"id"`
	PublicKey []interface{} `json:"publicKey,omitempty"`
}

// ParseKeyDocument reads a public key document. A document without a context is read with the
// security context.
func ParseKeyDocument(doc map[string]interface{}, opts ...processor.Opts) (*KeyDocument, error) {
	compacted, err := compactSecurity(doc, opts)
	if err != nil {
		return nil, err
	}

	var kd KeyDocument

	if err := maphelpers.Decode(compacted, &kd); err != nil {
		return nil, fmt.Errorf("decode key document: %w", err)
	}

	if kd.ID == "" {
		return nil, fmt.Errorf("key document has no id")
	}

	return &kd, nil
}

// ParseOwnerDocument reads a key owner document. A document without a context is read with the
// security context.
func ParseOwnerDocument(doc map[string]interface{}, opts ...processor.Opts) (*OwnerDocument, error) {
	compacted, err := compactSecurity(doc, opts)
	if err != nil {
		return nil, err
	}

	var od OwnerDocument

	if err := maphelpers.Decode(compacted, &od); err != nil {
		return nil, fmt.Errorf("decode owner document: %w", err)
	}

	if od.ID == "" {
		return nil, fmt.Errorf("owner document has no id")
	}

	return &od, nil
}

func compactSecurity(doc map[string]interface{}, opts []processor.Opts) (map[string]interface{}, error) {
	in := doc

	if _, ok := doc[jsonldContext]; !ok {
		in = maphelpers.CopyMap(doc)
		in[jsonldContext] = jsonld.SecurityContextURL
	}

	compacted, err := processor.Default().Compact(in,
		map[string]interface{}{jsonldContext: jsonld.SecurityContextURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("compact document with security context: %w", err)
	}

	return compacted, nil
}

// PublicKeyIDs returns the identifiers of the keys listed by the owner.
func (od *OwnerDocument) PublicKeyIDs() []string {
	ids := make([]string, 0, len(od.PublicKey))

	for _, entry := range od.PublicKey {
		switch k := entry.(type) {
		case string:
			ids = append(ids, k)
		case map[string]interface{}:
			if id, ok := k[jsonldID].(string); ok {
				ids = append(ids, id)
			}
		}
	}

	return ids
}

// PublicKey returns the key material of the given format.
func (kd *KeyDocument) PublicKey(format signature.KeyFormat) (*api.PublicKey, error) {
	var value string

	switch format {
	case signature.KeyFormatPEMRSA:
		value = kd.PublicKeyPem
	case signature.KeyFormatWIFSecp256k1:
		value = kd.PublicKeyWif
	}

	if value == "" {
		return nil, fmt.Errorf("%w: key %s has no %s material", ErrKeyResolution, kd.ID, format)
	}

	return &api.PublicKey{
		ID:     kd.ID,
		Type:   kd.Type,
		Owner:  kd.Owner,
		Format: format,
		Value:  []byte(value),
	}, nil
}
