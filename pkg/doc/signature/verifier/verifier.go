/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/keyresolver"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
)

var logger = log.New("aries-framework/jsigs/verifier")

var (
	// ErrMissingSignature is returned when the document has no signature node or the node lacks
	// type, creator or signatureValue.
	ErrMissingSignature = proof.ErrMissingSignature

	// ErrUnknownSuite is returned when the signature type has no registered suite.
	ErrUnknownSuite = api.ErrUnknownSuite

	// ErrKeyResolution is returned when the signing key or its owner cannot be resolved.
	ErrKeyResolution = keyresolver.ErrKeyResolution

	// ErrCancelled is returned when verification is cancelled through its context.
	ErrCancelled = errors.New("verification cancelled")
)

// SignatureSuite encapsulates signature suite methods required for signature verification.
type SignatureSuite = api.SignatureSuite

// PublicKey contains a result of public key resolution.
type PublicKey = api.PublicKey

// DocumentVerifier implements JSON LD document signature verification.
type DocumentVerifier struct {
	suites     api.SuiteResolver
	pkResolver keyresolver.Resolver
}

// New returns new instance of document verifier.
func New(resolver keyresolver.Resolver, suites api.SuiteResolver) (*DocumentVerifier, error) {
	if resolver == nil {
		return nil, errors.New("key resolver must be provided")
	}

	if suites == nil {
		return nil, errors.New("signature suites must be provided")
	}

	return &DocumentVerifier{
		suites:     suites,
		pkResolver: resolver,
	}, nil
}

// Verify will verify the document signature. A document whose signature or key ownership does not check
// out returns false without an error; errors are reserved for documents that cannot be verified at all.
func (dv *DocumentVerifier) Verify(ctx context.Context, jsonLdDoc []byte, opts ...processor.Opts) (bool, error) {
	var jsonLdObject map[string]interface{}

	err := json.Unmarshal(jsonLdDoc, &jsonLdObject)
	if err != nil {
		return false, fmt.Errorf("failed to unmarshal json ld document: %w", err)
	}

	return dv.VerifyObject(ctx, jsonLdObject, opts...)
}

// VerifyObject will verify the signature of a JSON LD object. The object is not modified.
func (dv *DocumentVerifier) VerifyObject(ctx context.Context, jsonLdObject map[string]interface{},
	opts ...processor.Opts) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, cancelled(err)
	}

	compacted, err := proof.CompactSecurity(jsonLdObject, opts...)
	if err != nil {
		return false, err
	}

	sig, err := proof.GetSignature(compacted)
	if err != nil {
		return false, err
	}

	suite, err := dv.suites.Resolve(sig.Type)
	if err != nil {
		return false, err
	}

	key, owner, err := dv.pkResolver.Resolve(ctx, sig.Creator)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, cancelled(ctxErr)
		}

		if !errors.Is(err, ErrKeyResolution) {
			err = fmt.Errorf("%w: %w", ErrKeyResolution, err)
		}

		return false, err
	}

	if !owns(owner, key) {
		logger.Debugf("key %s is not owned by %s", key.ID, owner.ID)

		return false, nil
	}

	publicKey, err := key.PublicKey(suite.KeyFormat())
	if err != nil {
		return false, err
	}

	digest, err := proof.CreateVerifyData(suite, compacted, sig, opts...)
	if err != nil {
		return false, err
	}

	err = suite.Verify(publicKey, digest, sig.SignatureValue)
	if errors.Is(err, api.ErrInvalidSignature) {
		logger.Debugf("%s signature by %s does not verify: %s", sig.Type, sig.Creator, err)

		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// owns checks that the key names owner as its owner and owner lists the key.
func owns(owner *keyresolver.OwnerDocument, key *keyresolver.KeyDocument) bool {
	return key.Owner == owner.ID && slices.Contains(owner.PublicKeyIDs(), key.ID)
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
