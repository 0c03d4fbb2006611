/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package keyresolver resolves the public key document named by a signature creator and the document of
// the key's owner.
package keyresolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
)

var logger = log.New("aries-framework/jsigs/keyresolver")

var (
	// ErrKeyResolution is returned when the key or owner document cannot be obtained or read.
	ErrKeyResolution = errors.New("key resolution failed")

	// ErrDocumentNotFound is returned by a DocumentLoader that has no document for a URI.
	ErrDocumentNotFound = errors.New("document not found")
)

// DocumentLoader loads key and owner documents.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, uri string) (map[string]interface{}, error)
}

// Resolver resolves a key and its owner.
type Resolver interface {
	Resolve(ctx context.Context, keyID string) (*KeyDocument, *OwnerDocument, error)
}

// DocumentResolver resolves keys and owners from caller supplied documents or a DocumentLoader.
type DocumentResolver struct {
	publicKey      map[string]interface{}
	publicKeyOwner map[string]interface{}
	loader         DocumentLoader
	cache          gcache.Cache
	cacheTTL       time.Duration
	processorOpts  []processor.Opts
}

// Opt configures DocumentResolver.
type Opt func(r *DocumentResolver)

// WithPublicKey sets the public key document used instead of loading the creator.
func WithPublicKey(doc map[string]interface{}) Opt {
	return func(r *DocumentResolver) {
		r.publicKey = doc
	}
}

// WithPublicKeyOwner sets the owner document used instead of loading the key owner.
func WithPublicKeyOwner(doc map[string]interface{}) Opt {
	return func(r *DocumentResolver) {
		r.publicKeyOwner = doc
	}
}

// WithDocumentLoader sets the loader for key and owner documents not supplied by the caller.
func WithDocumentLoader(loader DocumentLoader) Opt {
	return func(r *DocumentResolver) {
		r.loader = loader
	}
}

// WithCache caches up to size loaded documents for ttl. A zero ttl keeps documents until they are evicted.
func WithCache(size int, ttl time.Duration) Opt {
	return func(r *DocumentResolver) {
		r.cache = gcache.New(size).LRU().Build()
		r.cacheTTL = ttl
	}
}

// WithProcessorOptions sets the JSON-LD options used when reading documents.
func WithProcessorOptions(opts ...processor.Opts) Opt {
	return func(r *DocumentResolver) {
		r.processorOpts = append(r.processorOpts, opts...)
	}
}

// New returns a new DocumentResolver.
func New(opts ...Opt) *DocumentResolver {
	r := &DocumentResolver{}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the key document identified by keyID and the document of its owner.
func (r *DocumentResolver) Resolve(ctx context.Context, keyID string) (*KeyDocument, *OwnerDocument, error) {
	keyDoc, err := r.document(ctx, keyID, r.publicKey)
	if err != nil {
		return nil, nil, err
	}

	key, err := ParseKeyDocument(keyDoc, r.processorOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrKeyResolution, err)
	}

	if key.ID != keyID {
		return nil, nil, fmt.Errorf("%w: key document %s does not describe %s", ErrKeyResolution, key.ID, keyID)
	}

	if key.Owner == "" {
		return nil, nil, fmt.Errorf("%w: key %s has no owner", ErrKeyResolution, key.ID)
	}

	ownerDoc, err := r.document(ctx, key.Owner, r.publicKeyOwner)
	if err != nil {
		return nil, nil, err
	}

	owner, err := ParseOwnerDocument(ownerDoc, r.processorOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrKeyResolution, err)
	}

	return key, owner, nil
}

func (r *DocumentResolver) document(ctx context.Context, uri string,
	static map[string]interface{}) (map[string]interface{}, error) {
	if static != nil {
		return static, nil
	}

	if r.loader == nil {
		return nil, fmt.Errorf("%w: no document supplied for %s and no document loader configured",
			ErrKeyResolution, uri)
	}

	if r.cache != nil {
		if cached, err := r.cache.Get(uri); err == nil {
			if doc, ok := cached.(map[string]interface{}); ok {
				return doc, nil
			}
		}
	}

	doc, err := r.loader.LoadDocument(ctx, uri)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("%w: load %s: %w", ErrKeyResolution, uri, err)
	}

	if r.cache != nil {
		if err := r.cacheDocument(uri, doc); err != nil {
			logger.Warnf("failed to cache document %s: %s", uri, err)
		}
	}

	return doc, nil
}

func (r *DocumentResolver) cacheDocument(uri string, doc map[string]interface{}) error {
	if r.cacheTTL <= 0 {
		return r.cache.Set(uri, doc)
	}

	return r.cache.SetWithExpire(uri, doc, r.cacheTTL)
}
