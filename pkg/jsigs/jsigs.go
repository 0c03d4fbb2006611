/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jsigs signs JSON-LD documents and verifies their signatures with the GraphSignature2012,
// LinkedDataSignature2015, EcdsaKoblitzSignature2016 and RsaSignature2017 signature suites.
//
// Every operation is offered synchronously, as a Future and with a callback:
//
//	client, err := jsigs.New()
//
//	signed, err := client.Sign(doc, &jsigs.SignOptions{
//		Algorithm:     "RsaSignature2017",
//		Creator:       "https://example.com/i/alice/keys/1",
//		PrivateKeyPem: privateKeyPem,
//	})
//
//	ok, err := client.VerifyAsync(ctx, signed, &jsigs.VerifyOptions{
//		PublicKey:      keyDocument,
//		PublicKeyOwner: ownerDocument,
//	}).Get(ctx)
package jsigs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/jsonld"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/keyresolver"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/processor"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/proof"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/registry"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/signer"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/verifier"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/signature"
)

// SecurityContextURL is the URL of the security vocabulary context.
const SecurityContextURL = jsonld.SecurityContextURL

var (
	// ErrCancelled is returned when an operation is cancelled through its context.
	ErrCancelled = verifier.ErrCancelled

	// ErrInvalidOptions is returned when signing options are incomplete or do not fit the suite.
	ErrInvalidOptions = signer.ErrInvalidOptions

	// ErrUnknownSuite is returned for a signature type with no registered suite.
	ErrUnknownSuite = api.ErrUnknownSuite

	// ErrMissingSignature is returned when a document to verify has no usable signature.
	ErrMissingSignature = verifier.ErrMissingSignature

	// ErrKeyResolution is returned when the signing key or its owner cannot be resolved.
	ErrKeyResolution = verifier.ErrKeyResolution

	// ErrKeyFormat is returned for malformed key material.
	ErrKeyFormat = signature.ErrKeyFormat

	// ErrCanonicalization is returned when a document cannot be canonicalized.
	ErrCanonicalization = processor.ErrCanonicalization
)

// Signature is the signature node of a signed document.
type Signature = proof.Signature

// SignOptions are the options of a signing operation.
type SignOptions struct {
	// Algorithm is the signature suite, for example "RsaSignature2017".
	Algorithm string
	// Creator is the URI of the public key that verifies the signature.
	Creator string
	// Created defaults to the client clock.
	Created *time.Time
	Domain  string
	Nonce   string
	// PrivateKeyPem is required by the RSA suites.
	PrivateKeyPem string
	// PrivateKeyWif is required by EcdsaKoblitzSignature2016.
	PrivateKeyWif string
}

// VerifyOptions are the options of a verification.
type VerifyOptions struct {
	// PublicKey is the key document of the signature creator. It is loaded when not set.
	PublicKey map[string]interface{}
	// PublicKeyOwner is the document of the key owner. It is loaded when not set.
	PublicKeyOwner map[string]interface{}
	// DocumentLoader overrides the client key document loader.
	DocumentLoader keyresolver.DocumentLoader
}

// Client signs and verifies JSON-LD documents.
type Client struct {
	suites        *registry.Registry
	contextLoader ld.DocumentLoader
	keyLoader     keyresolver.DocumentLoader
	clock         func() time.Time
	signer        *signer.DocumentSigner
}

// Opt configures Client.
type Opt func(c *Client)

// WithRegistry sets the signature suites of the client. Defaults to registry.Default().
func WithRegistry(r *registry.Registry) Opt {
	return func(c *Client) {
		c.suites = r
	}
}

// WithContextLoader sets the loader of JSON-LD contexts. Defaults to an offline loader holding the
// security context.
func WithContextLoader(loader ld.DocumentLoader) Opt {
	return func(c *Client) {
		c.contextLoader = loader
	}
}

// WithKeyLoader sets the loader of key and owner documents not supplied with VerifyOptions.
func WithKeyLoader(loader keyresolver.DocumentLoader) Opt {
	return func(c *Client) {
		c.keyLoader = loader
	}
}

// WithClock sets the source of the default signature creation time.
func WithClock(clock func() time.Time) Opt {
	return func(c *Client) {
		c.clock = clock
	}
}

// New returns a new Client.
func New(opts ...Opt) (*Client, error) {
	c := &Client{clock: time.Now}

	for _, opt := range opts {
		opt(c)
	}

	if c.suites == nil {
		c.suites = registry.Default()
	}

	if c.contextLoader == nil {
		loader, err := jsonld.NewDefaultDocumentLoader()
		if err != nil {
			return nil, fmt.Errorf("create context loader: %w", err)
		}

		c.contextLoader = loader
	}

	c.signer = signer.New(c.suites)

	return c, nil
}

// Registry returns the signature suites of the client.
func (c *Client) Registry() *registry.Registry {
	return c.suites
}

// Sign returns a signed copy of doc.
func (c *Client) Sign(doc map[string]interface{}, opts *SignOptions) (map[string]interface{}, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: sign options are missing", ErrInvalidOptions)
	}

	created := c.clock()
	if opts.Created != nil {
		created = *opts.Created
	}

	return c.signer.SignObject(&signer.Context{
		SignatureType: opts.Algorithm,
		Creator:       opts.Creator,
		PrivateKeyPem: opts.PrivateKeyPem,
		PrivateKeyWif: opts.PrivateKeyWif,
		Created:       &created,
		Domain:        opts.Domain,
		Nonce:         opts.Nonce,
	}, doc, c.processorOpts()...)
}

// Verify reports whether doc carries a valid signature by a key owned by the key owner.
// A signature that does not check out returns false without an error.
func (c *Client) Verify(ctx context.Context, doc map[string]interface{}, opts *VerifyOptions) (bool, error) {
	if opts == nil {
		opts = &VerifyOptions{}
	}

	resolverOpts := []keyresolver.Opt{keyresolver.WithProcessorOptions(c.processorOpts()...)}

	if opts.PublicKey != nil {
		resolverOpts = append(resolverOpts, keyresolver.WithPublicKey(opts.PublicKey))
	}

	if opts.PublicKeyOwner != nil {
		resolverOpts = append(resolverOpts, keyresolver.WithPublicKeyOwner(opts.PublicKeyOwner))
	}

	keyLoader := c.keyLoader
	if opts.DocumentLoader != nil {
		keyLoader = opts.DocumentLoader
	}

	if keyLoader != nil {
		resolverOpts = append(resolverOpts, keyresolver.WithDocumentLoader(keyLoader))
	}

	v, err := verifier.New(keyresolver.New(resolverOpts...), c.suites)
	if err != nil {
		return false, err
	}

	return v.VerifyObject(ctx, doc, c.processorOpts()...)
}

// SignAsync signs doc in the background.
func (c *Client) SignAsync(doc map[string]interface{}, opts *SignOptions) *Future[map[string]interface{}] {
	return Go(func() (map[string]interface{}, error) {
		return c.Sign(doc, opts)
	})
}

// VerifyAsync verifies doc in the background.
func (c *Client) VerifyAsync(ctx context.Context, doc map[string]interface{}, opts *VerifyOptions) *Future[bool] {
	return Go(func() (bool, error) {
		return c.Verify(ctx, doc, opts)
	})
}

// SignWithCallback signs doc in the background and passes the result to callback.
func (c *Client) SignWithCallback(doc map[string]interface{}, opts *SignOptions,
	callback func(map[string]interface{}, error)) {
	c.SignAsync(doc, opts).Then(callback)
}

// VerifyWithCallback verifies doc in the background and passes the result to callback.
func (c *Client) VerifyWithCallback(ctx context.Context, doc map[string]interface{}, opts *VerifyOptions,
	callback func(bool, error)) {
	c.VerifyAsync(ctx, doc, opts).Then(callback)
}

// GetSignature returns the signature node of a signed document.
func (c *Client) GetSignature(doc map[string]interface{}) (*Signature, error) {
	compacted, err := proof.CompactSecurity(doc, c.processorOpts()...)
	if err != nil {
		return nil, err
	}

	return proof.GetSignature(compacted)
}

func (c *Client) processorOpts() []processor.Opts {
	return []processor.Opts{processor.WithDocumentLoader(c.contextLoader)}
}

// IsCancelled reports whether err is the result of a cancelled operation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
