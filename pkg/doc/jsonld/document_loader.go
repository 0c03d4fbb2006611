/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonld

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/piprate/json-gold/ld"

	"github.com/hyperledger/aries-framework-go/spi/storage"
)

// ContextsDBName is a name of DB for storing JSON-LD contexts.
const ContextsDBName = "jsigsContexts"

var (
	// ErrContextNotFound is returned when a context is neither stored nor fetchable.
	ErrContextNotFound = errors.New("context document not found")

	// ErrInvalidContext is returned when a context document is not a JSON object with an @context entry.
	ErrInvalidContext = errors.New("invalid context document")
)

// ContextDocument is a JSON-LD context document with associated metadata.
type ContextDocument struct {
	URL         string `json:"url"`                   // URL is a context URL that shows up in the documents.
	DocumentURL string `json:"documentURL,omitempty"` // The final URL of the loaded context document.
	Content     []byte `json:"content"`               // Content of the context document.
}

// storedContext is the record kept per context URL.
type storedContext struct {
	DocumentURL string          `json:"documentUrl"`
	ContextURL  string          `json:"contextUrl,omitempty"`
	Content     json.RawMessage `json:"content"`
}

func (c *storedContext) remoteDocument() (*ld.RemoteDocument, error) {
	doc, err := ld.DocumentFromReader(bytes.NewReader(c.Content))
	if err != nil {
		return nil, fmt.Errorf("parse stored context %s: %w", c.DocumentURL, err)
	}

	return &ld.RemoteDocument{DocumentURL: c.DocumentURL, ContextURL: c.ContextURL, Document: doc}, nil
}

// DocumentLoader is an ld.DocumentLoader reading contexts from a storage.Store.
//
// The embedded contexts, plus any set with WithExtraContexts(), are written to the store on creation.
// A context missing from the store is fetched with the loader set by WithRemoteDocumentLoader() and
// kept for later calls. Without a remote loader, missing contexts fail with ErrContextNotFound.
type DocumentLoader struct {
	store  storage.Store
	remote ld.DocumentLoader
}

type documentLoaderOpts struct {
	dbName               string
	remoteDocumentLoader ld.DocumentLoader
	extraContexts        []ContextDocument
}

// DocumentLoaderOpts configures DocumentLoader during creation.
type DocumentLoaderOpts func(opts *documentLoaderOpts)

// WithExtraContexts sets the extra contexts (in addition to embedded) for preloading into the underlying storage.
func WithExtraContexts(contexts ...ContextDocument) DocumentLoaderOpts {
	return func(opts *documentLoaderOpts) {
		opts.extraContexts = append(opts.extraContexts, contexts...)
	}
}

// WithRemoteDocumentLoader specifies loader for fetching JSON-LD context documents from remote URLs.
func WithRemoteDocumentLoader(loader ld.DocumentLoader) DocumentLoaderOpts {
	return func(opts *documentLoaderOpts) {
		opts.remoteDocumentLoader = loader
	}
}

// WithContextDBName overrides the name of the store the contexts are kept in.
func WithContextDBName(name string) DocumentLoaderOpts {
	return func(opts *documentLoaderOpts) {
		opts.dbName = name
	}
}

// NewDocumentLoader opens the context store of storageProvider and preloads it.
func NewDocumentLoader(storageProvider storage.Provider, opts ...DocumentLoaderOpts) (*DocumentLoader, error) {
	options := &documentLoaderOpts{dbName: ContextsDBName}

	for _, opt := range opts {
		opt(options)
	}

	store, err := storageProvider.OpenStore(options.dbName)
	if err != nil {
		return nil, fmt.Errorf("open context store %s: %w", options.dbName, err)
	}

	if err = preload(store, append(append([]ContextDocument{}, EmbedContexts...), options.extraContexts...)); err != nil {
		return nil, err
	}

	return &DocumentLoader{store: store, remote: options.remoteDocumentLoader}, nil
}

func preload(store storage.Store, docs []ContextDocument) error {
	ops := make([]storage.Operation, 0, len(docs))

	for _, doc := range docs {
		if err := validateContext(doc.Content); err != nil {
			return fmt.Errorf("preload %s: %w", doc.URL, err)
		}

		documentURL := doc.DocumentURL
		if documentURL == "" {
			documentURL = doc.URL
		}

		b, err := json.Marshal(&storedContext{DocumentURL: documentURL, Content: doc.Content})
		if err != nil {
			return fmt.Errorf("preload %s: %w", doc.URL, err)
		}

		ops = append(ops, storage.Operation{Key: doc.URL, Value: b})
	}

	if err := store.Batch(ops); err != nil {
		return fmt.Errorf("preload contexts: %w", err)
	}

	return nil
}

func validateContext(content []byte) error {
	var doc map[string]json.RawMessage

	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}

	if _, ok := doc["@context"]; !ok {
		return fmt.Errorf("%w: no @context entry", ErrInvalidContext)
	}

	return nil
}

// LoadDocument returns the context stored under u, fetching and storing it first when a remote
// loader is configured.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	b, err := l.store.Get(u)

	switch {
	case err == nil:
		var c storedContext

		if err = json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("read stored context %s: %w", u, err)
		}

		return c.remoteDocument()
	case !errors.Is(err, storage.ErrDataNotFound):
		return nil, fmt.Errorf("get context %s from store: %w", u, err)
	case l.remote == nil:
		return nil, fmt.Errorf("%w: %s", ErrContextNotFound, u)
	}

	return l.fetch(u)
}

func (l *DocumentLoader) fetch(u string) (*ld.RemoteDocument, error) {
	rd, err := l.remote.LoadDocument(u)
	if err != nil {
		return nil, fmt.Errorf("load remote context %s: %w", u, err)
	}

	content, err := json.Marshal(rd.Document)
	if err != nil {
		return nil, fmt.Errorf("encode remote context %s: %w", u, err)
	}

	documentURL := rd.DocumentURL
	if documentURL == "" {
		documentURL = u
	}

	b, err := json.Marshal(&storedContext{DocumentURL: documentURL, ContextURL: rd.ContextURL, Content: content})
	if err != nil {
		return nil, fmt.Errorf("encode remote context %s: %w", u, err)
	}

	if err = l.store.Put(u, b); err != nil {
		return nil, fmt.Errorf("save remote context %s: %w", u, err)
	}

	return rd, nil
}
