/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyresolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"
)

// DocumentLoaderFunc adapts a function to DocumentLoader.
type DocumentLoaderFunc func(ctx context.Context, uri string) (map[string]interface{}, error)

// LoadDocument calls f.
func (f DocumentLoaderFunc) LoadDocument(ctx context.Context, uri string) (map[string]interface{}, error) {
	return f(ctx, uri)
}

// MemoryLoader serves documents kept in memory, keyed by URI.
type MemoryLoader struct {
	mutex sync.RWMutex
	docs  map[string]map[string]interface{}
}

// NewMemoryLoader returns a MemoryLoader holding docs under their "id" (or "@id").
func NewMemoryLoader(docs ...map[string]interface{}) *MemoryLoader {
	l := &MemoryLoader{docs: make(map[string]map[string]interface{})}

	for _, doc := range docs {
		l.Add(documentID(doc), doc)
	}

	return l
}

// Add stores doc under uri.
func (l *MemoryLoader) Add(uri string, doc map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.docs[uri] = doc
}

// LoadDocument returns the document stored under uri or ErrDocumentNotFound.
func (l *MemoryLoader) LoadDocument(ctx context.Context, uri string) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	doc, ok := l.docs[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	return doc, nil
}

func documentID(doc map[string]interface{}) string {
	if id, ok := doc[jsonldID].(string); ok {
		return id
	}

	if id, ok := doc["@id"].(string); ok {
		return id
	}

	return ""
}

// LDLoader adapts a json-gold document loader. The json-gold call cannot be interrupted, so a cancelled
// context returns immediately and leaves the call to finish in the background.
type LDLoader struct {
	loader ld.DocumentLoader
}

// NewLDLoader returns a DocumentLoader backed by a json-gold document loader.
func NewLDLoader(loader ld.DocumentLoader) *LDLoader {
	return &LDLoader{loader: loader}
}

type loadResult struct {
	doc *ld.RemoteDocument
	err error
}

// LoadDocument loads uri with the json-gold loader.
func (l *LDLoader) LoadDocument(ctx context.Context, uri string) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resultChan := make(chan loadResult, 1)

	go func() {
		rd, err := l.loader.LoadDocument(uri)
		resultChan <- loadResult{doc: rd, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDocumentNotFound, uri, res.err)
		}

		doc, ok := res.doc.Document.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("document %s is not a JSON object", uri)
		}

		return doc, nil
	}
}
