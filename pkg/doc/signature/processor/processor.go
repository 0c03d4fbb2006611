/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package processor canonicalizes and compacts JSON-LD documents with json-gold.
package processor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/maphelpers"
)

const (
	// AlgorithmURGNA2012 is the universal RDF graph normalization algorithm 2012.
	AlgorithmURGNA2012 = "URGNA2012"
	// AlgorithmURDNA2015 is the universal RDF dataset normalization algorithm 2015.
	AlgorithmURDNA2015 = "URDNA2015"

	format           = "application/n-quads"
	defaultAlgorithm = AlgorithmURDNA2015
	invalidQuadErr   = "error while parsing N-Quads; invalid quad. line:"
	undefinedTermIRI = "urn:jsigs:undefined-term:"
)

var logger = log.New("aries-framework/jsigs/processor")

var (
	// ErrCanonicalization is returned when a document cannot be canonicalized or compacted.
	ErrCanonicalization = errors.New("canonicalization failed")

	// ErrInvalidRDFFound is returned when the normalized view contains invalid RDF.
	ErrInvalidRDFFound = errors.New("invalid RDF dataset")

	// ErrUndefinedTerm is returned when a document property does not expand to an IRI.
	ErrUndefinedTerm = errors.New("undefined JSON-LD term")
)

// processorOpts holds options for canonicalization of JSON LD docs.
type processorOpts struct {
	validateRDF      bool
	documentLoader   ld.DocumentLoader
	externalContexts []string
}

// Opts are the options for JSON LD operations on docs (like canonicalization or compacting).
type Opts func(opts *processorOpts)

// WithDocumentLoader option is for passing custom JSON-LD document loader.
func WithDocumentLoader(loader ld.DocumentLoader) Opts {
	return func(opts *processorOpts) {
		opts.documentLoader = loader
	}
}

// WithExternalContext option is for definition of external context when doing JSON-LD operations.
func WithExternalContext(context ...string) Opts {
	return func(opts *processorOpts) {
		opts.externalContexts = append(opts.externalContexts, context...)
	}
}

// WithValidateRDF makes GetCanonicalDocument fail with ErrInvalidRDFFound when the normalized view
// contains an invalid quad.
func WithValidateRDF() Opts {
	return func(opts *processorOpts) {
		opts.validateRDF = true
	}
}

// Processor is a JSON-LD processor bound to one RDF dataset normalization algorithm.
type Processor struct {
	algorithm string
}

// NewProcessor returns new JSON-LD processor for the given normalization algorithm.
func NewProcessor(algorithm string) *Processor {
	if algorithm == "" {
		return Default()
	}

	return &Processor{algorithm}
}

// Default returns new JSON-LD processor with default RDF dataset algorithm.
func Default() *Processor {
	return &Processor{defaultAlgorithm}
}

// Algorithm returns the normalization algorithm identifier.
func (p *Processor) Algorithm() string {
	return p.algorithm
}

// GetCanonicalDocument returns the N-Quads canonical form of doc. The input map is not modified.
func (p *Processor) GetCanonicalDocument(doc map[string]interface{}, opts ...Opts) ([]byte, error) {
	procOptions := prepareOpts(opts)

	ldOptions := p.newLDOptions(procOptions)
	ldOptions.Algorithm = p.algorithm

	input := maphelpers.CopyMap(doc)

	if len(procOptions.externalContexts) > 0 {
		input["@context"] = AppendExternalContexts(input["@context"], procOptions.externalContexts...)
	}

	view, err := ld.NewJsonLdProcessor().Normalize(input, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize JSON-LD document: %w", ErrCanonicalization, err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, fmt.Errorf("%w: normalize JSON-LD document, invalid view", ErrCanonicalization)
	}

	if procOptions.validateRDF {
		if err = checkRDF(result); err != nil {
			return nil, err
		}
	}

	return []byte(result), nil
}

// CheckTerms fails with ErrUndefinedTerm when a property of doc is not defined by its context.
// Expansion silently drops such properties, so they would not be covered by a signature.
func (p *Processor) CheckTerms(doc map[string]interface{}, opts ...Opts) error {
	procOptions := prepareOpts(opts)

	ldOptions := p.newLDOptions(procOptions)
	ldOptions.ExpandContext = map[string]interface{}{
		"@context": map[string]interface{}{"@vocab": undefinedTermIRI},
	}

	input := maphelpers.CopyMap(doc)

	if len(procOptions.externalContexts) > 0 {
		input["@context"] = AppendExternalContexts(input["@context"], procOptions.externalContexts...)
	}

	expanded, err := ld.NewJsonLdProcessor().Expand(input, ldOptions)
	if err != nil {
		return fmt.Errorf("%w: expand JSON-LD document: %w", ErrCanonicalization, err)
	}

	found := make(map[string]bool)

	visitJSONArray(expanded, func(key string) {
		if strings.HasPrefix(key, undefinedTermIRI) {
			found[strings.TrimPrefix(key, undefinedTermIRI)] = true
		}
	})

	if len(found) == 0 {
		return nil
	}

	terms := maps.Keys(found)
	slices.Sort(terms)

	logger.Debugf("undefined terms: %v", terms)

	return fmt.Errorf("%w: %w: %s", ErrCanonicalization, ErrUndefinedTerm, strings.Join(terms, ", "))
}

func visitJSONArray(a []interface{}, visitFunc func(key string)) {
	for _, v := range a {
		switch kv := v.(type) {
		case []interface{}:
			visitJSONArray(kv, visitFunc)
		case map[string]interface{}:
			visitJSONMap(kv, visitFunc)
		}
	}
}

func visitJSONMap(m map[string]interface{}, visitFunc func(key string)) {
	for k, v := range m {
		if k == "@type" || k == "@value" {
			continue
		}

		visitFunc(k)

		switch kv := v.(type) {
		case []interface{}:
			visitJSONArray(kv, visitFunc)
		case map[string]interface{}:
			visitJSONMap(kv, visitFunc)
		}
	}
}

// AppendExternalContexts appends external context(s) to the JSON-LD context which can have one
// or several contexts already.
func AppendExternalContexts(context interface{}, extraContexts ...string) []interface{} {
	var contexts []interface{}

	switch c := context.(type) {
	case string:
		contexts = append(contexts, c)
	case map[string]interface{}:
		contexts = append(contexts, c)
	case []interface{}:
		contexts = append(contexts, c...)
	}

	for i := range extraContexts {
		if containsContext(contexts, extraContexts[i]) {
			continue
		}

		contexts = append(contexts, extraContexts[i])
	}

	return contexts
}

func containsContext(contexts []interface{}, url string) bool {
	for _, c := range contexts {
		if s, ok := c.(string); ok && s == url {
			return true
		}
	}

	return false
}

// Compact compacts given json ld object. If context is nil the input's own context (plus any external
// contexts) is used. The input map is not modified.
func (p *Processor) Compact(input, context map[string]interface{},
	opts ...Opts) (map[string]interface{}, error) {
	procOptions := prepareOpts(opts)

	ldOptions := p.newLDOptions(procOptions)

	in := maphelpers.CopyMap(input)

	if context == nil {
		inputContext := in["@context"]

		if len(procOptions.externalContexts) > 0 {
			inputContext = AppendExternalContexts(inputContext, procOptions.externalContexts...)
			in["@context"] = inputContext
		}

		context = map[string]interface{}{"@context": inputContext}
	}

	compacted, err := ld.NewJsonLdProcessor().Compact(in, context, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: compact JSON-LD document: %w", ErrCanonicalization, err)
	}

	return compacted, nil
}

func (p *Processor) newLDOptions(procOptions *processorOpts) *ld.JsonLdOptions {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Format = format
	ldOptions.ProduceGeneralizedRdf = true
	ldOptions.DocumentLoader = procOptions.documentLoader

	return ldOptions
}

// checkRDF fails if any line of the normalized view is not a valid N-Quad. json-gold emits such
// lines for terms that do not expand to IRIs, which would otherwise be silently left out of a signature.
func checkRDF(view string) error {
	for i, quad := range strings.Split(view, "\n") {
		if _, err := ld.ParseNQuads(quad); err != nil {
			if !strings.Contains(err.Error(), invalidQuadErr) {
				return fmt.Errorf("%w: %w", ErrCanonicalization, err)
			}

			logger.Debugf("invalid RDF at line %d: %s", i+1, quad)

			return fmt.Errorf("%w: %w: line %d", ErrCanonicalization, ErrInvalidRDFFound, i+1)
		}
	}

	return nil
}

// prepareOpts prepare processorOpts from given Opts arguments.
func prepareOpts(opts []Opts) *processorOpts {
	procOpts := &processorOpts{}

	for _, opt := range opts {
		opt(procOpts)
	}

	return procOpts
}
