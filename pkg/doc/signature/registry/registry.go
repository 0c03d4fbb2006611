/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package registry keeps the signature suites available to signing and verification, keyed by signature type.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/api"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite/ecdsakoblitzsignature2016"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite/graphsignature2012"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite/linkeddatasignature2015"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/signature/suite/rsasignature2017"
)

var logger = log.New("aries-framework/jsigs/registry")

// ErrDuplicateSuite is returned when a suite is registered for a signature type that already has one.
var ErrDuplicateSuite = errors.New("signature suite already registered")

// ErrUnknownSuite is returned when no suite is registered for a signature type.
var ErrUnknownSuite = api.ErrUnknownSuite

// Registry maps signature types to signature suites. It is safe for concurrent use.
type Registry struct {
	mutex  sync.RWMutex
	suites map[string]api.SignatureSuite
}

type registerOpts struct {
	override bool
}

// RegisterOpt configures Register.
type RegisterOpt func(opts *registerOpts)

// WithOverride replaces an already registered suite of the same signature type.
func WithOverride() RegisterOpt {
	return func(opts *registerOpts) {
		opts.override = true
	}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{suites: make(map[string]api.SignatureSuite)}
}

// Default returns a new registry populated with the built-in suites: GraphSignature2012,
// LinkedDataSignature2015, EcdsaKoblitzSignature2016 and RsaSignature2017.
func Default(opts ...suite.Opt) *Registry {
	r := New()

	for _, s := range BuiltIn(opts...) {
		// a fresh registry has no duplicates
		_ = r.Register(s) //nolint:errcheck
	}

	return r
}

// BuiltIn returns new instances of the built-in suites.
func BuiltIn(opts ...suite.Opt) []api.SignatureSuite {
	return []api.SignatureSuite{
		graphsignature2012.New(opts...),
		linkeddatasignature2015.New(opts...),
		ecdsakoblitzsignature2016.New(opts...),
		rsasignature2017.New(opts...),
	}
}

// Register adds a suite under its signature type.
func (r *Registry) Register(s api.SignatureSuite, opts ...RegisterOpt) error {
	if s == nil {
		return errors.New("signature suite is nil")
	}

	options := &registerOpts{}

	for _, opt := range opts {
		opt(options)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.suites[s.Type()]; ok {
		if !options.override {
			return fmt.Errorf("%w: %s", ErrDuplicateSuite, s.Type())
		}

		logger.Infof("replacing signature suite %s", s.Type())
	}

	r.suites[s.Type()] = s

	return nil
}

// Resolve returns the suite registered for signatureType.
func (r *Registry) Resolve(signatureType string) (api.SignatureSuite, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	s, ok := r.suites[signatureType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSuite, signatureType)
	}

	return s, nil
}

// Types returns the registered signature types in sorted order.
func (r *Registry) Types() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	types := maps.Keys(r.suites)
	slices.Sort(types)

	return types
}
