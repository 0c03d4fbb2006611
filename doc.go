/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jsigs enables Go developers to sign and verify JSON-LD documents with the Linked Data
// signature suites GraphSignature2012, LinkedDataSignature2015, EcdsaKoblitzSignature2016 and
// RsaSignature2017.
//
// # Packages for end developer usage
//
// pkg/jsigs: The main package. A Client signs and verifies documents synchronously, through a Future
// or with a callback.
// Reference: https://pkg.go.dev/github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs
//
// pkg/doc/signature/registry: The signature suites known to a Client. Callers may register their own suites.
//
// pkg/doc/signature/keyresolver: Resolves the public key and key owner documents of a signature creator.
//
// pkg/controller/rest/jsigs: Provides the sign and verify operations through a REST API.
//
// Basic workflow
//
//  1. Create a Client using jsigs.New, optionally with a registry, context loader and key loader.
//  2. Sign a document with Client.Sign, passing the suite, creator and private key.
//  3. Verify a signed document with Client.Verify, passing the key documents or relying on the key loader.
package jsigs
