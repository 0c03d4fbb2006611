/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigs

import (
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command/jsigs"
)

// signReq model for signing a JSON-LD document.
//
// swagger:parameters signReq
type signReq struct { //nolint: unused,deadcode
	// in: body
	Body jsigs.SignRequest
}

// signResp model returned by the sign operation.
//
// swagger:response signResp
type signResp struct { //nolint: unused,deadcode
	// in: body
	Body jsigs.SignResponse
}

// verifyReq model for verifying a signed JSON-LD document.
//
// swagger:parameters verifyReq
type verifyReq struct { //nolint: unused,deadcode
	// in: body
	Body jsigs.VerifyRequest
}

// verifyResp model returned by the verify operation.
//
// swagger:response verifyResp
type verifyResp struct { //nolint: unused,deadcode
	// in: body
	Body jsigs.VerifyResponse
}
