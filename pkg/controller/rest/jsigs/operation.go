/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigs

import (
	"net/http"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command"
	jsigscmd "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command/jsigs"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/internal/cmdutil"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/rest"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

// constants for the JSON-LD signature operations.
const (
	OperationID = "/jsigs"
	SignPath    = OperationID + "/sign"
	VerifyPath  = OperationID + "/verify"
)

// Operation contains REST operations provided by the JSON-LD signatures API.
type Operation struct {
	handlers []rest.Handler
	command  *jsigscmd.Command
}

// New returns a new instance of the JSON-LD signatures REST controller.
func New(client *jsigs.Client) *Operation {
	op := &Operation{command: jsigscmd.New(client)}
	op.registerHandlers()

	return op
}

func (o *Operation) registerHandlers() {
	o.handlers = []rest.Handler{
		cmdutil.NewHTTPHandler(SignPath, http.MethodPost, o.Sign),
		cmdutil.NewHTTPHandler(VerifyPath, http.MethodPost, o.Verify),
	}
}

// GetRESTHandlers gets all controller API handlers available for this service.
func (o *Operation) GetRESTHandlers() []rest.Handler {
	return o.handlers
}

// Sign swagger:route POST /jsigs/sign jsigs signReq
//
// Signs a JSON-LD document with one of the registered signature suites.
//
// Responses:
//
//	default: genericError
//	200: signResp
func (o *Operation) Sign(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.Sign, rw, req.Body)
}

// Verify swagger:route POST /jsigs/verify jsigs verifyReq
//
// Verifies the signature of a JSON-LD document. Verification stops when the client goes away.
//
// Responses:
//
//	default: genericError
//	200: verifyResp
func (o *Operation) Verify(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(command.ContextExec(o.command.VerifyWithContext).Bind(req.Context()), rw, req.Body)
}
