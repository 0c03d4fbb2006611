/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cmdutil builds the REST and command handlers of the controllers.
package cmdutil

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command"
)

// RequestIDHeader carries the correlation id of a request. It is echoed in the response and generated
// when the client does not send one.
const RequestIDHeader = "X-Request-ID"

// HTTPHandler routes one HTTP method and path to a handler func.
type HTTPHandler struct {
	path, method string
	handle       http.HandlerFunc
}

// NewHTTPHandler returns the REST handler of method and path. Every request gets a request id.
func NewHTTPHandler(path, method string, handle http.HandlerFunc) *HTTPHandler {
	return &HTTPHandler{path: path, method: method, handle: withRequestID(handle)}
}

// Path returns http request path.
func (h *HTTPHandler) Path() string { return h.path }

// Method returns http request method type.
func (h *HTTPHandler) Method() string { return h.method }

// Handle returns http request handle func.
func (h *HTTPHandler) Handle() http.HandlerFunc { return h.handle }

func withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			req.Header.Set(RequestIDHeader, id)
		}

		rw.Header().Set(RequestIDHeader, id)

		next(rw, req)
	}
}

// CommandHandler binds a command name and method to its Exec.
type CommandHandler struct {
	name, method string
	exec         command.Exec
}

// NewCommandHandler returns the handler of a controller command.
func NewCommandHandler(name, method string, exec command.Exec) *CommandHandler {
	return &CommandHandler{name: name, method: method, exec: exec}
}

// Name of the command.
func (c *CommandHandler) Name() string { return c.name }

// Method name of the command.
func (c *CommandHandler) Method() string { return c.method }

// Handle returns execute function of the command handler.
func (c *CommandHandler) Handle() command.Exec { return c.exec }
