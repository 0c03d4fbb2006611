/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package controller

import (
	"errors"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command"
	jsigscmd "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command/jsigs"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/internal/cmdutil"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/rest"
	jsigsrest "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/rest/jsigs"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

// RequestIDHeader is the header carrying the correlation id of REST requests.
const RequestIDHeader = cmdutil.RequestIDHeader

var errMissingClient = errors.New("jsigs client is required")

// GetRESTHandlers returns all REST handlers provided by controller.
func GetRESTHandlers(client *jsigs.Client) ([]rest.Handler, error) {
	if client == nil {
		return nil, errMissingClient
	}

	return jsigsrest.New(client).GetRESTHandlers(), nil
}

// GetCommandHandlers returns all command handlers provided by controller.
func GetCommandHandlers(client *jsigs.Client) ([]command.Handler, error) {
	if client == nil {
		return nil, errMissingClient
	}

	return jsigscmd.New(client).GetHandlers(), nil
}
