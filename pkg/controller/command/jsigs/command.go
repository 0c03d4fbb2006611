/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/internal/cmdutil"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/internal/logutil"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

const (
	// InvalidRequestErrorCode is an error code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.JSigs)

	// SignErrorCode is an error code for Sign command.
	SignErrorCode

	// VerifyErrorCode is an error code for Verify command.
	VerifyErrorCode
)

const (
	// CommandName is a base command name for JSON-LD signature operations.
	CommandName = "jsigs"

	// SignCommandMethod is a command method for signing a document.
	SignCommandMethod = "Sign"

	// VerifyCommandMethod is a command method for verifying a document.
	VerifyCommandMethod = "Verify"
)

var logger = log.New("aries-framework/jsigs/command")

// Command contains command operations.
type Command struct {
	client *jsigs.Client
}

// New returns a new JSON-LD signature command instance.
func New(client *jsigs.Client) *Command {
	return &Command{client: client}
}

// GetHandlers returns list of all commands supported by this controller command.
func (c *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, SignCommandMethod, c.Sign),
		cmdutil.NewCommandHandler(CommandName, VerifyCommandMethod, c.Verify),
	}
}

// Sign command signs the request document.
func (c *Command) Sign(w io.Writer, r io.Reader) command.Error {
	var req SignRequest

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return commandError(SignCommandMethod, InvalidRequestErrorCode, fmt.Errorf("decode request: %w", err))
	}

	if req.Document == nil {
		return commandError(SignCommandMethod, InvalidRequestErrorCode, errors.New("document is required"))
	}

	var opts *jsigs.SignOptions

	if req.Options != nil {
		opts = &jsigs.SignOptions{
			Algorithm:     req.Options.Algorithm,
			Creator:       req.Options.Creator,
			Created:       req.Options.Created,
			Domain:        req.Options.Domain,
			Nonce:         req.Options.Nonce,
			PrivateKeyPem: req.Options.PrivateKeyPem,
			PrivateKeyWif: req.Options.PrivateKeyWif,
		}
	}

	signed, err := c.client.Sign(req.Document, opts)
	if err != nil {
		return commandError(SignCommandMethod, SignErrorCode, fmt.Errorf("sign document: %w", err))
	}

	if err = command.WriteResponse(w, &SignResponse{Document: signed}, logger); err != nil {
		return command.NewExecuteError(SignErrorCode, err)
	}

	logutil.LogDebug(logger, CommandName, SignCommandMethod, "success",
		logutil.Field("algorithm", opts.Algorithm), logutil.Field("creator", opts.Creator))

	return nil
}

// Verify command verifies the signature of the request document.
func (c *Command) Verify(w io.Writer, r io.Reader) command.Error {
	return c.VerifyWithContext(context.Background(), w, r)
}

// VerifyWithContext verifies the signature of the request document. Key resolution stops when ctx is done.
func (c *Command) VerifyWithContext(ctx context.Context, w io.Writer, r io.Reader) command.Error {
	var req VerifyRequest

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return commandError(VerifyCommandMethod, InvalidRequestErrorCode, fmt.Errorf("decode request: %w", err))
	}

	if req.Document == nil {
		return commandError(VerifyCommandMethod, InvalidRequestErrorCode, errors.New("document is required"))
	}

	verified, err := c.client.Verify(ctx, req.Document, &jsigs.VerifyOptions{
		PublicKey:      req.PublicKey,
		PublicKeyOwner: req.PublicKeyOwner,
	})
	if err != nil {
		return commandError(VerifyCommandMethod, VerifyErrorCode, fmt.Errorf("verify document: %w", err))
	}

	if err = command.WriteResponse(w, &VerifyResponse{Verified: verified}, logger); err != nil {
		return command.NewExecuteError(VerifyErrorCode, err)
	}

	logutil.LogDebug(logger, CommandName, VerifyCommandMethod, "success", logutil.Field("verified", verified))

	return nil
}

// commandError logs err and classifies it: problems with the caller's input are validation errors.
func commandError(method string, code command.Code, err error) command.Error {
	logutil.LogError(logger, CommandName, method, err)

	if code == InvalidRequestErrorCode || isInputError(err) {
		return command.NewValidationError(code, err)
	}

	return command.NewExecuteError(code, err)
}

func isInputError(err error) bool {
	for _, inputErr := range []error{
		jsigs.ErrInvalidOptions,
		jsigs.ErrUnknownSuite,
		jsigs.ErrMissingSignature,
		jsigs.ErrKeyResolution,
		jsigs.ErrKeyFormat,
		jsigs.ErrCanonicalization,
	} {
		if errors.Is(err, inputErr) {
			return true
		}
	}

	return false
}
