/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsigs

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-framework-go/component/jsigs/internal/jsonldtest"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/controller/command"
	"github.com/hyperledger/aries-framework-go/component/jsigs/pkg/jsigs"
)

func newCommand(t *testing.T) *Command {
	t.Helper()

	client, err := jsigs.New()
	require.NoError(t, err)

	return New(client)
}

func encode(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewBuffer(b)
}

func signRequest(t *testing.T) *SignRequest {
	t.Helper()

	return &SignRequest{
		Document: jsonldtest.ParseDocument(t, jsonldtest.Document),
		Options: &SignOptions{
			Algorithm:     "RsaSignature2017",
			Creator:       jsonldtest.PublicKeyURL,
			PrivateKeyPem: jsonldtest.PrivateKeyPem,
		},
	}
}

func TestCommand_GetHandlers(t *testing.T) {
	handlers := newCommand(t).GetHandlers()
	require.Len(t, handlers, 2)

	for _, h := range handlers {
		require.Equal(t, CommandName, h.Name())
		require.NotNil(t, h.Handle())
	}

	require.Equal(t, SignCommandMethod, handlers[0].Method())
	require.Equal(t, VerifyCommandMethod, handlers[1].Method())
}

func TestCommand_SignAndVerify(t *testing.T) {
	cmd := newCommand(t)

	var signed bytes.Buffer

	cmdErr := cmd.Sign(&signed, encode(t, signRequest(t)))
	require.NoError(t, cmdErr)

	var signResp SignResponse
	require.NoError(t, json.Unmarshal(signed.Bytes(), &signResp))
	require.Contains(t, signResp.Document, "https://w3id.org/security#signature")

	verifyReq := &VerifyRequest{
		Document:       signResp.Document,
		PublicKey:      jsonldtest.PublicKeyDocument(jsonldtest.PublicKeyPem),
		PublicKeyOwner: jsonldtest.OwnerDocument(jsonldtest.PublicKeyURL),
	}

	var verified bytes.Buffer

	cmdErr = cmd.Verify(&verified, encode(t, verifyReq))
	require.NoError(t, cmdErr)

	var verifyResp VerifyResponse
	require.NoError(t, json.Unmarshal(verified.Bytes(), &verifyResp))
	require.True(t, verifyResp.Verified)

	t.Run("tampered document", func(t *testing.T) {
		verifyReq.Document["name"] = "Someone Else"

		var b bytes.Buffer

		cmdErr := cmd.Verify(&b, encode(t, verifyReq))
		require.NoError(t, cmdErr)

		var resp VerifyResponse
		require.NoError(t, json.Unmarshal(b.Bytes(), &resp))
		require.False(t, resp.Verified)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var b bytes.Buffer

		cmdErr := cmd.VerifyWithContext(ctx, &b, encode(t, verifyReq))
		require.Error(t, cmdErr)
		require.Equal(t, VerifyErrorCode, cmdErr.Code())
		require.Equal(t, command.ExecuteError, cmdErr.Type())
		require.ErrorIs(t, cmdErr, jsigs.ErrCancelled)
	})
}

func TestCommand_SignErrors(t *testing.T) {
	cmd := newCommand(t)

	t.Run("invalid request", func(t *testing.T) {
		var b bytes.Buffer

		cmdErr := cmd.Sign(&b, bytes.NewBufferString("{"))
		require.Error(t, cmdErr)
		require.Equal(t, InvalidRequestErrorCode, cmdErr.Code())
		require.Equal(t, command.ValidationError, cmdErr.Type())
	})

	t.Run("missing document", func(t *testing.T) {
		req := signRequest(t)
		req.Document = nil

		var b bytes.Buffer

		cmdErr := cmd.Sign(&b, encode(t, req))
		require.Error(t, cmdErr)
		require.Contains(t, cmdErr.Error(), "document is required")
	})

	t.Run("missing options", func(t *testing.T) {
		req := signRequest(t)
		req.Options = nil

		var b bytes.Buffer

		cmdErr := cmd.Sign(&b, encode(t, req))
		require.Error(t, cmdErr)
		require.Equal(t, SignErrorCode, cmdErr.Code())
		require.Equal(t, command.ValidationError, cmdErr.Type())
		require.ErrorIs(t, cmdErr, jsigs.ErrInvalidOptions)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		req := signRequest(t)
		req.Options.Algorithm = "Ed25519Signature2018"

		var b bytes.Buffer

		cmdErr := cmd.Sign(&b, encode(t, req))
		require.Error(t, cmdErr)
		require.ErrorIs(t, cmdErr, jsigs.ErrUnknownSuite)
	})
}

func TestCommand_VerifyErrors(t *testing.T) {
	cmd := newCommand(t)

	t.Run("invalid request", func(t *testing.T) {
		var b bytes.Buffer

		cmdErr := cmd.Verify(&b, bytes.NewBufferString("[]"))
		require.Error(t, cmdErr)
		require.Equal(t, InvalidRequestErrorCode, cmdErr.Code())
	})

	t.Run("missing document", func(t *testing.T) {
		var b bytes.Buffer

		cmdErr := cmd.Verify(&b, encode(t, &VerifyRequest{}))
		require.Error(t, cmdErr)
		require.Contains(t, cmdErr.Error(), "document is required")
	})

	t.Run("unsigned document", func(t *testing.T) {
		var b bytes.Buffer

		cmdErr := cmd.Verify(&b, encode(t, &VerifyRequest{
			Document: jsonldtest.ParseDocument(t, jsonldtest.Document),
		}))
		require.Error(t, cmdErr)
		require.Equal(t, VerifyErrorCode, cmdErr.Code())
		require.Equal(t, command.ValidationError, cmdErr.Type())
		require.ErrorIs(t, cmdErr, jsigs.ErrMissingSignature)
	})
}
