/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package command holds the transport independent controller commands. A command reads a JSON
// request and writes a JSON response; the REST layer and in-process callers share them.
package command

import (
	"context"
	"io"
)

// Exec is controller command execution function type.
type Exec func(rw io.Writer, req io.Reader) Error

// ContextExec is a command that stops when its context is done.
type ContextExec func(ctx context.Context, rw io.Writer, req io.Reader) Error

// Bind returns an Exec running the command with ctx.
func (exec ContextExec) Bind(ctx context.Context) Exec {
	return func(rw io.Writer, req io.Reader) Error {
		return exec(ctx, rw, req)
	}
}

// Handler describes a controller command.
type Handler interface {
	Name() string
	Method() string
	Handle() Exec
}
