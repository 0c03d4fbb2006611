/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package command

// Type classifies command errors. The REST layer maps it to the HTTP status.
type Type int32

const (
	// ValidationError means the request was rejected; repeating it unchanged fails again.
	ValidationError Type = iota

	// ExecuteError means the command failed while running.
	ExecuteError
)

func (t Type) String() string {
	switch t {
	case ValidationError:
		return "validation"
	case ExecuteError:
		return "execute"
	default:
		return "unknown"
	}
}

// Code is the error code of command errors.
type Code int32

// UnknownStatus is the code of errors without a specific code.
const UnknownStatus Code = 0

// Group is the first code of a range of codes owned by one command. Groups are multiples of 1000.
type Group int32

// JSigs error group for JSON-LD signature command errors.
const JSigs Group = 2000

// Error is a command failure carrying a code and a type.
type Error interface {
	error
	Code() Code
	Type() Type
}

// NewValidationError returns new command validation error.
func NewValidationError(code Code, err error) Error {
	return &commandError{err: err, code: code, errType: ValidationError}
}

// NewExecuteError returns new command execute error.
func NewExecuteError(code Code, err error) Error {
	return &commandError{err: err, code: code, errType: ExecuteError}
}

type commandError struct {
	err     error
	code    Code
	errType Type
}

func (c *commandError) Error() string {
	return c.err.Error()
}

func (c *commandError) Code() Code {
	return c.code
}

func (c *commandError) Type() Type {
	return c.errType
}

func (c *commandError) Unwrap() error {
	return c.err
}
