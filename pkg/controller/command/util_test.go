/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Panicf(msg string, args ...interface{}) {}
func (l *recordingLogger) Fatalf(msg string, args ...interface{}) {}
func (l *recordingLogger) Warnf(msg string, args ...interface{})  {}
func (l *recordingLogger) Infof(msg string, args ...interface{})  {}
func (l *recordingLogger) Debugf(msg string, args ...interface{}) {}

func (l *recordingLogger) Errorf(msg string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(msg, args...))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection closed")
}

func TestWriteResponse(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		var b bytes.Buffer

		require.NoError(t, WriteResponse(&b, map[string]bool{"verified": true}, &recordingLogger{}))
		require.Equal(t, "{\"verified\":true}\n", b.String())
	})

	t.Run("nil is an empty object", func(t *testing.T) {
		var b bytes.Buffer

		require.NoError(t, WriteResponse(&b, nil, &recordingLogger{}))
		require.Equal(t, "{}\n", b.String())
	})

	t.Run("encode failure writes nothing", func(t *testing.T) {
		var b bytes.Buffer

		l := &recordingLogger{}

		err := WriteResponse(&b, map[string]interface{}{"ch": make(chan int)}, l)
		require.Error(t, err)
		require.Contains(t, err.Error(), "encode response")
		require.Empty(t, b.String())
		require.Len(t, l.errors, 1)
	})

	t.Run("write failure", func(t *testing.T) {
		l := &recordingLogger{}

		err := WriteResponse(failingWriter{}, map[string]bool{"verified": true}, l)
		require.Error(t, err)
		require.Contains(t, err.Error(), "connection closed")
		require.Len(t, l.errors, 1)
	})
}

func TestCommandError(t *testing.T) {
	cause := errors.New("cause")

	validation := NewValidationError(Code(JSigs), cause)
	require.Equal(t, ValidationError, validation.Type())
	require.Equal(t, Code(JSigs), validation.Code())
	require.ErrorIs(t, validation, cause)

	execute := NewExecuteError(UnknownStatus, cause)
	require.Equal(t, ExecuteError, execute.Type())
	require.EqualError(t, execute, "cause")
}

func TestErrorType(t *testing.T) {
	require.Equal(t, "validation", ValidationError.String())
	require.Equal(t, "execute", ExecuteError.String())
	require.Equal(t, "unknown", Type(7).String())
}

func TestContextExec_Bind(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "request-1")

	exec := ContextExec(func(ctx context.Context, rw io.Writer, req io.Reader) Error {
		_, err := rw.Write([]byte(ctx.Value(key{}).(string)))
		if err != nil {
			return NewExecuteError(UnknownStatus, err)
		}

		return nil
	}).Bind(ctx)

	var b bytes.Buffer

	require.Nil(t, exec(&b, nil))
	require.Equal(t, "request-1", b.String())
}
