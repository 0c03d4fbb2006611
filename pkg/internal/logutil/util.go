/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logutil formats the log lines of controller commands.
package logutil

import (
	"fmt"
	"strings"

	"github.com/hyperledger/aries-framework-go/spi/log"
)

// LogError logs a failed command action.
func LogError(logger log.Logger, command, action string, err error, fields ...string) {
	logger.Errorf("command=[%s] action=[%s]%s errMsg=[%s]", command, action, join(fields), err)
}

// LogDebug logs a command action.
func LogDebug(logger log.Logger, command, action, msg string, fields ...string) {
	logger.Debugf("command=[%s] action=[%s]%s msg=[%s]", command, action, join(fields), msg)
}

// Field renders a key value pair as key=[value].
func Field(key string, val interface{}) string {
	return fmt.Sprintf("%s=[%v]", key, val)
}

func join(fields []string) string {
	if len(fields) == 0 {
		return ""
	}

	return " " + strings.Join(fields, " ")
}
