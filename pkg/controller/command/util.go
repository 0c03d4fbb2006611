/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperledger/aries-framework-go/spi/log"
)

// WriteResponse writes v to w as JSON. A nil v is written as an empty object.
// Nothing is written when v cannot be encoded.
func WriteResponse(w io.Writer, v interface{}, l log.Logger) error {
	if v == nil {
		v = map[string]interface{}{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		l.Errorf("Unable to encode response, %s", err)

		return fmt.Errorf("encode response: %w", err)
	}

	if _, err = w.Write(append(b, '\n')); err != nil {
		l.Errorf("Unable to send response, %s", err)

		return fmt.Errorf("write response: %w", err)
	}

	return nil
}
