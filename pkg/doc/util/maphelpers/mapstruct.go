/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package maphelpers

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	afgotime "github.com/hyperledger/aries-framework-go/component/jsigs/pkg/doc/util/time"
)

// StringToTimeWrapper hook for mapstructure library to decode an xsd:dateTime literal into
// afgotime.TimeWrapper while keeping the literal.
func StringToTimeWrapper() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		switch t {
		case reflect.TypeOf(afgotime.TimeWrapper{}):
			tw, err := afgotime.ParseTimeWrapper(data.(string))
			if err != nil {
				return nil, err
			}

			return *tw, nil
		case reflect.TypeOf(&afgotime.TimeWrapper{}):
			return afgotime.ParseTimeWrapper(data.(string))
		default:
			return data, nil
		}
	}
}

// SingleToSlice hook for mapstructure library to decode a lone JSON-LD value into a slice, as compaction
// collapses single-element arrays.
func SingleToSlice() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice || f.Kind() == reflect.Slice || data == nil {
			return data, nil
		}

		return []interface{}{data}, nil
	}
}

// Decode decodes a JSON-LD object into the struct pointed to by out using `json` tags.
func Decode(in map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			SingleToSlice(),
			StringToTimeWrapper(),
		),
		TagName:          "json",
		WeaklyTypedInput: false,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(in); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}
