/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package maphelpers

// CopyMap performs a deep copy of map, nested maps and nested arrays.
func CopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}

	cm := make(map[string]interface{}, len(m))

	for k, v := range m {
		cm[k] = copyValue(v)
	}

	return cm
}

func copyValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case map[string]interface{}:
		return CopyMap(tv)
	case []interface{}:
		ca := make([]interface{}, len(tv))

		for i := range tv {
			ca[i] = copyValue(tv[i])
		}

		return ca
	default:
		return v
	}
}
