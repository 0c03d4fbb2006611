/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package time

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	tm := NewTime(time.Date(2017, 3, 25, 23, 1, 4, 987654321, loc))

	require.Equal(t, "2017-03-25T21:01:04Z", tm.FormatToString())

	b, err := json.Marshal(tm)
	require.NoError(t, err)
	require.Equal(t, `"2017-03-25T21:01:04Z"`, string(b))
}

func TestParseTimeWrapper(t *testing.T) {
	t.Run("keeps original literal", func(t *testing.T) {
		for _, literal := range []string{
			"2017-03-25T22:01:04Z",
			"2017-03-25T22:01:04.000Z",
			"2017-03-25T22:01:04+00:00",
		} {
			tm, err := ParseTimeWrapper(literal)
			require.NoError(t, err)
			require.Equal(t, literal, tm.FormatToString())
			require.Equal(t, 2017, tm.Year())

			b, err := json.Marshal(tm)
			require.NoError(t, err)
			require.Equal(t, `"`+literal+`"`, string(b))
		}
	})

	t.Run("missing zone is read as UTC", func(t *testing.T) {
		tm, err := ParseTimeWrapper("2017-03-25T22:01:04")
		require.NoError(t, err)
		require.Equal(t, time.UTC, tm.Location())
		require.Equal(t, "2017-03-25T22:01:04", tm.FormatToString())
	})

	t.Run("invalid", func(t *testing.T) {
		tm, err := ParseTimeWrapper("yesterday")
		require.Error(t, err)
		require.Nil(t, tm)
	})
}

func TestTimeWrapper_UnmarshalJSON(t *testing.T) {
	var holder struct {
		Created *TimeWrapper `json:"created"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"created":"2020-01-02T03:04:05.100Z"}`), &holder))
	require.Equal(t, "2020-01-02T03:04:05.100Z", holder.Created.FormatToString())

	holder.Created = nil
	require.NoError(t, json.Unmarshal([]byte(`{"created":null}`), &holder))
	require.Nil(t, holder.Created)

	require.Error(t, json.Unmarshal([]byte(`{"created":42}`), &holder))
	require.Error(t, json.Unmarshal([]byte(`{"created":"not a time"}`), &holder))
}
