/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package time wraps time.Time so that a timestamp read from a signed document is written back
// exactly as it was found. Signature verification re-canonicalizes the `created` literal, so any
// reformatting (dropped fractional zeros, a different offset) would change the signed bytes.
package time

import (
	"encoding/json"
	"time"
)

// SecondsFormat is the format used for timestamps generated by this component:
// UTC, second precision, RFC 3339 with a 'Z' suffix.
const SecondsFormat = "2006-01-02T15:04:05Z"

// TimeWrapper overrides marshalling of time.Time. If a TimeWrapper is parsed from a string it keeps
// the string literal and uses it when marshalling; otherwise it marshals using SecondsFormat.
type TimeWrapper struct { // nolint:golint
	time.Time
	timeStr string
}

// NewTime creates a TimeWrapper around t truncated to seconds and converted to UTC.
func NewTime(t time.Time) *TimeWrapper {
	return &TimeWrapper{Time: t.UTC().Truncate(time.Second)}
}

// ParseTimeWrapper parses an RFC 3339 timestamp. A missing zone designator is tolerated and read as UTC.
func ParseTimeWrapper(timeStr string) (*TimeWrapper, error) {
	tm := TimeWrapper{}

	if err := tm.parse(timeStr); err != nil {
		return nil, err
	}

	return &tm, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (tm TimeWrapper) MarshalJSON() ([]byte, error) {
	// catch time.Time marshaling errors
	if _, err := tm.Time.MarshalJSON(); err != nil {
		return nil, err
	}

	return json.Marshal(tm.FormatToString())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (tm *TimeWrapper) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var timeStr string

	if err := json.Unmarshal(data, &timeStr); err != nil {
		return err
	}

	return tm.parse(timeStr)
}

// FormatToString returns the original literal if the wrapper was parsed, SecondsFormat otherwise.
func (tm *TimeWrapper) FormatToString() string {
	if tm.timeStr != "" {
		return tm.timeStr
	}

	return tm.Time.UTC().Format(SecondsFormat)
}

func (tm *TimeWrapper) parse(timeStr string) error {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		t, err = time.Parse(time.RFC3339, timeStr+"Z")
		if err != nil {
			return err
		}
	}

	tm.Time = t
	tm.timeStr = timeStr

	return nil
}
