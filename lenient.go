package steamworkshop

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/go-openapi/swag"
)

// Steam is loose about JSON types: counters arrive as numbers on one
// endpoint and as strings on another, flags as 0/1 or true/false, and
// optional objects sometimes as [] or "". The types in this file decode
// whatever they are given and fall back to the zero value instead of
// returning an error, so one odd field never fails a whole response.

var jsonNull = []byte("null")

// scalarText returns the raw text of a JSON scalar, unquoting strings.
// ok is false for null, objects and arrays.
func scalarText(b []byte) (text string, ok bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return "", false
	}
	switch b[0] {
	case '{', '[':
		return "", false
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	return string(b), true
}

type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	*f = 0
	s, ok := scalarText(b)
	if !ok || s == "" {
		return nil
	}
	if v, err := swag.ConvertInt64(s); err == nil {
		*f = flexInt64(v)
		return nil
	}
	if v, err := swag.ConvertFloat64(s); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = flexInt64(v)
	}
	return nil
}

type flexUint64 uint64

func (f *flexUint64) UnmarshalJSON(b []byte) error {
	*f = 0
	s, ok := scalarText(b)
	if !ok || s == "" {
		return nil
	}
	if v, err := swag.ConvertUint64(s); err == nil {
		*f = flexUint64(v)
		return nil
	}
	if v, err := swag.ConvertFloat64(s); err == nil && v > 0 && v < math.MaxUint64 {
		*f = flexUint64(v)
	}
	return nil
}

type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(b []byte) error {
	*f = 0
	s, ok := scalarText(b)
	if !ok || s == "" {
		return nil
	}
	if v, err := swag.ConvertFloat64(s); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = flexFloat64(v)
	}
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	*f = false
	s, ok := scalarText(b)
	if !ok || s == "" {
		return nil
	}
	if v, err := swag.ConvertFloat64(s); err == nil {
		*f = v != 0
		return nil
	}
	v, _ := swag.ConvertBool(s)
	*f = flexBool(v)
	return nil
}

// flexString accepts strings and the textual form of numbers and booleans.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	*f = ""
	if s, ok := scalarText(b); ok {
		*f = flexString(s)
	}
	return nil
}

// lenient decodes an optional JSON object. Valid is false when the field
// was missing, null, or not decodable as T.
type lenient[T any] struct {
	Value T
	Valid bool
}

func (l *lenient[T]) UnmarshalJSON(b []byte) error {
	var zero T
	l.Value, l.Valid = zero, false
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	l.Value, l.Valid = v, true
	return nil
}

// lenientList decodes an optional JSON array. A value that is not an array
// decodes to nil, and elements that cannot be decoded as T are dropped.
type lenientList[T any] []T

func (l *lenientList[T]) UnmarshalJSON(b []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}
