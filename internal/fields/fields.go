// Package fields normalizes list-valued record attributes (technologies,
// achievements, features) that reach the API in more than one encoding.
package fields

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// List is the canonical form of a list field. Elements are kept as decoded:
// lists built from comma separated text hold trimmed, non-empty strings,
// while lists that arrived already structured are passed through untouched.
type List []any

// Normalize converts a value of unknown shape into a List. It never fails
// and never returns nil.
//
//   - a slice or array (other than []byte) is returned as-is
//   - a string (or []byte) holding a JSON array yields that array
//   - a string that is not valid JSON is split on commas, trimmed, and
//     stripped of empty tokens
//   - a string holding valid JSON that is not an array yields an empty list
//   - anything else yields an empty list
func Normalize(value any) List {
	switch v := value.(type) {
	case nil:
		return List{}
	case List:
		if v == nil {
			return List{}
		}
		return v
	case []any:
		if v == nil {
			return List{}
		}
		return List(v)
	case []string:
		out := make(List, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case string:
		return fromText(v)
	case []byte:
		return fromText(string(v))
	case json.RawMessage:
		return fromText(string(v))
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return List{}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return fromText(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return List{}
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return fromText(string(rv.Bytes()))
		}
		return fromSequence(rv)
	case reflect.Array:
		return fromSequence(rv)
	}
	return List{}
}

func fromSequence(rv reflect.Value) List {
	out := make(List, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func fromText(s string) List {
	decoded, err := decodeJSON(s)
	if err != nil {
		return splitComma(s)
	}
	if arr, ok := decoded.([]any); ok {
		return List(arr)
	}
	// Valid JSON that is not an array carries no list.
	return List{}
}

// decodeJSON decodes exactly one JSON value. Numbers stay json.Number so
// their literal text survives.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("fields: trailing data after JSON value")
	}
	return v, nil
}

func splitComma(s string) List {
	out := List{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Strings renders every element for display.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, v := range l {
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

// Encode returns the JSON array text stored in the database.
func (l List) Encode() (string, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]any(l))
}

// UnmarshalJSON accepts any JSON value and normalizes it, so clients may send
// an array, a JSON encoded array inside a string, or comma separated text.
func (l *List) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*l = Normalize(v)
	return nil
}

// Scan implements sql.Scanner. NULL columns scan to an empty list.
func (l *List) Scan(src any) error {
	*l = Normalize(src)
	return nil
}

// Value implements driver.Valuer.
func (l List) Value() (driver.Value, error) {
	return l.Encode()
}
