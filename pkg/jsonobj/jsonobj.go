// Package jsonobj provides safe, presence-aware access to loosely typed JSON objects.
//
// Every getter returns the type's zero value when the key is missing, holds JSON null,
// or holds a value of a different shape. None of them fail. Has reports whether the key
// existed at all, independently of the value a getter resolves to, which lets models
// distinguish "absent" from "present with a default".
package jsonobj

import (
	"bytes"
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/goccy/go-json"
)

// GraphTimeLayout is the timestamp layout used by Graph API payloads.
const GraphTimeLayout = "2006-01-02T15:04:05-0700"

// Object is a decoded JSON object. A nil Object represents an absent value.
type Object map[string]any

// Parser converts an Object into a typed value. Parsers return (nil, nil) for a nil Object.
type Parser[T any] func(Object) (*T, error)

// ErrNotObject is returned when a payload decodes to something other than a JSON object.
var ErrNotObject = errors.New("json value is not an object")

// ErrTrailingData is returned when a payload holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after json value")

// Parse decodes data into an Object. Numbers are kept as json.Number so integer
// precision survives the round trip through any.
func Parse(data []byte) (Object, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON object from r. Anything but whitespace after it
// is an error.
func Decode(r io.Reader) (Object, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	obj, ok := asObject(v)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

// Has reports whether key exists in the object, whatever its value.
func (o Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o[key]
	return ok
}

// IsNull reports whether key exists and holds JSON null.
func (o Object) IsNull(key string) bool {
	if o == nil {
		return false
	}
	v, ok := o[key]
	return ok && v == nil
}

// Raw returns the undecoded value stored under key, or nil.
func (o Object) Raw(key string) any {
	if o == nil {
		return nil
	}
	return o[key]
}

// String returns the string stored under key, or "".
func (o Object) String(key string) string {
	s, _ := o.Raw(key).(string)
	return s
}

// Bool returns the boolean stored under key, or false.
func (o Object) Bool(key string) bool {
	b, _ := o.Raw(key).(bool)
	return b
}

// Int64 returns the integer stored under key, or 0. Fractional numbers are
// treated as the wrong shape.
func (o Object) Int64(key string) int64 {
	switch v := o.Raw(key).(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		if v != float64(int64(v)) {
			return 0
		}
		return int64(v)
	default:
		return 0
	}
}

// Int is Int64 narrowed to int.
func (o Object) Int(key string) int {
	return int(o.Int64(key))
}

// Float64 returns the number stored under key, or 0.
func (o Object) Float64(key string) float64 {
	switch v := o.Raw(key).(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// Time parses the string stored under key using the Graph layout, falling back
// to RFC 3339. Unparseable or missing values yield the zero time.
func (o Object) Time(key string) time.Time {
	s := o.String(key)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{GraphTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Object returns the nested object stored under key, or nil.
func (o Object) Object(key string) Object {
	obj, _ := asObject(o.Raw(key))
	return obj
}

// Array returns the array stored under key. The result is never nil.
func (o Object) Array(key string) []any {
	arr, ok := o.Raw(key).([]any)
	if !ok {
		return []any{}
	}
	return arr
}

// Strings returns the string elements of the array stored under key, skipping
// elements of other types. The result is never nil.
func (o Object) Strings(key string) []string {
	arr := o.Array(key)
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Presence records, for each of keys, whether it exists in the object.
func (o Object) Presence(keys ...string) Presence {
	p := make(Presence, len(keys))
	for _, k := range keys {
		p[k] = o.Has(k)
	}
	return p
}

// Enum returns the string stored under key when it is one of allowed, otherwise def.
func Enum[T ~string](o Object, key string, def T, allowed ...T) T {
	s, ok := o.Raw(key).(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if string(a) == s {
			return a
		}
	}
	return def
}

// ObjectOf parses the nested object stored under key. A missing, null or
// malformed value, or a parser failure, all degrade to nil.
func ObjectOf[T any](o Object, key string, parse Parser[T]) *T {
	nested := o.Object(key)
	if nested == nil {
		return nil
	}
	v, err := parse(nested)
	if err != nil {
		return nil
	}
	return v
}

// ArrayOf parses every object element of the array stored under key. Elements
// that are not objects or that the parser rejects are skipped. The result is never nil.
func ArrayOf[T any](o Object, key string, parse Parser[T]) []*T {
	return Elements(o.Array(key), parse)
}

// Elements parses each object in arr, skipping anything the parser rejects.
func Elements[T any](arr []any, parse Parser[T]) []*T {
	out := make([]*T, 0, len(arr))
	for _, raw := range arr {
		elem, ok := asObject(raw)
		if !ok {
			continue
		}
		v, err := parse(elem)
		if err != nil || v == nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func asObject(v any) (Object, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Object(m), true
	case Object:
		return m, m != nil
	default:
		return nil, false
	}
}
