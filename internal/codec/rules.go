package codec

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// rule binds one wire key to one property of T. Property defaults to the
// snake_case -> camelCase translation of the key unless override is set.
type rule[T any] struct {
	wireKey  string
	property string
	override bool
	required bool
	decode   func(raw json.RawMessage, dst *T) error
	encode   func(src *T) (any, error)
}

func auto[T any](key string, required bool, decode func(json.RawMessage, *T) error, encode func(*T) (any, error)) rule[T] {
	return rule[T]{wireKey: key, property: SnakeToCamel(key), required: required, decode: decode, encode: encode}
}

func renamed[T any](key, property string, decode func(json.RawMessage, *T) error, encode func(*T) (any, error)) rule[T] {
	return rule[T]{wireKey: key, property: property, override: true, decode: decode, encode: encode}
}

func mappings[T any](rules []rule[T]) []FieldMapping {
	out := make([]FieldMapping, 0, len(rules))
	for _, r := range rules {
		out = append(out, FieldMapping{WireKey: r.wireKey, Property: r.property, Override: r.override, Required: r.required})
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeObject applies rules to one JSON object. Unknown keys are ignored;
// absent or null optional keys leave the zero value in place.
func decodeObject[T any](raw []byte, rules []rule[T], dst *T) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	for _, r := range rules {
		value, ok := fields[r.wireKey]
		if !ok || isNull(value) {
			if r.required {
				return &DecodeError{Key: r.wireKey, Err: ErrMissingField}
			}
			continue
		}
		if err := r.decode(value, dst); err != nil {
			return &DecodeError{Key: r.wireKey, Err: err}
		}
	}
	return nil
}

// encodeObject writes src as a JSON object with keys in rule order.
func encodeObject[T any](buf *bytes.Buffer, rules []rule[T], src *T) error {
	buf.WriteByte('{')
	for i, r := range rules {
		value, err := r.encode(src)
		if err != nil {
			return fmt.Errorf("encode %q: %w", r.wireKey, err)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %q: %w", r.wireKey, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(r.wireKey))
		buf.WriteByte(':')
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return nil
}

// decodeString accepts a JSON string, or a bare number kept as its literal text.
func decodeString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrFieldType, err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("%w: want string, got %s", ErrFieldType, trimmed)
	}
	return n.String(), nil
}

// decodeInt accepts a JSON integer or a quoted integer.
func decodeInt(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrFieldType, err)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: want integer, got %q", ErrFieldType, s)
		}
		return n, nil
	}
	var n int64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, fmt.Errorf("%w: want integer, got %s", ErrFieldType, trimmed)
	}
	return n, nil
}
