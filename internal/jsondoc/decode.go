package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed is returned when the input is not a single valid JSON document.
var ErrMalformed = errors.New("jsondoc: malformed JSON")

// MaxDepth bounds array and object nesting, matching encoding/json.
const MaxDepth = 10000

// Decode parses data into a tree of *Object, []any, string, json.Number,
// bool and nil values. Object key order is preserved.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after document", ErrMalformed)
	}
	return value, nil
}

// DecodeString is Decode for text input.
func DecodeString(text string) (any, error) {
	return Decode([]byte(text))
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if depth >= MaxDepth {
		return nil, fmt.Errorf("exceeded max depth of %d", MaxDepth)
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
			}
			value, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := make([]any, 0)
		for dec.More() {
			value, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// ToPlain converts a decoded tree into the shapes produced by json.Unmarshal
// into an any: map[string]any, []any, float64, string, bool and nil.
func ToPlain(v any) any {
	switch typed := v.(type) {
	case *Object:
		if typed == nil {
			return nil
		}
		out := make(map[string]any, typed.Len())
		for _, key := range typed.keys {
			out[key] = ToPlain(typed.values[key])
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = ToPlain(item)
		}
		return out
	case json.Number:
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return typed.String()
	default:
		return v
	}
}
