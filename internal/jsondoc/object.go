package jsondoc

import (
	"sort"
	"strconv"
)

// Object is a decoded JSON object that remembers key order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

// Set stores value under key. A repeated key keeps its first position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// Has reports whether key is present, including keys holding null.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of distinct keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in JavaScript own-property order: array index keys
// in ascending numeric order, then the remaining keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	type indexKey struct {
		key   string
		index uint64
	}
	indexed := make([]indexKey, 0)
	named := make([]string, 0, len(o.keys))
	for _, key := range o.keys {
		if idx, ok := arrayIndex(key); ok {
			indexed = append(indexed, indexKey{key: key, index: idx})
			continue
		}
		named = append(named, key)
	}
	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].index < indexed[j].index
	})
	out := make([]string, 0, len(o.keys))
	for _, entry := range indexed {
		out = append(out, entry.key)
	}
	return append(out, named...)
}

const maxArrayIndex = 1<<32 - 2

func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}
	return n, true
}

// AsObject returns v as an *Object when it is one.
func AsObject(v any) (*Object, bool) {
	obj, ok := v.(*Object)
	return obj, ok && obj != nil
}

// AsArray returns v as a slice when it is a JSON array.
func AsArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}
