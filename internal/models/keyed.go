package models

import (
	jsoniter "github.com/json-iterator/go"
)

// Keyed is a chain-keyed map that iterates and encodes in insertion order.
// The zero value is an empty map.
type Keyed[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores v under key. A new key goes last; an existing key keeps its place.
func (k *Keyed[V]) Set(key string, v V) {
	if k.values == nil {
		k.values = make(map[string]V)
	}
	if _, exists := k.values[key]; !exists {
		k.keys = append(k.keys, key)
	}
	k.values[key] = v
}

// Get returns the value stored under key
func (k Keyed[V]) Get(key string) (V, bool) {
	v, ok := k.values[key]
	return v, ok
}

// Len returns the number of keys
func (k Keyed[V]) Len() int {
	return len(k.keys)
}

// Keys returns the keys in order
func (k Keyed[V]) Keys() []string {
	keys := make([]string, len(k.keys))
	copy(keys, k.keys)
	return keys
}

// Values returns the values in key order
func (k Keyed[V]) Values() []V {
	values := make([]V, len(k.keys))
	for i, key := range k.keys {
		values[i] = k.values[key]
	}
	return values
}

// MarshalJSON encodes the map as a JSON object in key order
func (k Keyed[V]) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, key := range k.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		stream.WriteVal(k.values[key])
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
