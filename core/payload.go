package core

import (
	"fmt"
	"reflect"
)

// NewPayload validates v as a vertex payload.
//
// A map[string]any is returned as-is (stored by reference). Any other map
// whose key type is string is copied into a fresh map[string]any. Everything
// else, including a nil map, fails with ErrInvalidPayload.
//
// Complexity: O(1) for map[string]any, O(n) for other map types.
func NewPayload(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		if m == nil {
			return nil, fmt.Errorf("%w: nil map", ErrInvalidPayload)
		}
		return m, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidPayload, v)
	}
	if rv.IsNil() {
		return nil, fmt.Errorf("%w: nil map", ErrInvalidPayload)
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, nil
}
