// Package encoding provides utilities for encoding and decoding data.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSONList unmarshals a JSON array. A blank input or a literal null
// yields an empty, non-nil slice. Anything that is not an array of T is an
// error.
func ParseJSONList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	var result []T
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON list: %w", err)
	}

	if result == nil {
		result = []T{}
	}

	return result, nil
}

// ToJSON marshals a value to JSON bytes.
func ToJSON[T any](value T) ([]byte, error) {
	return json.Marshal(value)
}

// ToJSONIndent marshals a value to indented JSON bytes.
func ToJSONIndent[T any](value T) ([]byte, error) {
	return json.MarshalIndent(value, "", "  ")
}
