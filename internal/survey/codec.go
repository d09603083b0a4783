package survey

import (
	"encoding/json"
	"fmt"
)

// String-list and awareness-map fields are stored as JSON text columns.
// Encode/decode are the single canonical pair for that boundary: nothing
// above the repository sees the encoded form, and a round trip reproduces
// the value exactly, including array element order.

// EncodeStringList serializes an ordered string list for storage.
// A nil slice encodes as an empty list.
func EncodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(raw), nil
}

// DecodeStringList restores an ordered string list from storage.
// Empty input decodes as an empty list.
func DecodeStringList(encoded string) ([]string, error) {
	if encoded == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// EncodeAwareness serializes the policy-area rating map for storage.
func EncodeAwareness(ratings map[string]int) (string, error) {
	if ratings == nil {
		ratings = map[string]int{}
	}
	raw, err := json.Marshal(ratings)
	if err != nil {
		return "", fmt.Errorf("encode awareness map: %w", err)
	}
	return string(raw), nil
}

// DecodeAwareness restores the policy-area rating map from storage.
func DecodeAwareness(encoded string) (map[string]int, error) {
	if encoded == "" {
		return map[string]int{}, nil
	}
	var ratings map[string]int
	if err := json.Unmarshal([]byte(encoded), &ratings); err != nil {
		return nil, fmt.Errorf("decode awareness map: %w", err)
	}
	if ratings == nil {
		ratings = map[string]int{}
	}
	return ratings, nil
}
