package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexUint64 is a uint64 that can be unmarshaled from either a JSON number or a JSON string.
// Component identifiers arrive both ways from editors.
type FlexUint64 uint64

// ParseFlexUint64 parses a decimal identifier, ignoring surrounding whitespace.
func ParseFlexUint64(s string) (FlexUint64, error) {
	val, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("FlexUint64: invalid uint64 string %q: %w", s, err)
	}
	return FlexUint64(val), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexUint64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	// Try unmarshaling as a number first
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexUint64(n)
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := ParseFlexUint64(s)
		if err != nil {
			return err
		}
		*f = val
		return nil
	}

	return fmt.Errorf("FlexUint64: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexUint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(f))
}

// Uint64 converts FlexUint64 back to uint64.
func (f FlexUint64) Uint64() uint64 {
	return uint64(f)
}

// Uint64s converts a slice of FlexUint64 to []uint64.
func Uint64s(list []FlexUint64) []uint64 {
	out := make([]uint64, len(list))
	for i, v := range list {
		out[i] = uint64(v)
	}
	return out
}
