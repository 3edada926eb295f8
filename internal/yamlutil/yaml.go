// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotStringMap   = errors.New("yamlutil: mapping must contain only string keys and values")
)

// KeyValue is one entry of a YAML mapping, in document order.
type KeyValue struct {
	Key   string
	Value string
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalOrderedMap decodes a string-to-string mapping and keeps the order
// in which keys appear in the document. Go maps would lose it.
func UnmarshalOrderedMap(data []byte) ([]KeyValue, error) {
	var ms yaml.MapSlice
	if err := validateInput(data, &ms); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}

	out := make([]KeyValue, 0, len(ms))
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %v", ErrNotStringMap, item.Key)
		}
		value, ok := item.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: value of %q", ErrNotStringMap, key)
		}
		out = append(out, KeyValue{Key: key, Value: value})
	}
	return out, nil
}
