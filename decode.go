// File: lixenwraith/conftree/decode.go
package conftree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the nested view, or the subtree at basePath, into the target
// struct pointer. Field names map through the `conf` struct tag, falling
// back to the field name. Strings decode into time.Duration values and
// comma-separated strings decode into slices.
func (c *Config) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	section := any(c.Nested())
	if basePath != "" {
		for _, part := range strings.Split(basePath, sep) {
			m, isMap := section.(map[string]any)
			if !isMap {
				return fmt.Errorf("%w: path %q does not refer to a subtree", ErrKeyNotFound, basePath)
			}
			next, exists := m[part]
			if !exists {
				return fmt.Errorf("%w: %s", ErrKeyNotFound, basePath)
			}
			section = next
		}
	}
	sectionMap, isMap := section.(map[string]any)
	if !isMap {
		return fmt.Errorf("%w: path %q does not refer to a subtree", ErrKeyNotFound, basePath)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "conf",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to decode subtree %q: %w", basePath, err)
	}
	return nil
}
