// File: lixenwraith/conftree/register.go
package conftree

import (
	"fmt"
	"reflect"
	"strings"
)

// FromStruct builds a Config from a struct of default values. Field names
// map through the `conf` struct tag, falling back to the field name; a tag
// of "-" skips the field. Nested structs become nested groups, slices
// become tuples. A non-empty dotted prefix nests the whole struct under
// that path.
func FromStruct(prefix string, defaults any) (*Config, error) {
	v := reflect.ValueOf(defaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("FromStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("FromStruct requires a struct or struct pointer, got %T", defaults)
	}

	raw := structToMap(v)
	if prefix != "" {
		parts := strings.Split(prefix, sep)
		for i := len(parts) - 1; i >= 0; i-- {
			raw = map[string]any{parts[i]: raw}
		}
	}
	return New(raw)
}

// structToMap walks exported fields into a raw nested mapping. Value
// normalization and key validation happen later in New.
func structToMap(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, v.NumField())

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("conf")
		if tag == "-" {
			continue
		}
		key := field.Name
		if tag != "" {
			if name, _, _ := strings.Cut(tag, ","); name != "" {
				key = name
			}
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct {
			out[key] = structToMap(fv)
			continue
		}
		if m, isRawMap := fv.Interface().(map[string]any); isRawMap {
			out[key] = m
			continue
		}
		out[key] = fv.Interface()
	}
	return out
}
