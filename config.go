// File: lixenwraith/conftree/config.go
package conftree

import (
	"fmt"
	"sort"
	"strings"
)

// Config is an immutable mapping from dotted key paths to typed values. It
// maintains both a flat view (for lookup and diffing) and a nested tree view
// (for structured access and serialization); the two are always mutually
// derivable. Every mutation operation returns a new Config, so instances are
// freely shareable without synchronization.
type Config struct {
	flat   map[string]Value
	nested map[string]any
	keys   []string // flat keys in sorted order, for stable display
}

// New builds a Config from a raw nested mapping of scalars, lists, and
// nested maps. The mapping is flattened, every flat key is validated against
// the literal charset, and every value is normalized: lists become immutable
// tuples, which must be non-empty and homogeneous.
func New(raw map[string]any) (*Config, error) {
	flatRaw := flattenRaw(raw)
	flat := make(map[string]Value, len(flatRaw))
	for key, rawValue := range flatRaw {
		if key == "" || classifyKey(key) == keyPattern {
			return nil, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		value, err := valueFromAny(rawValue)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		flat[key] = value
	}
	// A key may not name both a leaf and an interior node, or the flat and
	// nested views would disagree about it.
	for key := range flat {
		for idx := strings.LastIndexByte(key, '.'); idx > 0; idx = strings.LastIndexByte(key[:idx], '.') {
			if _, clash := flat[key[:idx]]; clash {
				return nil, fmt.Errorf("%w: key %q is both a leaf and a prefix of %q", ErrMalformedKey, key[:idx], key)
			}
		}
	}
	return newFromFlat(flat), nil
}

// MustNew is like New but panics on error. Intended for static defaults.
func MustNew(raw map[string]any) *Config {
	cfg, err := New(raw)
	if err != nil {
		panic(fmt.Sprintf("conftree: invalid defaults: %v", err))
	}
	return cfg
}

// newFromFlat wraps an already-validated flat view. Takes ownership of flat.
func newFromFlat(flat map[string]Value) *Config {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Config{flat: flat, nested: nestValues(flat), keys: keys}
}

// Flat returns a copy of the flat view.
func (c *Config) Flat() map[string]Value {
	out := make(map[string]Value, len(c.flat))
	for key, value := range c.flat {
		out[key] = value
	}
	return out
}

// Keys returns the flat keys in sorted order.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of leaf keys.
func (c *Config) Len() int { return len(c.flat) }

// Nested returns the nested view as a plain tree of maps with native Go
// leaves (nil, bool, int64, float64, string, []any), suitable for
// serialization.
func (c *Config) Nested() map[string]any {
	return nativeTree(c.nested)
}

func nativeTree(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		switch t := value.(type) {
		case map[string]any:
			out[key] = nativeTree(t)
		case Value:
			out[key] = t.native()
		}
	}
	return out
}

// lookup descends the nested view segment by segment. The result is either
// a Value leaf or a map[string]any interior node.
func (c *Config) lookup(path string) (any, error) {
	var node any = c.nested
	for _, part := range strings.Split(path, sep) {
		m, isMap := node.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		next, exists := m[part]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		node = next
	}
	return node, nil
}

// Get returns the leaf value at a dotted path. It fails with ErrKeyNotFound
// if the path does not resolve and with ErrAmbiguousKey if the path names an
// interior node rather than a leaf.
func (c *Config) Get(path string) (Value, error) {
	node, err := c.lookup(path)
	if err != nil {
		return Value{}, err
	}
	value, isLeaf := node.(Value)
	if !isLeaf {
		return Value{}, fmt.Errorf("%w: key %q refers to a whole subtree, specify a leaf key", ErrAmbiguousKey, path)
	}
	return value, nil
}

// Sub returns the subtree at a dotted path as a scoped Config. Partial paths
// resolve to scoped configs, not leaves.
func (c *Config) Sub(path string) (*Config, error) {
	node, err := c.lookup(path)
	if err != nil {
		return nil, err
	}
	m, isMap := node.(map[string]any)
	if !isMap {
		return nil, fmt.Errorf("%w: key %q is a leaf, not a subtree", ErrKeyNotFound, path)
	}
	return newFromFlat(flattenValues(m)), nil
}

// Contains reports whether a dotted path resolves to a leaf or a subtree.
func (c *Config) Contains(path string) bool {
	_, err := c.lookup(path)
	return err == nil
}

// Update returns a new Config with the overrides applied; the receiver is
// never modified. Override keys may be regex patterns, in which case every
// existing flat key matching the pattern (anchored at the start) receives
// the value. A literal key must already exist. Each new value is coerced to
// the type of the current value at the matched key.
//
// Override keys are applied in sorted order so that overlapping patterns
// resolve deterministically.
func (c *Config) Update(overrides map[string]any) (*Config, error) {
	result := make(map[string]Value, len(c.flat))
	for key, value := range c.flat {
		result[key] = value
	}

	inputs := flattenRaw(overrides)
	inputKeys := make([]string, 0, len(inputs))
	for key := range inputs {
		inputKeys = append(inputKeys, key)
	}
	sort.Strings(inputKeys)

	for _, key := range inputKeys {
		var targets []string
		if classifyKey(key) == keyPattern {
			re, err := compilePrefixPattern(key)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid pattern %q: %v", ErrMalformedKey, key, err)
			}
			for _, existing := range c.keys {
				if re.MatchString(existing) {
					targets = append(targets, existing)
				}
			}
		} else if _, exists := result[key]; exists {
			targets = []string{key}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}

		incoming, err := valueFromAny(inputs[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		for _, target := range targets {
			current := result[target]
			coerced, err := coerceValue(current, incoming)
			if err != nil {
				return nil, fmt.Errorf("key %q with previous value '%s': %w", target, current, err)
			}
			result[target] = coerced
		}
	}
	return newFromFlat(result), nil
}

// withValues substitutes already-typed values for existing keys, returning a
// new Config. Used by the flag resolver after coercion; no re-coercion
// happens here.
func (c *Config) withValues(values map[string]Value) *Config {
	if len(values) == 0 {
		return c
	}
	flat := make(map[string]Value, len(c.flat))
	for key, value := range c.flat {
		flat[key] = value
	}
	for key, value := range values {
		flat[key] = value
	}
	return newFromFlat(flat)
}

// String renders a column-aligned report of every flat key, its formatted
// value, and its type name. Used for diagnostics and to derive the flag
// resolver's help text.
func (c *Config) String() string {
	keys := make([]string, 0, len(c.keys))
	vals := make([]string, 0, len(c.keys))
	typs := make([]string, 0, len(c.keys))
	maxKey, maxVal := 0, 0
	for _, key := range c.keys {
		value := c.flat[key]
		k := key + ":"
		v := value.String()
		if len(k) > maxKey {
			maxKey = len(k)
		}
		if len(v) > maxVal {
			maxVal = len(v)
		}
		keys = append(keys, k)
		vals = append(vals, v)
		typs = append(typs, value.TypeName())
	}

	var b strings.Builder
	b.WriteString("\nConfig:")
	for i := range keys {
		fmt.Fprintf(&b, "\n%-*s  %-*s  (%s)", maxKey, keys[i], maxVal, vals[i], typs[i])
	}
	return b.String()
}
