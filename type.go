// File: lixenwraith/conftree/type.go
package conftree

import "fmt"

// Typed accessors over leaf values. The store is strictly typed, so these
// do not convert across kinds; the one exception is Float64, which accepts
// an int leaf since the promotion is lossless. A kind mismatch fails with
// ErrTypeMismatch naming the key and the actual type.

// Bool retrieves a bool leaf.
func (c *Config) Bool(path string) (bool, error) {
	value, err := c.Get(path)
	if err != nil {
		return false, err
	}
	b, ok := value.Bool()
	if !ok {
		return false, fmt.Errorf("%w: key %q holds %s, not bool", ErrTypeMismatch, path, value.TypeName())
	}
	return b, nil
}

// Int64 retrieves an int leaf.
func (c *Config) Int64(path string) (int64, error) {
	value, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	i, ok := value.Int()
	if !ok {
		return 0, fmt.Errorf("%w: key %q holds %s, not int", ErrTypeMismatch, path, value.TypeName())
	}
	return i, nil
}

// Float64 retrieves a float leaf. An int leaf is promoted.
func (c *Config) Float64(path string) (float64, error) {
	value, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	if f, ok := value.Float(); ok {
		return f, nil
	}
	if i, ok := value.Int(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("%w: key %q holds %s, not float", ErrTypeMismatch, path, value.TypeName())
}

// Str retrieves a string leaf.
func (c *Config) Str(path string) (string, error) {
	value, err := c.Get(path)
	if err != nil {
		return "", err
	}
	s, ok := value.Str()
	if !ok {
		return "", fmt.Errorf("%w: key %q holds %s, not string", ErrTypeMismatch, path, value.TypeName())
	}
	return s, nil
}

// Ints retrieves a tuple of ints.
func (c *Config) Ints(path string) ([]int64, error) {
	value, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	if value.Kind() != KindTuple || value.ElemKind() != KindInt {
		return nil, fmt.Errorf("%w: key %q holds %s, not ints", ErrTypeMismatch, path, value.TypeName())
	}
	elems := value.Elems()
	out := make([]int64, len(elems))
	for i, e := range elems {
		out[i], _ = e.Int()
	}
	return out, nil
}

// Floats retrieves a tuple of floats. Int tuples are promoted.
func (c *Config) Floats(path string) ([]float64, error) {
	value, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	if value.Kind() != KindTuple || (value.ElemKind() != KindFloat && value.ElemKind() != KindInt) {
		return nil, fmt.Errorf("%w: key %q holds %s, not floats", ErrTypeMismatch, path, value.TypeName())
	}
	elems := value.Elems()
	out := make([]float64, len(elems))
	for i, e := range elems {
		if f, ok := e.Float(); ok {
			out[i] = f
		} else {
			n, _ := e.Int()
			out[i] = float64(n)
		}
	}
	return out, nil
}

// Strings retrieves a tuple of strings.
func (c *Config) Strings(path string) ([]string, error) {
	value, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	if value.Kind() != KindTuple || value.ElemKind() != KindString {
		return nil, fmt.Errorf("%w: key %q holds %s, not strings", ErrTypeMismatch, path, value.TypeName())
	}
	elems := value.Elems()
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i], _ = e.Str()
	}
	return out, nil
}
