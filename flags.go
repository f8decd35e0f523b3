// File: lixenwraith/conftree/flags.go
package conftree

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Flags resolves command-line arguments against a baseline Config, the
// schema and defaults for every flag. Supported argument shapes are
// "--key value...", "--key=value", and "--key+ value..." (append to a tuple
// default). Flags is stateless between calls; each resolution is
// independent and yields a new Config.
type Flags struct {
	config     *Config
	helpWriter io.Writer
	exitOnHelp bool
}

// NewFlags creates a flag resolver around a baseline configuration.
func NewFlags(cfg *Config) *Flags {
	return &Flags{config: cfg, helpWriter: os.Stdout}
}

// WithHelpWriter redirects the --help listing to w.
func (f *Flags) WithHelpWriter(w io.Writer) *Flags {
	f.helpWriter = w
	return f
}

// WithExitOnHelp makes a --help token terminate the process after printing
// the listing. By default help is informational and parsing proceeds.
func (f *Flags) WithExitOnHelp(exit bool) *Flags {
	f.exitOnHelp = exit
	return f
}

// Parse resolves argv strictly: every token must be consumed. It fails with
// ErrUnresolvedArguments if any leftover token starts with "--" without
// matching a config key, or if any tokens are left over at all; positional
// arguments are never accepted. A nil argv reads os.Args[1:].
func (f *Flags) Parse(argv []string) (*Config, error) {
	parsed, remaining, err := f.ParseKnown(argv)
	if err != nil {
		return nil, err
	}
	for _, token := range remaining {
		if strings.HasPrefix(token, "--") {
			if _, exists := f.config.flat[strings.TrimPrefix(token, "--")]; !exists {
				return nil, fmt.Errorf("%w: flag %q did not match any config keys", ErrUnresolvedArguments, token)
			}
		}
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("%w: could not parse all arguments, remaining: %q", ErrUnresolvedArguments, remaining)
	}
	return parsed, nil
}

// ParseKnown resolves argv leniently: flags that match no config key and
// bare positional tokens are returned in the remaining list instead of
// failing. Type and coercion errors still fail. A nil argv reads
// os.Args[1:].
func (f *Flags) ParseKnown(argv []string) (*Config, []string, error) {
	if argv == nil {
		argv = os.Args[1:]
	}
	for _, arg := range argv {
		if arg == "--help" {
			f.printHelp()
			break
		}
	}

	parsed := make(map[string]Value)
	var remaining []string
	var key string
	var vals []string
	pending := false

	for _, arg := range argv {
		if strings.HasPrefix(arg, "--") {
			if pending {
				if err := f.submitEntry(key, vals, parsed, &remaining); err != nil {
					return nil, nil, err
				}
				pending = false
			}
			if idx := strings.Index(arg, "="); idx >= 0 {
				// Single-value flag: resolve immediately, stay idle.
				if err := f.submitEntry(arg[:idx], []string{arg[idx+1:]}, parsed, &remaining); err != nil {
					return nil, nil, err
				}
			} else {
				key, vals, pending = arg, nil, true
			}
		} else if pending {
			vals = append(vals, arg)
		} else {
			remaining = append(remaining, arg)
		}
	}
	if pending {
		if err := f.submitEntry(key, vals, parsed, &remaining); err != nil {
			return nil, nil, err
		}
	}
	return f.config.withValues(parsed), remaining, nil
}

// submitEntry resolves one flushed (key, values) cluster against the
// baseline, recording coerced values in parsed or degrading to remaining
// for the not-found shapes.
func (f *Flags) submitEntry(key string, vals []string, parsed map[string]Value, remaining *[]string) error {
	if key == "" && len(vals) == 0 {
		return nil
	}
	name := strings.TrimPrefix(key, "--")
	if strings.Contains(name, "=") {
		// Malformed flag shape, keep it verbatim.
		*remaining = append(*remaining, key)
		*remaining = append(*remaining, vals...)
		return nil
	}
	if len(vals) == 0 {
		// A flag must have at least one value.
		*remaining = append(*remaining, key)
		return nil
	}

	if base, isAppend := strings.CutSuffix(name, "+"); isAppend && f.config.Contains(base) {
		def, err := f.config.Get(base)
		if err != nil || def.Kind() != KindTuple {
			kind := "a subtree"
			if err == nil {
				kind = "type '" + def.TypeName() + "'"
			}
			return fmt.Errorf("%w: cannot append to key %q which is %s instead of a list", ErrTypeMismatch, base, kind)
		}
		current, seen := parsed[base]
		if !seen {
			current = def
		}
		addition, err := parseFlagValue(def, vals, base)
		if err != nil {
			return err
		}
		appended, err := TupleValue(append(current.Elems(), addition.Elems()...)...)
		if err != nil {
			return err
		}
		parsed[base] = appended
		return nil
	}

	if classifyKey(name) == keyPattern {
		re, err := compileFullPattern(name)
		if err != nil {
			return fmt.Errorf("%w: invalid flag pattern %q: %v", ErrMalformedKey, name, err)
		}
		var matched []string
		for _, existing := range f.config.keys {
			if re.MatchString(existing) {
				matched = append(matched, existing)
			}
		}
		if len(matched) == 0 {
			*remaining = append(*remaining, key)
			*remaining = append(*remaining, vals...)
			return nil
		}
		for _, target := range matched {
			def := f.config.flat[target]
			value, err := parseFlagValue(def, vals, target)
			if err != nil {
				return err
			}
			parsed[target] = value
		}
		return nil
	}

	if f.config.Contains(name) {
		def, err := f.config.Get(name)
		if err != nil {
			// Interior node: AmbiguousKey.
			return err
		}
		value, err := parseFlagValue(def, vals, name)
		if err != nil {
			return err
		}
		parsed[name] = value
		return nil
	}

	*remaining = append(*remaining, key)
	*remaining = append(*remaining, vals...)
	return nil
}

// parseFlagValue coerces raw value tokens against the default's kind. For
// tuple defaults a single comma-bearing token is split on commas and each
// resulting token is coerced to the tuple's element kind.
func parseFlagValue(def Value, vals []string, key string) (Value, error) {
	if def.Kind() == KindTuple {
		tokens := vals
		if len(tokens) == 1 && strings.Contains(tokens[0], ",") {
			tokens = strings.Split(tokens[0], ",")
		}
		template := def.elems[0]
		elems := make([]Value, len(tokens))
		for i, token := range tokens {
			value, err := parseFlagValue(template, []string{token}, key)
			if err != nil {
				return Value{}, err
			}
			elems[i] = value
		}
		return TupleValue(elems...)
	}

	if len(vals) != 1 {
		return Value{}, fmt.Errorf("%w: expected a single value for key %q but got %q", ErrTooManyValues, key, vals)
	}
	token := vals[0]

	switch def.Kind() {
	case KindNull:
		// Untyped placeholder: pass the raw string through.
		return StringValue(token), nil
	case KindBool:
		switch token {
		case "True":
			return BoolValue(true), nil
		case "False":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("%w: expected bool but got %q for key %q", ErrTypeMismatch, token, key)
	case KindInt:
		// Parse as float first to tolerate scientific notation.
		parsed, err := strconv.ParseFloat(token, 64)
		if err != nil || parsed != math.Trunc(parsed) {
			return Value{}, fmt.Errorf("%w: expected int but got %q for key %q", ErrTypeMismatch, token, key)
		}
		return IntValue(int64(parsed)), nil
	case KindFloat:
		parsed, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: cannot convert %q to type 'float' for key %q", ErrTypeMismatch, token, key)
		}
		return FloatValue(parsed), nil
	case KindString:
		return StringValue(token), nil
	}
	return Value{}, fmt.Errorf("%w: cannot convert %q for key %q", ErrTypeMismatch, token, key)
}

// printHelp writes the flag listing derived from the baseline report: one
// line per key with its default value and type.
func (f *Flags) printHelp() {
	lines := strings.Split(f.config.String(), "\n")
	fmt.Fprintln(f.helpWriter, "\nHelp:")
	strip := strings.NewReplacer(":", "", ",", "", "[", "", "]", "")
	for _, line := range lines[2:] {
		fmt.Fprintln(f.helpWriter, "--"+strip.Replace(line))
	}
	if f.exitOnHelp {
		os.Exit(0)
	}
}
