// File: lixenwraith/conftree/helper.go
package conftree

import (
	"reflect"
	"regexp"
	"strings"
)

// sep joins key path segments in the flat view.
const sep = "."

// keyClass distinguishes literal flat keys from regex patterns used for bulk
// matching. The charset test is the single classification point; the rest of
// the package branches on the enum.
type keyClass int

const (
	keyLiteral keyClass = iota
	keyPattern
)

// patternChar matches any character outside the literal key charset.
var patternChar = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// classifyKey reports whether a key is a literal flat key (letters, digits,
// underscore, dot, hyphen only) or a regex pattern.
func classifyKey(key string) keyClass {
	if patternChar.MatchString(key) {
		return keyPattern
	}
	return keyLiteral
}

// compilePrefixPattern compiles a pattern anchored at the start of the
// subject, the matching rule used by Update.
func compilePrefixPattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + expr + ")")
}

// compileFullPattern compiles a pattern anchored at both ends, the matching
// rule used by the flag resolver.
func compileFullPattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + expr + ")$")
}

// joinKeys combines a parent and child key with the separator. When either
// side is pattern-shaped, the separator is escaped with a backslash so that
// pattern-bearing keys stay distinguishable from literal dotted paths.
func joinKeys(parent, child string) string {
	if classifyKey(parent) == keyPattern || classifyKey(child) == keyPattern {
		return parent + `\` + sep + child
	}
	return parent + sep + child
}

// flattenRaw converts a nested map into a flat map with dot-notation keys.
// Non-map values become flat leaves unchanged.
func flattenRaw(nested map[string]any) map[string]any {
	flat := make(map[string]any, len(nested))
	for key, value := range nested {
		if sub, isMap := asRawMap(value); isMap {
			for subKey, subValue := range flattenRaw(sub) {
				flat[joinKeys(key, subKey)] = subValue
			}
		} else {
			flat[key] = value
		}
	}
	return flat
}

// asRawMap recognizes any string-keyed map as a nested node, including
// concretely typed ones like map[string]int.
func asRawMap(value any) (map[string]any, bool) {
	if m, isMap := value.(map[string]any); isMap {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// nestValues rebuilds the nested tree from a flat view, splitting each key
// on the separator and creating intermediate map nodes. Leaves are Values.
func nestValues(flat map[string]Value) map[string]any {
	nested := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, sep)
		node := nested
		for _, part := range parts[:len(parts)-1] {
			next, isMap := node[part].(map[string]any)
			if !isMap {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}
	return nested
}

// flattenValues is the inverse of nestValues for subtrees of the nested
// view: it produces a flat view from a tree whose leaves are Values. All
// keys in the tree are literal, so segments join with a bare separator.
func flattenValues(node map[string]any) map[string]Value {
	flat := make(map[string]Value, len(node))
	for key, value := range node {
		switch t := value.(type) {
		case map[string]any:
			for subKey, subValue := range flattenValues(t) {
				flat[key+sep+subKey] = subValue
			}
		case Value:
			flat[key] = t
		}
	}
	return flat
}
