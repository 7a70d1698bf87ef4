// Package config holds the value conversions shared by the ConfigStore
// adapters. TOML decodes integers as int64 and arrays as []any, while
// values set in process keep their Go types, so every getter accepts both.
package config

import "strings"

// Values is a flat map of dotted keys to decoded values.
type Values map[string]any

// String returns the string under key, or "".
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the integer under key, or 0.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float returns the number under key, or 0.
func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns the boolean under key, or false.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// StringSlice returns the list under key, dropping non-string items.
func (v Values) StringSlice(key string) []string {
	switch items := v[key].(type) {
	case []string:
		return items
	case []any:
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

// Flatten converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(m map[string]any) Values {
	out := make(Values)
	flatten(out, m, "")
	return out
}

func flatten(out Values, m map[string]any, prefix string) {
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(out, nested, key)
			continue
		}
		out[key] = value
	}
}

// Nest is the inverse of Flatten, so the file on disk uses TOML tables.
// When a key is both a value and a table prefix the table wins.
func (v Values) Nest() map[string]any {
	root := make(map[string]any)
	for key, value := range v {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, isTable := node[leaf].(map[string]any); !isTable {
			node[leaf] = value
		}
	}
	return root
}
