package jsonx

import (
	"fmt"
	"strings"
)

// StringField reads a string-ish field from a parsed JSON object. Lists
// join with ", "; numbers and booleans format naturally. Returns "" when
// the key is absent or null. Models are loose about types, so consumers
// are too.
func StringField(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		return strings.Join(StringList(obj, key), ", ")
	default:
		return fmt.Sprint(t)
	}
}

// StringList reads a list-of-strings field, accepting a bare string as a
// single-element list. Non-string elements are formatted, empties dropped.
func StringList(obj map[string]any, key string) []string {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case string:
		items = []any{t}
	default:
		items = []any{t}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
