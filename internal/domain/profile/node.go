// Package profile models the tracker profile response as an untyped tree.
//
// The upstream schema is not contractually fixed, so nothing here decodes into
// structs. Lookups on a missing key or on the wrong kind of value yield a null
// Node instead of an error.
package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is one value of a decoded JSON document.
type Node struct {
	v any
}

// Wrap turns an already decoded value (maps, slices, scalars) into a Node.
func Wrap(v any) Node {
	return Node{v: v}
}

// Raw returns the underlying value.
func (n Node) Raw() any { return n.v }

// IsNull reports whether the node holds no value.
func (n Node) IsNull() bool { return n.v == nil }

// Get returns the value under key, or a null Node when n is not an object.
func (n Node) Get(key string) Node {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	return Node{v: m[key]}
}

// Has reports whether n is an object containing key, whatever its value.
func (n Node) Has(key string) bool {
	m, ok := n.v.(map[string]any)
	if !ok {
		return false
	}
	_, found := m[key]
	return found
}

// IsObject reports whether n is a JSON object.
func (n Node) IsObject() bool {
	_, ok := n.v.(map[string]any)
	return ok
}

// Or returns the first truthy value among keys. When none is truthy it returns
// the value of the last key, which may itself be null or falsy.
func (n Node) Or(keys ...string) Node {
	var last Node
	for _, k := range keys {
		last = n.Get(k)
		if last.Truthy() {
			return last
		}
	}
	return last
}

// List returns the elements of an array node; any other node yields nil.
func (n Node) List() []Node {
	items, ok := n.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(items))
	for i, item := range items {
		out[i] = Node{v: item}
	}
	return out
}

// Truthy follows the usual dynamic-language rule: null, false, zero, the empty
// string and empty containers are false.
func (n Node) Truthy() bool {
	switch v := n.v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// Text returns the node as a string only when it is a JSON string.
func (n Node) Text() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}

// String renders scalars in their natural text form; null renders as "".
func (n Node) String() string {
	switch v := n.v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int coerces the node to an integer. Numbers are truncated toward zero,
// strings must hold a base-10 integer, booleans count as 1 and 0. Every other
// value, and any string that does not parse, reports ok=false.
func (n Node) Int() (int, bool) {
	switch v := n.v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(v)
	case int:
		return v, true
	case int64:
		return int(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
