package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"gopkg.in/yaml.v3"
)

// Value is a scenario value. The set of implementations is closed: String,
// Int, Bool, Array and Object. Floats and null have no representation.
type Value interface {
	irValue()
}

type (
	String string
	Int    int64
	Bool   bool
	Array  []Value
	Object map[string]Value
)

func (String) irValue() {}
func (Int) irValue()    {}
func (Bool) irValue()   {}
func (Array) irValue()  {}
func (Object) irValue() {}

var (
	errFloat = errors.New("floats are forbidden")
	errNull  = errors.New("null is forbidden")
)

// IsScalar reports whether v can be stored in a collection. Only scalars are
// comparable, so only scalars can be list or set elements.
func IsScalar(v Value) bool {
	switch v.(type) {
	case String, Int, Bool:
		return true
	}
	return false
}

// SortedKeys returns the keys of m ordered by UTF-16 code units.
func SortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// Values is a list of scalar elements as written in scenario files and trace
// events.
type Values []Value

// String renders the values as canonical JSON.
func (vs Values) String() string {
	b, err := MarshalCanonical(vs)
	if err != nil {
		return fmt.Sprintf("%v", []Value(vs))
	}
	return string(b)
}

// UnmarshalJSON decodes a JSON array of scalars. Integers are decoded exactly.
func (vs *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("values: %w", err)
	}
	out := make(Values, 0, len(raw))
	for i, r := range raw {
		v, err := scalarFromAny(r)
		if err != nil {
			return fmt.Errorf("values[%d]: %w", i, err)
		}
		out = append(out, v)
	}
	*vs = out
	return nil
}

// UnmarshalYAML decodes a YAML sequence of scalars, using the resolved tag of
// each entry so that "1" stays a string and 1 becomes an Int.
func (vs *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		*vs = Values{}
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: values must be a sequence", node.Line)
	}
	out := make(Values, 0, len(node.Content))
	for i, item := range node.Content {
		v, err := scalarFromNode(item)
		if err != nil {
			return fmt.Errorf("line %d: values[%d]: %w", item.Line, i, err)
		}
		out = append(out, v)
	}
	*vs = out
	return nil
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("collection elements must be scalars")
	}
	switch n.ShortTag() {
	case "!!str":
		return String(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return Int(i), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!float":
		return nil, fmt.Errorf("%w: %s", errFloat, n.Value)
	case "!!null":
		return nil, errNull
	default:
		return nil, fmt.Errorf("unsupported tag %s", n.ShortTag())
	}
}

func scalarFromAny(r any) (Value, error) {
	v, err := toValue(r)
	if err != nil {
		return nil, err
	}
	if !IsScalar(v) {
		return nil, fmt.Errorf("collection elements must be scalars, got %T", v)
	}
	return v, nil
}

// ParseScalar decodes a single JSON scalar.
func ParseScalar(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return scalarFromAny(raw)
}

// toValue converts a decoded JSON or YAML tree to a Value.
func toValue(r any) (Value, error) {
	switch v := r.(type) {
	case nil:
		return nil, errNull
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case json.Number:
		if strings.ContainsAny(string(v), ".eE") {
			return nil, fmt.Errorf("%w: %s", errFloat, v)
		}
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return nil, err
		}
		return Int(i), nil
	case float32, float64:
		return nil, fmt.Errorf("%w: %v", errFloat, v)
	case []any:
		arr := make(Array, len(v))
		for i, e := range v {
			ev, err := toValue(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(v))
		for k, e := range v {
			ev, err := toValue(e)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = ev
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", r)
	}
}
