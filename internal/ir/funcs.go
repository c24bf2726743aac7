package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MapFunc transforms a scalar. Applied to a value of the wrong type it
// panics; the collection layer turns that into a callback error.
type MapFunc func(Value) Value

// Predicate tests a scalar.
type Predicate func(Value) bool

var mapFuncs = map[string]MapFunc{
	"identity":  func(v Value) Value { return v },
	"double":    func(v Value) Value { return mustInt("double", v) * 2 },
	"increment": func(v Value) Value { return mustInt("increment", v) + 1 },
	"negate":    func(v Value) Value { return -mustInt("negate", v) },
	"square": func(v Value) Value {
		i := mustInt("square", v)
		return i * i
	},
	"to_string": func(v Value) Value { return String(Format(v)) },
	"upper":     func(v Value) Value { return String(strings.ToUpper(string(mustString("upper", v)))) },
	"length":    func(v Value) Value { return Int(len(mustString("length", v))) },
}

var predicates = map[string]Predicate{
	"even":      func(v Value) bool { return mustInt("even", v)%2 == 0 },
	"odd":       func(v Value) bool { return mustInt("odd", v)%2 != 0 },
	"positive":  func(v Value) bool { return mustInt("positive", v) > 0 },
	"negative":  func(v Value) bool { return mustInt("negative", v) < 0 },
	"big":       func(v Value) bool { return mustInt("big", v) > 10 },
	"truthy":    func(v Value) bool { return bool(mustBool("truthy", v)) },
	"non_empty": func(v Value) bool { return mustString("non_empty", v) != "" },
}

// LookupMap returns the named map function.
func LookupMap(name string) (MapFunc, bool) {
	f, ok := mapFuncs[name]
	return f, ok
}

// LookupPredicate returns the named predicate.
func LookupPredicate(name string) (Predicate, bool) {
	p, ok := predicates[name]
	return p, ok
}

// MapFuncNames lists the registered map functions in sorted order.
func MapFuncNames() []string { return SortedKeys(mapFuncs) }

// PredicateNames lists the registered predicates in sorted order.
func PredicateNames() []string { return SortedKeys(predicates) }

// Format renders a scalar without quoting strings.
func Format(v Value) string {
	switch x := v.(type) {
	case String:
		return string(x)
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Bool:
		return strconv.FormatBool(bool(x))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SortValues orders scalars by type (bools, ints, strings) and then by value.
// Sets are compared after sorting.
func SortValues(vs Values) Values {
	out := slices.Clone(vs)
	slices.SortStableFunc(out, compareScalars)
	return out
}

func compareScalars(a, b Value) int {
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra - rb
	}
	switch x := a.(type) {
	case Bool:
		y := b.(Bool)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case Int:
		y := b.(Int)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case String:
		return strings.Compare(string(x), string(b.(String)))
	}
	return 0
}

func rank(v Value) int {
	switch v.(type) {
	case Bool:
		return 0
	case Int:
		return 1
	case String:
		return 2
	}
	return 3
}

func mustInt(fn string, v Value) Int {
	i, ok := v.(Int)
	if !ok {
		panic(fmt.Errorf("%s: want int, got %s", fn, typeName(v)))
	}
	return i
}

func mustString(fn string, v Value) String {
	s, ok := v.(String)
	if !ok {
		panic(fmt.Errorf("%s: want string, got %s", fn, typeName(v)))
	}
	return s
}

func mustBool(fn string, v Value) Bool {
	b, ok := v.(Bool)
	if !ok {
		panic(fmt.Errorf("%s: want bool, got %s", fn, typeName(v)))
	}
	return b
}

func typeName(v Value) string {
	switch v.(type) {
	case String:
		return "string"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "null"
}
