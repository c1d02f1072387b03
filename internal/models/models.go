package models

import (
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a JSONValue.
type ValueKind int

const (
	Null ValueKind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON name of the kind.
func (k ValueKind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// JSONNumber is a JSON number kept as its raw literal so that integral and
// fractional values can be told apart without going through float64.
type JSONNumber string

// IsIntegral reports whether the literal has no fraction or exponent and
// fits in an int64.
func (n JSONNumber) IsIntegral() bool {
	if strings.ContainsAny(string(n), ".eE") {
		return false
	}
	_, err := strconv.ParseInt(string(n), 10, 64)
	return err == nil
}

// Int64 returns the number as an int64.
func (n JSONNumber) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Float64 returns the number as a float64.
func (n JSONNumber) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Member is one key/value entry of a JSON object.
type Member struct {
	Key   string
	Value JSONValue
}

// JSONValue is a parsed JSON value. Only the field matching Kind is set.
// Object members keep their document order.
type JSONValue struct {
	Kind    ValueKind
	Bool    bool
	Number  JSONNumber
	String  string
	Array   []JSONValue
	Members []Member
}

// NullValue returns a JSON null.
func NullValue() JSONValue { return JSONValue{Kind: Null} }

// BoolValue wraps a boolean.
func BoolValue(b bool) JSONValue { return JSONValue{Kind: Bool, Bool: b} }

// NumberValue wraps a raw number literal.
func NumberValue(literal string) JSONValue {
	return JSONValue{Kind: Number, Number: JSONNumber(literal)}
}

// StringValue wraps a string.
func StringValue(s string) JSONValue { return JSONValue{Kind: String, String: s} }

// ArrayValue wraps a list of elements.
func ArrayValue(elements ...JSONValue) JSONValue {
	if elements == nil {
		elements = []JSONValue{}
	}
	return JSONValue{Kind: Array, Array: elements}
}

// ObjectValue wraps an ordered list of members.
func ObjectValue(members ...Member) JSONValue {
	if members == nil {
		members = []Member{}
	}
	return JSONValue{Kind: Object, Members: members}
}

// IsScalar reports whether the value is neither an array nor an object.
func (v JSONValue) IsScalar() bool {
	return v.Kind != Array && v.Kind != Object
}

// Get looks up an object member by key.
func (v JSONValue) Get(key string) (JSONValue, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return JSONValue{}, false
}

// Keys returns the object's keys in document order.
func (v JSONValue) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}
