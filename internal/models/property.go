package models

// ValueType is the inferred type of a scalar together with the literal used
// when a default value is requested.
type ValueType struct {
	TypeName       string
	DefaultLiteral string
}

// Built-in value types.
var (
	BoolType   = ValueType{TypeName: "Bool", DefaultLiteral: "false"}
	IntType    = ValueType{TypeName: "Int", DefaultLiteral: "0"}
	DoubleType = ValueType{TypeName: "Double", DefaultLiteral: "0.0"}
	StringType = ValueType{TypeName: "String", DefaultLiteral: `""`}
	AnyType    = ValueType{TypeName: "Any", DefaultLiteral: "nil"}
)

// PropertyKind describes the shape a Property was inferred from.
type PropertyKind int

const (
	Scalar PropertyKind = iota
	ObjectKind
	ArrayOfScalar
	ArrayOfObject
	EmptyArray
)

// String returns a readable name for the kind.
func (k PropertyKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case ObjectKind:
		return "object"
	case ArrayOfScalar:
		return "array-of-scalar"
	case ArrayOfObject:
		return "array-of-object"
	case EmptyArray:
		return "empty-array"
	default:
		return "unknown"
	}
}

// Property is a node of the inferred type tree: one JSON key, or the
// document root when Key is empty.
type Property struct {
	// Key is the original JSON key.
	Key string
	// Name is the identifier derived from Key.
	Name string
	Kind PropertyKind
	// Value is set for Scalar and ArrayOfScalar properties.
	Value ValueType
	// Children is set for ObjectKind and ArrayOfObject properties, in
	// document order with unique keys.
	Children []*Property
	// TypeName is the synthesized name of a nested type, pending
	// replacement by the caller.
	TypeName string
}

// HasNestedType reports whether the property declares its own type.
func (p *Property) HasNestedType() bool {
	return p.Kind == ObjectKind || p.Kind == ArrayOfObject
}

// Child returns the direct child with the given key.
func (p *Property) Child(key string) (*Property, bool) {
	for _, c := range p.Children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}
