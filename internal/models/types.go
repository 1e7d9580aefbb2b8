package models

// Kind is the inferred type category of a JSON value.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Integer:
		return "integer"
	case Float:
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

// TypeInfo is the inferred type of a value, shared by the code and schema
// generators.
type TypeInfo struct {
	Kind Kind
	// Wide marks integers that do not fit in 32 bits.
	Wide bool
	// Elem is the type of the first array element, nil for empty arrays.
	Elem *TypeInfo
	// Homogeneous is true when every array element has the same type.
	Homogeneous bool
	// Fields lists object members in input order.
	Fields []FieldInfo
}

// FieldInfo is one object member.
type FieldInfo struct {
	Key  string
	Type TypeInfo
}
