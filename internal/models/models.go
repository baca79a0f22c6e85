package models

import "encoding/json"

// JSONValue is a generic type to represent any JSON value.
// This can be nil, bool, json.Number, string, JSONArray or *JSONObject.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// JSONObject represents a JSON object. Keys keep the order in which they were
// first set, which is the order they appear in the source document.
type JSONObject struct {
	keys   []string
	values map[string]JSONValue
}

// NewObject creates an empty object with room for n members.
func NewObject(n int) *JSONObject {
	return &JSONObject{
		keys:   make([]string, 0, n),
		values: make(map[string]JSONValue, n),
	}
}

// ObjectFrom builds an object from alternating key/value pairs.
// It is mostly useful in tests: ObjectFrom("a", 1, "b", "x").
func ObjectFrom(pairs ...JSONValue) *JSONObject {
	obj := NewObject(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		obj.Set(key, pairs[i+1])
	}
	return obj
}

// Set assigns a member. New keys are appended; existing keys keep their position.
func (o *JSONObject) Set(key string, value JSONValue) {
	if o.values == nil {
		o.values = make(map[string]JSONValue)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the member stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is a member.
func (o *JSONObject) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the member keys in insertion order. The slice is a copy.
func (o *JSONObject) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of members. A nil object has none.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Range calls fn for every member in insertion order until fn returns false.
func (o *JSONObject) Range(fn func(key string, value JSONValue) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Clone returns a structurally independent deep copy of v.
// Unknown leaf types are returned as is.
func Clone(v JSONValue) JSONValue {
	switch node := v.(type) {
	case *JSONObject:
		if node == nil {
			return nil
		}
		obj := NewObject(node.Len())
		for _, k := range node.keys {
			obj.Set(k, Clone(node.values[k]))
		}
		return obj
	case JSONArray:
		if node == nil {
			return JSONArray(nil)
		}
		arr := make(JSONArray, len(node))
		for i, elem := range node {
			arr[i] = Clone(elem)
		}
		return arr
	default:
		return v
	}
}

// Equal reports whether two values are deeply equal. Object member order is ignored,
// numbers are compared by their literal text.
func Equal(a, b JSONValue) bool {
	switch x := a.(type) {
	case *JSONObject:
		y, ok := b.(*JSONObject)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		if x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, found := y.Get(k)
			if !found || !Equal(x.values[k], yv) {
				return false
			}
		}
		return true
	case JSONArray:
		y, ok := b.(JSONArray)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case json.Number:
		y, ok := b.(json.Number)
		return ok && x == y
	default:
		return a == b
	}
}

// DuplicateRecord describes a string value found at two or more paths.
type DuplicateRecord struct {
	Value string   `json:"value"`
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

// PositionSpan locates one node in serialized text. Offsets are UTF-16 code units.
type PositionSpan struct {
	Start    int  `json:"start"`
	End      int  `json:"end"`
	Line     int  `json:"line"`
	HasKey   bool `json:"hasKey,omitempty"`
	KeyStart int  `json:"keyStart,omitempty"`
	KeyEnd   int  `json:"keyEnd,omitempty"`
}

// PropertyPosition ties a property emitted by the schema projection to the
// JSON pointer it represents and the 1-based line it was rendered on.
type PropertyPosition struct {
	Pointer string `json:"pointer"`
	Line    int    `json:"line"`
}

// Projection is the result of projecting a value to a single type description.
// Err is set when the projection failed; Description then holds a diagnostic comment.
type Projection struct {
	Description string             `json:"description"`
	Properties  []PropertyPosition `json:"properties"`
	Err         error              `json:"-"`
}

// Kind categorizes an inferred type.
type Kind int

const (
	Any Kind = iota
	Null
	String
	Number
	Bool
	Object
	Array
)

// String returns the type name used in descriptions for leaf kinds.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "any"
	}
}

// TypeInfo is the structural type inferred for a JSON value.
type TypeInfo struct {
	Kind Kind
	// Fields holds object members in source order.
	Fields []FieldInfo
	// Elements holds the distinct array element types in first-seen order.
	// An empty array has no elements and renders as any[].
	Elements []ElementInfo
}

// FieldInfo is one object member of a TypeInfo.
type FieldInfo struct {
	Key     string
	Pointer string
	Type    *TypeInfo
}

// ElementInfo is one distinct array element type, remembered with the pointer
// of the element it was first inferred from.
type ElementInfo struct {
	Pointer string
	Type    *TypeInfo
}
