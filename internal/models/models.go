package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// JSONValue is a generic type to represent any JSON value.
// It holds nil, bool, json.Number, string, JSONArray or *JSONObject.
// The Undefined sentinel may appear in values built in Go but never in parsed text.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

type undefined struct{}

// Undefined stands in for a missing value. Serializers drop it from objects
// and write null in its place inside arrays.
var Undefined JSONValue = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v JSONValue) bool {
	_, ok := v.(undefined)
	return ok
}

// JSONObject is an object with unique keys that remembers insertion order.
// The zero value is an empty object ready to use.
type JSONObject struct {
	keys   []string
	values map[string]JSONValue
}

// NewObject returns an empty object with room for n keys.
func NewObject(n int) *JSONObject {
	return &JSONObject{
		keys:   make([]string, 0, n),
		values: make(map[string]JSONValue, n),
	}
}

// Set stores v under key. An existing key keeps its position.
func (o *JSONObject) Set(key string, v JSONValue) {
	if o.values == nil {
		o.values = make(map[string]JSONValue)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *JSONObject) Get(key string) (JSONValue, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *JSONObject) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (o *JSONObject) Delete(key string) bool {
	if !o.Has(key) {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (o *JSONObject) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *JSONObject) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// IsObject reports whether v is a JSON object.
func IsObject(v JSONValue) bool {
	_, ok := v.(*JSONObject)
	return ok
}

// IsArray reports whether v is a JSON array.
func IsArray(v JSONValue) bool {
	_, ok := v.(JSONArray)
	return ok
}

// KindOf names the dynamic JSON type of v.
func KindOf(v JSONValue) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case JSONArray:
		return "array"
	case *JSONObject:
		return "object"
	case undefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// DeepEqual compares two values structurally. Object key order is ignored
// and numbers compare by value, so 1 and 1.0 are equal.
func DeepEqual(a, b JSONValue) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case json.Number:
		bv, ok := b.(json.Number)
		return ok && NumbersEqual(av, bv)
	case undefined:
		return IsUndefined(b)
	case JSONArray:
		bv, ok := b.(JSONArray)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *JSONObject:
		bv, ok := b.(*JSONObject)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.Get(k)
			if !ok || !DeepEqual(av.values[k], other) {
				return false
			}
		}
		return true
	}
	return false
}

// NumbersEqual compares two number literals by value.
func NumbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	af, errA := a.Float64()
	bf, errB := b.Float64()
	if errA != nil || errB != nil {
		return false
	}
	return af == bf
}

// DeepClone returns a copy of v that shares no containers with it.
func DeepClone(v JSONValue) JSONValue {
	switch t := v.(type) {
	case JSONArray:
		out := make(JSONArray, len(t))
		for i, item := range t {
			out[i] = DeepClone(item)
		}
		return out
	case *JSONObject:
		out := NewObject(t.Len())
		for _, k := range t.keys {
			out.Set(k, DeepClone(t.values[k]))
		}
		return out
	default:
		return v
	}
}

// Normalize converts native Go values into the JSON value model.
// Map keys are sorted since Go maps carry no order.
func Normalize(v interface{}) (JSONValue, error) {
	switch t := v.(type) {
	case nil, bool, string, json.Number, undefined:
		return t, nil
	case float64:
		return FloatNumber(t), nil
	case float32:
		return FloatNumber(float64(t)), nil
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case []interface{}:
		out := make(JSONArray, len(t))
		for i, item := range t {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case JSONArray:
		out := make(JSONArray, len(t))
		for i, item := range t {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewObject(len(keys))
		for _, k := range keys {
			n, err := Normalize(t[k])
			if err != nil {
				return nil, err
			}
			out.Set(k, n)
		}
		return out, nil
	case *JSONObject:
		out := NewObject(t.Len())
		for _, k := range t.keys {
			n, err := Normalize(t.values[k])
			if err != nil {
				return nil, err
			}
			out.Set(k, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

// FloatNumber renders f the way JavaScript prints numbers. NaN and
// infinities have no JSON form and become null.
func FloatNumber(f float64) JSONValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return json.Number(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}
