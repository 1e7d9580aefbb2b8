// Package analyzer infers the structural type of a JSON value. Every code and
// schema generator renders from the TypeInfo tree built here, so they agree on
// what counts as an integer and how arrays are typed.
package analyzer

import (
	"encoding/json"
	"math"
	"math/big"

	"github.com/mcncl/jsonkit/internal/models"
)

// Analyze returns the TypeInfo tree for v.
func Analyze(v models.JSONValue) models.TypeInfo {
	switch t := v.(type) {
	case nil:
		return models.TypeInfo{Kind: models.Null}
	case bool:
		return models.TypeInfo{Kind: models.Bool}
	case string:
		return models.TypeInfo{Kind: models.String}
	case json.Number:
		return analyzeNumber(t)
	case models.JSONArray:
		return analyzeArray(t)
	case *models.JSONObject:
		return analyzeObject(t)
	default:
		// Undefined and foreign values carry no type information.
		return models.TypeInfo{Kind: models.Null}
	}
}

func analyzeNumber(num json.Number) models.TypeInfo {
	if !IsIntegral(num) {
		return models.TypeInfo{Kind: models.Float}
	}
	info := models.TypeInfo{Kind: models.Integer}
	f, _ := new(big.Float).SetString(string(num))
	if f.Cmp(big.NewFloat(math.MaxInt32)) > 0 || f.Cmp(big.NewFloat(math.MinInt32)) < 0 {
		info.Wide = true
	}
	return info
}

// IsIntegral reports whether num has no fractional part, so 3, 3.0 and 3e2 are integral.
func IsIntegral(num json.Number) bool {
	if _, err := num.Int64(); err == nil {
		return true
	}
	f, ok := new(big.Float).SetString(string(num))
	if !ok || f.IsInf() {
		return false
	}
	return f.IsInt()
}

func analyzeObject(obj *models.JSONObject) models.TypeInfo {
	info := models.TypeInfo{Kind: models.Object, Fields: make([]models.FieldInfo, 0, obj.Len())}
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		if models.IsUndefined(v) {
			continue
		}
		info.Fields = append(info.Fields, models.FieldInfo{Key: key, Type: Analyze(v)})
	}
	return info
}

// analyzeArray types the array by its first element and records whether every
// remaining element has the same full type.
func analyzeArray(arr models.JSONArray) models.TypeInfo {
	info := models.TypeInfo{Kind: models.Array, Homogeneous: true}
	if len(arr) == 0 {
		return info
	}

	first := Analyze(arr[0])
	info.Elem = &first
	for i := 1; i < len(arr); i++ {
		current := Analyze(arr[i])
		if !areTypeInfosEqual(&first, &current) {
			info.Homogeneous = false
			break
		}
	}
	return info
}

// areTypeInfosEqual reports whether two TypeInfo trees describe the same type.
// Integers and floats are both numbers. Arrays compare their element types and
// objects compare field types by key, ignoring field order.
func areTypeInfosEqual(t1, t2 *models.TypeInfo) bool {
	if t1 == nil || t2 == nil {
		return t1 == t2
	}
	if isNumeric(t1.Kind) && isNumeric(t2.Kind) {
		return true
	}
	if t1.Kind != t2.Kind {
		return false
	}

	switch t1.Kind {
	case models.Array:
		return t1.Homogeneous == t2.Homogeneous && areTypeInfosEqual(t1.Elem, t2.Elem)
	case models.Object:
		if len(t1.Fields) != len(t2.Fields) {
			return false
		}
		fields := make(map[string]*models.TypeInfo, len(t1.Fields))
		for i := range t1.Fields {
			fields[t1.Fields[i].Key] = &t1.Fields[i].Type
		}
		for i := range t2.Fields {
			f1, ok := fields[t2.Fields[i].Key]
			if !ok || !areTypeInfosEqual(f1, &t2.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func isNumeric(k models.Kind) bool {
	return k == models.Integer || k == models.Float
}
