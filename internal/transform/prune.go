package transform

import "github.com/mcncl/jsonkit/internal/models"

// RemoveNull drops object fields whose value is null at every depth.
// Array elements are never removed.
func RemoveNull(v models.JSONValue) models.JSONValue {
	return prune(v, func(val models.JSONValue) bool { return val == nil }, false)
}

// RemoveEmptyString drops object fields whose value is "" at every depth.
// Whitespace-only strings are kept, and array elements are never removed.
func RemoveEmptyString(v models.JSONValue) models.JSONValue {
	return prune(v, func(val models.JSONValue) bool {
		s, ok := val.(string)
		return ok && s == ""
	}, false)
}

// RemoveUndefined drops object fields holding the Undefined sentinel and
// turns Undefined array elements into null.
func RemoveUndefined(v models.JSONValue) models.JSONValue {
	if models.IsUndefined(v) {
		return nil
	}
	return prune(v, models.IsUndefined, true)
}

func prune(v models.JSONValue, drop func(models.JSONValue) bool, nullInArrays bool) models.JSONValue {
	switch t := v.(type) {
	case *models.JSONObject:
		out := models.NewObject(t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			if drop(val) {
				continue
			}
			out.Set(k, prune(val, drop, nullInArrays))
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, len(t))
		for i, item := range t {
			if nullInArrays && drop(item) {
				out[i] = nil
				continue
			}
			out[i] = prune(item, drop, nullInArrays)
		}
		return out
	default:
		return v
	}
}
