package transform

import "github.com/mcncl/jsonkit/internal/models"

// DeleteFields removes every object key listed in fields, at any depth.
func DeleteFields(v models.JSONValue, fields []string) models.JSONValue {
	drop := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		drop[f] = struct{}{}
	}
	return deleteFields(v, drop)
}

func deleteFields(v models.JSONValue, drop map[string]struct{}) models.JSONValue {
	switch t := v.(type) {
	case *models.JSONObject:
		out := models.NewObject(t.Len())
		for _, k := range t.Keys() {
			if _, ok := drop[k]; ok {
				continue
			}
			val, _ := t.Get(k)
			out.Set(k, deleteFields(val, drop))
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, len(t))
		for i, item := range t {
			out[i] = deleteFields(item, drop)
		}
		return out
	default:
		return v
	}
}
