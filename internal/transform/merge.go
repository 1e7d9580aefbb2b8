package transform

import "github.com/mcncl/jsonkit/internal/models"

// Merge deep-merges source into target. Objects merge key by key; arrays and
// scalars from source replace what target holds. A non-object target merged
// with an object source yields a copy of the source.
func Merge(target, source models.JSONValue) models.JSONValue {
	src, ok := source.(*models.JSONObject)
	if !ok {
		return models.DeepClone(source)
	}

	var out *models.JSONObject
	if t, ok := target.(*models.JSONObject); ok {
		out = models.DeepClone(t).(*models.JSONObject)
	} else {
		out = models.NewObject(src.Len())
	}

	for _, k := range src.Keys() {
		sv, _ := src.Get(k)
		tv, exists := out.Get(k)
		if exists && models.IsObject(tv) && models.IsObject(sv) {
			out.Set(k, Merge(tv, sv))
			continue
		}
		out.Set(k, models.DeepClone(sv))
	}
	return out
}
