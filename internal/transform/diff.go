package transform

import (
	"strconv"

	"github.com/mcncl/jsonkit/internal/models"
)

// Diff node and change types.
const (
	DiffNoChanges    = "no_changes"
	DiffTypeMismatch = "type_mismatch"
	DiffArray        = "array_diff"
	DiffObject       = "object_diff"
	DiffChanged      = "changed"
	DiffAdded        = "added"
	DiffRemoved      = "removed"
)

// Diff describes how right differs from left as a tree of change nodes.
// Equal inputs produce {"type":"no_changes"}.
func Diff(left, right models.JSONValue) models.JSONValue {
	if models.DeepEqual(left, right) {
		out := models.NewObject(1)
		out.Set("type", DiffNoChanges)
		return out
	}
	return diffNode(left, right, "")
}

func diffNode(a, b models.JSONValue, path string) *models.JSONObject {
	if models.KindOf(a) != models.KindOf(b) {
		return valueChange(path, DiffTypeMismatch, a, b)
	}

	switch av := a.(type) {
	case models.JSONArray:
		return containerChange(path, DiffArray, diffArrays(av, b.(models.JSONArray), path))
	case *models.JSONObject:
		return containerChange(path, DiffObject, diffObjects(av, b.(*models.JSONObject), path))
	default:
		return valueChange(path, DiffChanged, a, b)
	}
}

func diffArrays(a, b models.JSONArray, path string) models.JSONArray {
	changes := models.JSONArray{}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		p := path + "[" + strconv.Itoa(i) + "]"
		switch {
		case i >= len(a):
			changes = append(changes, entry(DiffAdded, p, b[i]))
		case i >= len(b):
			changes = append(changes, entry(DiffRemoved, p, a[i]))
		case !models.DeepEqual(a[i], b[i]):
			changes = append(changes, diffNode(a[i], b[i], p))
		}
	}
	return changes
}

func diffObjects(a, b *models.JSONObject, path string) models.JSONArray {
	changes := models.JSONArray{}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		p := joinPath(path, k)
		bv, ok := b.Get(k)
		if !ok {
			changes = append(changes, entry(DiffRemoved, p, av))
			continue
		}
		if !models.DeepEqual(av, bv) {
			changes = append(changes, diffNode(av, bv, p))
		}
	}
	for _, k := range b.Keys() {
		if a.Has(k) {
			continue
		}
		bv, _ := b.Get(k)
		changes = append(changes, entry(DiffAdded, joinPath(path, k), bv))
	}
	return changes
}

func valueChange(path, kind string, oldValue, newValue models.JSONValue) *models.JSONObject {
	out := models.NewObject(4)
	out.Set("path", path)
	out.Set("type", kind)
	out.Set("oldValue", oldValue)
	out.Set("newValue", newValue)
	return out
}

func containerChange(path, kind string, changes models.JSONArray) *models.JSONObject {
	out := models.NewObject(3)
	out.Set("path", path)
	out.Set("type", kind)
	out.Set("changes", changes)
	return out
}

func entry(kind, path string, value models.JSONValue) *models.JSONObject {
	out := models.NewObject(3)
	out.Set("type", kind)
	out.Set("path", path)
	out.Set("value", value)
	return out
}

// joinPath appends an object key to a dotted path.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
