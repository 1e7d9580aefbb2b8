// Package transform holds the pure JSON transformations behind the tools.
// Every function returns a new value and leaves its input untouched.
package transform

import (
	"fmt"
	"sort"

	"github.com/mcncl/jsonkit/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortKeys returns a copy of v with object keys sorted at every depth.
// Keys compare lexicographically under the root Unicode collation, so "10"
// sorts before "2". Ties break on byte order. Array element order is kept.
func SortKeys(v models.JSONValue, order string) (models.JSONValue, error) {
	if order == "" {
		order = OrderAsc
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, fmt.Errorf("unknown sort order %q, expected asc or desc", order)
	}
	// A collator keeps internal buffers, so each call gets its own.
	c := collate.New(language.Und)
	return sortKeys(v, c, order == OrderDesc), nil
}

func sortKeys(v models.JSONValue, c *collate.Collator, desc bool) models.JSONValue {
	switch t := v.(type) {
	case *models.JSONObject:
		keys := t.Keys()
		sort.SliceStable(keys, func(i, j int) bool {
			cmp := c.CompareString(keys[i], keys[j])
			if cmp == 0 {
				cmp = compareBytes(keys[i], keys[j])
			}
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
		out := models.NewObject(len(keys))
		for _, k := range keys {
			val, _ := t.Get(k)
			out.Set(k, sortKeys(val, c, desc))
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, len(t))
		for i, item := range t {
			out[i] = sortKeys(item, c, desc)
		}
		return out
	default:
		return v
	}
}

func compareBytes(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
