package transform

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// Deduplicate removes repeated array elements at every depth, keeping the
// first occurrence. Elements are deduplicated internally before they are
// compared, and objects compare without regard to key order.
func Deduplicate(v models.JSONValue) models.JSONValue {
	switch t := v.(type) {
	case models.JSONArray:
		out := make(models.JSONArray, 0, len(t))
		seen := make(map[string]struct{}, len(t))
		for _, item := range t {
			item = Deduplicate(item)
			key := canonicalKey(item)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
		return out
	case *models.JSONObject:
		out := models.NewObject(t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out.Set(k, Deduplicate(val))
		}
		return out
	default:
		return v
	}
}

// canonicalKey renders v so that values equal under models.DeepEqual map to
// the same string.
func canonicalKey(v models.JSONValue) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v models.JSONValue) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case json.Number:
		b.WriteByte('n')
		if f, err := t.Float64(); err == nil {
			if f == 0 {
				// -0 equals 0.
				f = 0
			}
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		} else {
			b.WriteString(string(t))
		}
	case string:
		b.WriteString(strconv.Quote(t))
	case models.JSONArray:
		b.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case *models.JSONObject:
		keys := t.Keys()
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			val, _ := t.Get(k)
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, val)
		}
		b.WriteByte('}')
	default:
		b.WriteString("undefined")
	}
}
