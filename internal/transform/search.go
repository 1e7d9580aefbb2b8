package transform

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// Match is one search hit.
type Match struct {
	Path  string
	Value models.JSONValue
}

// SearchKeys finds every object key containing keyword, ignoring case.
// Matched values are still searched.
func SearchKeys(v models.JSONValue, keyword string) []Match {
	matches := []Match{}
	needle := strings.ToLower(keyword)

	var walk func(models.JSONValue, string)
	walk = func(node models.JSONValue, path string) {
		switch t := node.(type) {
		case *models.JSONObject:
			for _, k := range t.Keys() {
				val, _ := t.Get(k)
				p := joinPath(path, k)
				if strings.Contains(strings.ToLower(k), needle) {
					matches = append(matches, Match{Path: p, Value: val})
				}
				walk(val, p)
			}
		case models.JSONArray:
			for i, item := range t {
				walk(item, path+"["+strconv.Itoa(i)+"]")
			}
		}
	}
	walk(v, "")
	return matches
}

// SearchValues finds every scalar whose text contains keyword, ignoring
// case. Numbers and booleans match on their literal text; null never matches.
func SearchValues(v models.JSONValue, keyword string) []Match {
	matches := []Match{}
	needle := strings.ToLower(keyword)

	var walk func(models.JSONValue, string)
	walk = func(node models.JSONValue, path string) {
		switch t := node.(type) {
		case *models.JSONObject:
			for _, k := range t.Keys() {
				val, _ := t.Get(k)
				walk(val, joinPath(path, k))
			}
		case models.JSONArray:
			for i, item := range t {
				walk(item, path+"["+strconv.Itoa(i)+"]")
			}
		default:
			text, ok := scalarText(node)
			if ok && strings.Contains(strings.ToLower(text), needle) {
				matches = append(matches, Match{Path: path, Value: node})
			}
		}
	}
	walk(v, "")
	return matches
}

func scalarText(v models.JSONValue) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return string(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// MatchesToValue renders matches as an array of {path, value} objects.
func MatchesToValue(matches []Match) models.JSONArray {
	out := make(models.JSONArray, 0, len(matches))
	for _, m := range matches {
		obj := models.NewObject(2)
		obj.Set("path", m.Path)
		obj.Set("value", m.Value)
		out = append(out, obj)
	}
	return out
}
