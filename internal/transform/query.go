package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// pathSegmentRegex matches a dotted key or a bracketed index/key.
var pathSegmentRegex = regexp.MustCompile(`([^.[]+)|\[([^\]]+)\]`)

// Query walks v along a path such as "users[0].name". Negative indices count
// from the end of an array. An empty path returns v and any missing step
// yields null.
func Query(v models.JSONValue, path string) models.JSONValue {
	if path == "" {
		return v
	}

	current := v
	for _, m := range pathSegmentRegex.FindAllStringSubmatch(path, -1) {
		seg := m[1]
		if seg == "" {
			seg = unquote(m[2])
		}

		switch c := current.(type) {
		case models.JSONArray:
			idx, err := strconv.Atoi(strings.TrimSpace(seg))
			if err != nil {
				return nil
			}
			if idx < 0 {
				idx += len(c)
			}
			if idx < 0 || idx >= len(c) {
				return nil
			}
			current = c[idx]
		case *models.JSONObject:
			next, ok := c.Get(seg)
			if !ok {
				return nil
			}
			current = next
		default:
			return nil
		}
	}

	if models.IsUndefined(current) {
		return nil
	}
	return current
}

// unquote strips matching quotes from a bracketed key like ["a.b"].
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
