package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

// DefaultSeparator joins object keys in flattened paths.
const DefaultSeparator = "."

// maxUnflattenIndex bounds the arrays Unflatten will allocate for sparse indices.
const maxUnflattenIndex = 100000

// Flatten collapses v into a single-level object keyed by path. Object keys
// are joined with sep and array indices are written as [i]. Empty containers
// below the root are kept as leaves; a scalar root is stored under "".
func Flatten(v models.JSONValue, sep string) *models.JSONObject {
	if sep == "" {
		sep = DefaultSeparator
	}
	out := models.NewObject(0)
	switch v.(type) {
	case *models.JSONObject, models.JSONArray:
		flattenInto(out, v, "", sep)
	default:
		out.Set("", v)
	}
	return out
}

func flattenInto(out *models.JSONObject, v models.JSONValue, prefix, sep string) {
	switch t := v.(type) {
	case *models.JSONObject:
		if t.Len() == 0 {
			if prefix != "" {
				out.Set(prefix, models.NewObject(0))
			}
			return
		}
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			key := k
			if prefix != "" {
				key = prefix + sep + k
			}
			flattenInto(out, val, key, sep)
		}
	case models.JSONArray:
		if len(t) == 0 {
			if prefix != "" {
				out.Set(prefix, models.JSONArray{})
			}
			return
		}
		for i, item := range t {
			flattenInto(out, item, prefix+"["+strconv.Itoa(i)+"]", sep)
		}
	default:
		out.Set(prefix, v)
	}
}

// segment is one step of a flattened path.
type segment struct {
	key string
	// bracket marks an [i] index.
	bracket bool
}

// index returns the array position the segment addresses, if any.
func (s segment) index() (int, bool) {
	if s.key == "" || strings.TrimLeft(s.key, "0123456789") != "" {
		return 0, false
	}
	i, err := strconv.Atoi(s.key)
	if err != nil {
		return 0, false
	}
	return i, true
}

// opensArray reports whether a container created for s should be an array.
func (s segment) opensArray() bool {
	_, ok := s.index()
	return ok
}

// parseFlatKey splits a flattened key on sep and then on [i] suffixes.
func parseFlatKey(key, sep string) []segment {
	var segs []segment
	for _, part := range strings.Split(key, sep) {
		name, indices, ok := splitIndices(part)
		if !ok {
			segs = append(segs, segment{key: part})
			continue
		}
		if name != "" {
			segs = append(segs, segment{key: name})
		}
		for _, idx := range indices {
			segs = append(segs, segment{key: idx, bracket: true})
		}
	}
	return segs
}

// splitIndices separates "name[0][1]" into name and its indices. ok is
// false when the part has no well formed index suffix.
func splitIndices(part string) (name string, indices []string, ok bool) {
	open := strings.IndexByte(part, '[')
	if open < 0 || !strings.HasSuffix(part, "]") {
		return "", nil, false
	}
	name, rest := part[:open], part[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		digits := rest[1:end]
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return "", nil, false
		}
		indices = append(indices, digits)
		rest = rest[end+1:]
	}
	return name, indices, true
}

// Unflatten rebuilds a nested value from a flattened object. A segment opens
// an array when it is an [i] index or consists only of digits; missing array
// slots are filled with null. The root is an array when keys start with [i].
func Unflatten(flat *models.JSONObject, sep string) (models.JSONValue, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	if flat.Len() == 1 && flat.Has("") {
		v, _ := flat.Get("")
		return v, nil
	}

	var root models.JSONValue = models.NewObject(0)
	for i, key := range flat.Keys() {
		segs := parseFlatKey(key, sep)
		if i == 0 && len(segs) > 0 && segs[0].bracket {
			root = models.JSONArray{}
		}
		val, _ := flat.Get(key)
		updated, err := assign(root, segs, models.DeepClone(val), key)
		if err != nil {
			return nil, err
		}
		root = updated
	}
	return root, nil
}

func assign(container models.JSONValue, segs []segment, value models.JSONValue, fullKey string) (models.JSONValue, error) {
	seg, rest := segs[0], segs[1:]

	switch c := container.(type) {
	case *models.JSONObject:
		if len(rest) == 0 {
			c.Set(seg.key, value)
			return c, nil
		}
		child, _ := c.Get(seg.key)
		child, err := assign(containerFor(child, rest[0]), rest, value, fullKey)
		if err != nil {
			return nil, err
		}
		c.Set(seg.key, child)
		return c, nil
	case models.JSONArray:
		idx, ok := seg.index()
		if !ok {
			return nil, fmt.Errorf("key %q: segment %q cannot index an array", fullKey, seg.key)
		}
		if idx > maxUnflattenIndex {
			return nil, fmt.Errorf("key %q: index %d exceeds the limit of %d", fullKey, idx, maxUnflattenIndex)
		}
		for len(c) <= idx {
			c = append(c, nil)
		}
		if len(rest) == 0 {
			c[idx] = value
			return c, nil
		}
		child, err := assign(containerFor(c[idx], rest[0]), rest, value, fullKey)
		if err != nil {
			return nil, err
		}
		c[idx] = child
		return c, nil
	default:
		return nil, fmt.Errorf("key %q: cannot descend into a %s", fullKey, models.KindOf(container))
	}
}

// containerFor returns existing when it is already a container, otherwise a
// new container suited to the next segment.
func containerFor(existing models.JSONValue, next segment) models.JSONValue {
	switch existing.(type) {
	case *models.JSONObject, models.JSONArray:
		return existing
	}
	if next.opensArray() {
		return models.JSONArray{}
	}
	return models.NewObject(0)
}
