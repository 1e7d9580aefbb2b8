// Package encoder serializes JSON values while keeping object key order and
// number literals exactly as they were parsed.
package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
)

// MaxIndent caps the indent width.
const MaxIndent = 10

// MaxDepth bounds nesting for values that did not come through the parser.
const MaxDepth = 10000

// Indent renders v with the given indent width. A width of 0 gives single-line output.
func Indent(v models.JSONValue, width int) (string, error) {
	if width > MaxIndent {
		width = MaxIndent
	}
	if width < 0 {
		width = 0
	}
	e := newEncoder(strings.Repeat(" ", width))
	if err := e.encode(v, 0); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

// Minify renders v as the shortest JSON text.
func Minify(v models.JSONValue) (string, error) {
	return Indent(v, 0)
}

type encoder struct {
	buf    bytes.Buffer
	indent string
	// seen holds the containers on the current path.
	seen map[containerKey]struct{}
}

// containerKey identifies a container on the current path. Arrays are keyed on
// their backing store and length, so a shorter re-slice of a parent is a
// different container. Objects use a length of -1.
type containerKey struct {
	ptr uintptr
	n   int
}

func newEncoder(indent string) *encoder {
	return &encoder{indent: indent, seen: make(map[containerKey]struct{})}
}

func (e *encoder) encode(v models.JSONValue, depth int) error {
	if depth > MaxDepth {
		return errors.NewExecutionError(fmt.Sprintf("value nests deeper than %d levels", MaxDepth), errors.ErrMaxDepth)
	}

	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		if t {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case json.Number:
		if t == "" {
			e.buf.WriteString("0")
		} else {
			e.buf.WriteString(string(t))
		}
	case string:
		writeString(&e.buf, t)
	case models.JSONArray:
		return e.encodeArray(t, depth)
	case *models.JSONObject:
		return e.encodeObject(t, depth)
	default:
		if models.IsUndefined(v) {
			e.buf.WriteString("null")
			return nil
		}
		return errors.NewExecutionError(fmt.Sprintf("cannot serialize value of type %T", v), nil)
	}
	return nil
}

func (e *encoder) encodeArray(arr models.JSONArray, depth int) error {
	if len(arr) == 0 {
		e.buf.WriteString("[]")
		return nil
	}

	key := arrayKey(arr)
	if err := e.enter(key); err != nil {
		return err
	}
	defer delete(e.seen, key)

	e.buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(item, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) encodeObject(obj *models.JSONObject, depth int) error {
	key := objectKey(obj)
	if err := e.enter(key); err != nil {
		return err
	}
	defer delete(e.seen, key)

	e.buf.WriteByte('{')
	written := 0
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		if models.IsUndefined(v) {
			continue
		}
		if written > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.buf, k)
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		if err := e.encode(v, depth+1); err != nil {
			return err
		}
		written++
	}
	if written > 0 {
		e.newline(depth)
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) enter(key containerKey) error {
	if _, ok := e.seen[key]; ok {
		return errors.NewExecutionError("cannot serialize a value that contains itself", errors.ErrCircularReference)
	}
	e.seen[key] = struct{}{}
	return nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func objectKey(obj *models.JSONObject) containerKey {
	return containerKey{ptr: reflect.ValueOf(obj).Pointer(), n: -1}
}

func arrayKey(arr models.JSONArray) containerKey {
	return containerKey{ptr: reflect.ValueOf(&arr[0]).Pointer(), n: len(arr)}
}

// writeString quotes s without escaping HTML characters.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}
