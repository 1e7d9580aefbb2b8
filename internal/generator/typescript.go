package generator

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/models"
)

var tsIdentifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TypeScript renders info as an exported interface. Nested objects are written
// inline and arrays whose elements disagree on type become unknown[].
func TypeScript(info models.TypeInfo, name string) string {
	name = typeName(name, DefaultTypeScriptName)
	if info.Kind != models.Object {
		return fmt.Sprintf("export type %s = %s;", name, tsType(info, 0))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "export interface %s {\n", name)
	writeTSFields(&buf, info.Fields, 1)
	buf.WriteString("}")
	return buf.String()
}

func tsType(info models.TypeInfo, depth int) string {
	switch info.Kind {
	case models.Null:
		return "null"
	case models.Bool:
		return "boolean"
	case models.Integer, models.Float:
		return "number"
	case models.String:
		return "string"
	case models.Array:
		if info.Elem == nil || !info.Homogeneous {
			return "unknown[]"
		}
		return tsType(*info.Elem, depth) + "[]"
	case models.Object:
		if len(info.Fields) == 0 {
			return "Record<string, unknown>"
		}
		var buf bytes.Buffer
		buf.WriteString("{\n")
		writeTSFields(&buf, info.Fields, depth+1)
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString("}")
		return buf.String()
	default:
		return "unknown"
	}
}

func writeTSFields(buf *bytes.Buffer, fields []models.FieldInfo, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, field := range fields {
		fmt.Fprintf(buf, "%s%s: %s;\n", indent, tsKey(field.Key), tsType(field.Type, depth))
	}
}

func tsKey(key string) string {
	if tsIdentifierRegex.MatchString(key) {
		return key
	}
	return strconv.Quote(key)
}
