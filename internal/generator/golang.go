package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonkit/internal/models"
)

// Go renders info as a Go type declaration. Objects become a struct with one
// tagged field per key; nested objects are typed as any.
func Go(info models.TypeInfo, name string) string {
	name = typeName(name, DefaultGoName)

	var buf bytes.Buffer
	if info.Kind != models.Object {
		fmt.Fprintf(&buf, "type %s %s", name, goType(info))
		return buf.String()
	}

	fmt.Fprintf(&buf, "type %s struct {\n", name)
	names := uniqueNames{}
	for _, field := range info.Fields {
		fmt.Fprintf(&buf, "\t%s %s %s\n", names.claim(goFieldName(field.Key)), goType(field.Type), goTag(field.Key))
	}
	buf.WriteString("}")
	return buf.String()
}

// goType converts a TypeInfo to a string representation of the Go type
func goType(info models.TypeInfo) string {
	switch info.Kind {
	case models.Bool:
		return "bool"
	case models.Integer:
		if info.Wide {
			return "int64"
		}
		return "int"
	case models.Float:
		return "float64"
	case models.String:
		return "string"
	case models.Array:
		if info.Elem == nil {
			return "[]any"
		}
		return "[]" + goType(*info.Elem)
	default:
		return "any"
	}
}

// goFieldName exports a JSON key as a PascalCase Go identifier.
func goFieldName(key string) string {
	name := strcase.ToCamel(keepIdentifierRunes(key))
	if name == "" {
		return "Field"
	}
	if first := []rune(name)[0]; !unicode.IsUpper(first) {
		name = "Field" + name
	}
	return name
}

func goTag(key string) string {
	tag := "json:" + strconv.Quote(key)
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
