package generator

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonkit/internal/models"
)

var javaKeywords = setOf(
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char", "class", "const",
	"continue", "default", "do", "double", "else", "enum", "extends", "final", "finally", "float",
	"for", "goto", "if", "implements", "import", "instanceof", "int", "interface", "long", "native",
	"new", "package", "private", "protected", "public", "return", "short", "static", "strictfp",
	"super", "switch", "synchronized", "this", "throw", "throws", "transient", "try", "void",
	"volatile", "while", "true", "false", "null", "var", "record", "yield",
)

// Java renders info as a class with one private field per key. A non-object
// value is wrapped in a single field named value.
func Java(info models.TypeInfo, name string) string {
	name = typeName(name, DefaultJavaName)
	fields := rootFields(info)

	var body bytes.Buffer
	usesList := false
	names := uniqueNames{}
	for _, field := range fields {
		t := javaType(field.Type)
		usesList = usesList || strings.Contains(t, "List<")
		fmt.Fprintf(&body, "  private %s %s;\n", t, names.claim(javaFieldName(field.Key)))
	}

	var buf bytes.Buffer
	if usesList {
		buf.WriteString("import java.util.List;\n\n")
	}
	fmt.Fprintf(&buf, "public class %s {\n", name)
	buf.Write(body.Bytes())
	buf.WriteString("}")
	return buf.String()
}

func javaType(info models.TypeInfo) string {
	switch info.Kind {
	case models.Bool:
		return "Boolean"
	case models.Integer:
		if info.Wide {
			return "Long"
		}
		return "Integer"
	case models.Float:
		return "Double"
	case models.String:
		return "String"
	case models.Array:
		if info.Elem == nil {
			return "List<Object>"
		}
		return "List<" + javaType(*info.Elem) + ">"
	default:
		return "Object"
	}
}

// javaFieldName converts a key to snake_case, keeping the JSON spelling readable.
func javaFieldName(key string) string {
	name := strcase.ToSnake(keepIdentifierRunes(key))
	if name == "" {
		return "field"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	if _, reserved := javaKeywords[name]; reserved {
		name += "_"
	}
	return name
}

// rootFields returns the fields of an object, or a single value field otherwise.
func rootFields(info models.TypeInfo) []models.FieldInfo {
	if info.Kind == models.Object {
		return info.Fields
	}
	return []models.FieldInfo{{Key: "value", Type: info}}
}

func setOf(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
