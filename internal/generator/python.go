package generator

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonkit/internal/models"
)

const pythonHeader = "from dataclasses import dataclass\nfrom typing import Any, Dict, List\n\n"

var pythonKeywords = setOf(
	"False", "None", "True", "and", "as", "assert", "async", "await", "break", "class",
	"continue", "def", "del", "elif", "else", "except", "finally", "for", "from", "global",
	"if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise", "return",
	"try", "while", "with", "yield",
)

// Python renders info as a dataclass. Fields that were null default to None
// and are listed after the required ones.
func Python(info models.TypeInfo, name string) string {
	name = typeName(name, DefaultPythonName)
	fields := rootFields(info)

	var buf bytes.Buffer
	buf.WriteString(pythonHeader)
	buf.WriteString("@dataclass\n")
	fmt.Fprintf(&buf, "class %s:\n", name)
	if len(fields) == 0 {
		buf.WriteString("    pass")
		return buf.String()
	}

	names := uniqueNames{}
	var required, optional []string
	for _, field := range fields {
		fieldName := names.claim(pythonFieldName(field.Key))
		if field.Type.Kind == models.Null {
			optional = append(optional, fmt.Sprintf("    %s: Any | None = None", fieldName))
			continue
		}
		required = append(required, fmt.Sprintf("    %s: %s", fieldName, pythonType(field.Type)))
	}

	lines := append(required, optional...)
	for i, line := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
	}
	return buf.String()
}

func pythonType(info models.TypeInfo) string {
	switch info.Kind {
	case models.Null:
		return "Any | None"
	case models.Bool:
		return "bool"
	case models.Integer:
		return "int"
	case models.Float:
		return "float"
	case models.String:
		return "str"
	case models.Array:
		if info.Elem == nil {
			return "List[Any]"
		}
		return "List[" + pythonType(*info.Elem) + "]"
	default:
		return "Dict[str, Any]"
	}
}

func pythonFieldName(key string) string {
	name := strcase.ToSnake(keepIdentifierRunes(key))
	if name == "" {
		return "field"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	if _, reserved := pythonKeywords[name]; reserved {
		name += "_"
	}
	return name
}
