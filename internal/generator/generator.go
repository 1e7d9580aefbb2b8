// Package generator renders type definitions in other languages from an
// analyzer.TypeInfo tree.
package generator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Default root type names per language.
const (
	DefaultTypeScriptName = "MyType"
	DefaultJavaName       = "MyClass"
	DefaultGoName         = "MyStruct"
	DefaultPythonName     = "MyData"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// typeName turns a user supplied name into a PascalCase identifier.
func typeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if identifierRegex.MatchString(name) {
		return name
	}
	name = strcase.ToCamel(keepIdentifierRunes(name))
	if name == "" {
		return fallback
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "T" + name
	}
	return name
}

// keepIdentifierRunes replaces everything but letters and digits with spaces
// so strcase treats it as a word boundary.
func keepIdentifierRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
}

// uniqueNames hands out identifiers, suffixing repeats with 2, 3, ...
type uniqueNames map[string]int

func (u uniqueNames) claim(name string) string {
	u[name]++
	if n := u[name]; n > 1 {
		candidate := name + strconv.Itoa(n)
		for u[candidate] > 0 {
			u[name]++
			candidate = name + strconv.Itoa(u[name])
		}
		u[candidate]++
		return candidate
	}
	return name
}
