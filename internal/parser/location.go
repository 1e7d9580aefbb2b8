package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsonkit/internal/errors"
)

// snippetWidth is how many runes of a long line are shown around the error.
const snippetWidth = 80

// SyntaxError locates a parse failure in the source text.
type SyntaxError struct {
	Reason string
	// Offset is the 0-based byte position of the error.
	Offset int
	// Line and Column are 1-based; Column counts runes.
	Line    int
	Column  int
	Context string
}

func (e *SyntaxError) Error() string {
	return e.Reason
}

// Unwrap lets callers match the generic invalid JSON sentinel.
func (e *SyntaxError) Unwrap() error {
	return errors.ErrInvalidJSON
}

func newSyntaxError(data []byte, err *json.SyntaxError) *SyntaxError {
	// The decoder reports the count of bytes consumed, which includes the
	// offending byte. At end of input there is no offending byte.
	pos := int(err.Offset) - 1
	if strings.Contains(err.Error(), "unexpected end") {
		pos = len(data)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(data) {
		pos = len(data)
	}

	text := string(data)
	line, column := Locate(text, pos)
	return &SyntaxError{
		Reason:  err.Error(),
		Offset:  pos,
		Line:    line,
		Column:  column,
		Context: Snippet(text, line, column),
	}
}

// Locate converts a byte offset into a 1-based line and rune column.
func Locate(text string, offset int) (line, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, column
}

// Snippet renders the error line, the line before it and a caret under column.
func Snippet(text string, line, column int) string {
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	gutter := len(strconv.Itoa(line))
	var b strings.Builder

	if line > 1 {
		prev, _ := clip(strings.TrimRight(lines[line-2], "\r"), 1)
		fmt.Fprintf(&b, "%*d | %s\n", gutter, line-1, prev)
	}

	current, caretAt := clip(strings.TrimRight(lines[line-1], "\r"), column)
	fmt.Fprintf(&b, "%*d | %s\n", gutter, line, current)

	pad := make([]rune, 0, caretAt)
	for i, r := range []rune(current) {
		if i >= caretAt-1 {
			break
		}
		if r == '\t' {
			pad = append(pad, '\t')
		} else {
			pad = append(pad, ' ')
		}
	}
	for len(pad) < caretAt-1 {
		pad = append(pad, ' ')
	}
	fmt.Fprintf(&b, "%s | %s^", strings.Repeat(" ", gutter), string(pad))
	return b.String()
}

// clip shortens a long line to a window around column and returns the
// column's position inside the window.
func clip(s string, column int) (string, int) {
	runes := []rune(s)
	if len(runes) <= snippetWidth {
		return s, column
	}
	start := column - snippetWidth/2
	if start < 0 {
		start = 0
	}
	end := start + snippetWidth
	if end > len(runes) {
		end = len(runes)
		start = end - snippetWidth
	}

	out := string(runes[start:end])
	at := column - start
	if start > 0 {
		out = "..." + out
		at += 3
	}
	if end < len(runes) {
		out += "..."
	}
	return out, at
}
