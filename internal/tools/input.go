package tools

import (
	"github.com/mcncl/jsonkit/internal/encoder"
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
)

// Input is the data a tool runs on: raw text or an already parsed value.
type Input struct {
	text     string
	value    models.JSONValue
	hasValue bool
}

// FromText wraps raw JSON text.
func FromText(text string) Input {
	return Input{text: text}
}

// FromValue wraps a parsed value.
func FromValue(v models.JSONValue) Input {
	return Input{value: v, hasValue: true}
}

// IsValue reports whether the input carries a parsed value.
func (in Input) IsValue() bool {
	return in.hasValue
}

// Value returns the parsed input, parsing the text if needed.
func (in Input) Value(opts ...parser.Option) (models.JSONValue, error) {
	if in.hasValue {
		return in.value, nil
	}
	return parser.ParseString(in.text, opts...)
}

// Text returns the input as JSON text, serializing a parsed value.
func (in Input) Text() (string, error) {
	if in.hasValue {
		return encoder.Minify(in.value)
	}
	return in.text, nil
}
