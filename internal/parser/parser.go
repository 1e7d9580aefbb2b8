package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/spf13/afero"
)

// DefaultMaxDepth bounds container nesting so later recursive passes stay shallow.
const DefaultMaxDepth = 1000

type settings struct {
	maxDepth int
}

// Option tunes parsing.
type Option func(*settings)

// WithMaxDepth sets the deepest allowed container nesting. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Parse reads all of reader and decodes a single JSON value, keeping object key order.
func Parse(reader io.Reader, opts ...Option) (models.JSONValue, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, opts...)
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (models.JSONValue, error) {
	return ParseBytes([]byte(jsonString), opts...)
}

// ParseBytes parses JSON from a byte slice.
func ParseBytes(data []byte, opts ...Option) (models.JSONValue, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}

	// Unmarshal validates the whole document up front and reports the
	// offset of the first syntax error, including trailing data.
	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			se := newSyntaxError(data, syntaxError)
			if hasMultipleValues(data) {
				return nil, errors.NewInvalidJSONError(
					fmt.Sprintf("JSON text has trailing data at line %d, column %d", se.Line, se.Column),
					fmt.Errorf("%w: %w", errors.ErrMultipleJSON, se),
				)
			}
			return nil, errors.NewInvalidJSONError(
				fmt.Sprintf("JSON syntax error at line %d, column %d", se.Line, se.Column),
				se,
			)
		}
		return nil, errors.NewInvalidJSONError("failed to decode JSON", err)
	}

	s := newSettings(opts)
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := decodeValue(decoder, 0, s.maxDepth)
	if err != nil {
		if stderrors.Is(err, errors.ErrMaxDepth) {
			return nil, errors.NewInputError(fmt.Sprintf("nesting deeper than %d levels", s.maxDepth), err)
		}
		return nil, errors.NewInvalidJSONError("failed to decode JSON", err)
	}
	return value, nil
}

// hasMultipleValues reports whether data holds a complete JSON value followed
// by another complete value, as in `{} {}`.
func hasMultipleValues(data []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	var first, second json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return false
	}
	return dec.Decode(&second) == nil
}

// ReadFile returns the raw contents of a non-empty file.
func ReadFile(fs afero.Fs, filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := afero.ReadFile(fs, filePath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return data, nil
}

func decodeValue(dec *json.Decoder, depth, maxDepth int) (models.JSONValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}
	if depth >= maxDepth {
		return nil, errors.ErrMaxDepth
	}

	switch delim {
	case '{':
		obj := models.NewObject(0)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			v, err := decodeValue(dec, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := models.JSONArray{}
		for dec.More() {
			v, err := decodeValue(dec, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
