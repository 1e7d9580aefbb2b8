package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/encoder"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/models"
)

// Options configures a single execution. Each tool family has its own type.
type Options interface {
	isOptions()
}

// FormatOptions configures format. An Indent of 0 gives single-line output.
type FormatOptions struct {
	Indent int
}

// SortOptions configures sortKeys.
type SortOptions struct {
	// Order is "asc" or "desc"; empty means the configured default.
	Order string
}

// FlattenOptions configures flatten and unflatten.
type FlattenOptions struct {
	Separator string
}

// DiffOptions configures diff.
type DiffOptions struct {
	CompareWith string
}

// MergeOptions configures merge.
type MergeOptions struct {
	MergeWith string
}

// CodegenOptions configures the code generators.
type CodegenOptions struct {
	// Name is the root type name.
	Name string
	// Gofmt runs the Go output through gofmt. Other generators ignore it.
	Gofmt bool
}

// PathOptions configures jsonPath. A nil Path is a missing parameter.
type PathOptions struct {
	Path *string
}

// SearchOptions configures searchKey and searchValue.
type SearchOptions struct {
	Keyword string
}

// MaskOptions configures maskFields.
type MaskOptions struct {
	// Keywords extend the built-in sensitive key list.
	Keywords []string
}

// DeleteOptions configures deleteFields.
type DeleteOptions struct {
	Fields []string
}

// RawOptions carries an undecoded option map to tools registered outside
// the built-in set.
type RawOptions map[string]any

func (FormatOptions) isOptions()  {}
func (SortOptions) isOptions()    {}
func (FlattenOptions) isOptions() {}
func (DiffOptions) isOptions()    {}
func (MergeOptions) isOptions()   {}
func (CodegenOptions) isOptions() {}
func (PathOptions) isOptions()    {}
func (SearchOptions) isOptions()  {}
func (MaskOptions) isOptions()    {}
func (DeleteOptions) isOptions()  {}
func (RawOptions) isOptions()     {}

// Option keys accepted in option maps.
const (
	KeyIndent        = "indent"
	KeyOrder         = "order"
	KeySeparator     = "separator"
	KeyCompareWith   = "compareWith"
	KeyMergeWith     = "mergeWith"
	KeyInterfaceName = "interfaceName"
	KeyClassName     = "className"
	KeyStructName    = "structName"
	KeyGofmt         = "gofmt"
	KeyPath          = "path"
	KeyKeyword       = "keyword"
	KeyKeywords      = "keywords"
	KeyFields        = "fields"
)

// nameKey returns the option key holding the root type name for a generator.
func nameKey(t ToolType) string {
	switch t {
	case ToTypeScript:
		return KeyInterfaceName
	case ToGo:
		return KeyStructName
	default:
		return KeyClassName
	}
}

// DecodeOptions converts an untyped option map into the options type of
// tool t. Absent or malformed keys fall back to the defaults in cfg; numbers
// and booleans may be given as strings and lists as comma separated text.
// Tools without options get nil and unknown tools get the map as RawOptions.
func DecodeOptions(t ToolType, m map[string]any, cfg *config.Config) (Options, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	switch t {
	case Format:
		return FormatOptions{Indent: intOption(m, KeyIndent, cfg.Defaults.Indent)}, nil
	case SortKeys:
		return SortOptions{Order: stringOption(m, KeyOrder, cfg.Defaults.Order)}, nil
	case Flatten, Unflatten:
		return FlattenOptions{Separator: stringOption(m, KeySeparator, cfg.Defaults.Separator)}, nil
	case Diff:
		text, err := documentOption(m, KeyCompareWith)
		if err != nil {
			return nil, err
		}
		return DiffOptions{CompareWith: text}, nil
	case Merge:
		text, err := documentOption(m, KeyMergeWith)
		if err != nil {
			return nil, err
		}
		return MergeOptions{MergeWith: text}, nil
	case ToTypeScript, ToJava, ToGo, ToPython:
		return CodegenOptions{
			Name:  stringOption(m, nameKey(t), defaultName(t, cfg)),
			Gofmt: boolOption(m, KeyGofmt, cfg.Defaults.Gofmt),
		}, nil
	case JSONPath:
		opts := PathOptions{}
		if raw, ok := m[KeyPath]; ok && raw != nil {
			p := scalarString(raw)
			opts.Path = &p
		}
		return opts, nil
	case SearchKey, SearchValue:
		return SearchOptions{Keyword: stringOption(m, KeyKeyword, "")}, nil
	case MaskFields:
		return MaskOptions{Keywords: listOption(m, KeyKeywords)}, nil
	case DeleteFields:
		return DeleteOptions{Fields: listOption(m, KeyFields)}, nil
	case Minify, Validate, RemoveNull, RemoveEmptyString, RemoveUndefined, DeepArrayDeduplicate, ToSchema:
		return nil, nil
	default:
		return RawOptions(m), nil
	}
}

func defaultName(t ToolType, cfg *config.Config) string {
	switch t {
	case ToTypeScript:
		return cfg.Names.TypeScript
	case ToJava:
		return cfg.Names.Java
	case ToGo:
		return cfg.Names.Go
	default:
		return cfg.Names.Python
	}
}

func intOption(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := strconv.Atoi(string(v)); err == nil {
			return n
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func boolOption(m map[string]any, key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func stringOption(m map[string]any, key, def string) string {
	raw, ok := m[key]
	if !ok || raw == nil {
		return def
	}
	if s := scalarString(raw); s != "" {
		return s
	}
	return def
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(v)
	}
}

// listOption accepts a list of strings or a comma separated string.
func listOption(m map[string]any, key string) []string {
	var items []string
	switch v := m[key].(type) {
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []any:
		for _, item := range v {
			items = append(items, scalarString(item))
		}
	case models.JSONArray:
		for _, item := range v {
			items = append(items, scalarString(item))
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// documentOption reads an option holding a second JSON document. Text is
// taken as is; any other value is serialized.
func documentOption(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	if s, ok := raw.(string); ok {
		return s, nil
	}
	v, err := models.Normalize(raw)
	if err != nil {
		return "", errors.NewExecutionError(fmt.Sprintf("option %q is not a JSON document", key), err)
	}
	text, err := encoder.Minify(v)
	if err != nil {
		return "", errors.NewExecutionError(fmt.Sprintf("option %q is not a JSON document", key), err)
	}
	return text, nil
}

// optionsOf returns opts as T, or def when opts is nil.
func optionsOf[T Options](opts Options, def T) (T, error) {
	switch o := opts.(type) {
	case nil:
		return def, nil
	case T:
		return o, nil
	default:
		var zero T
		return zero, errors.NewExecutionError(fmt.Sprintf("options of type %T do not apply, expected %T", opts, zero), nil)
	}
}
