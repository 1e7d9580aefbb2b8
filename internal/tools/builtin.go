package tools

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mcncl/jsonkit/internal/analyzer"
	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/encoder"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/formatter"
	"github.com/mcncl/jsonkit/internal/generator"
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/mcncl/jsonkit/internal/schema"
	"github.com/mcncl/jsonkit/internal/transform"
)

// resultIndent is the indent width of every JSON result except format's.
const resultIndent = 2

// builtins holds what the built-in tools share.
type builtins struct {
	cfg    *config.Config
	parse  []parser.Option
	masker *transform.Masker
}

// Builtins returns the built-in tools in display order, with defaults taken
// from cfg.
func Builtins(cfg *config.Config) []Tool {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	b := &builtins{
		cfg:    cfg,
		parse:  []parser.Option{parser.WithMaxDepth(cfg.Limits.MaxDepth)},
		masker: transform.NewMasker(cfg.Mask.Keywords, cfg.Mask.KeyMatchers()...),
	}

	return []Tool{
		{
			Name: "JSON Format", Category: CategoryBasic, Type: Format,
			Description: "Pretty-print JSON with a configurable indent",
			Parameters: []ParameterDef{
				{Name: KeyIndent, Type: "integer", Description: "Indent width, 0 for a single line (max 10)"},
			},
			Execute: b.format,
		},
		{
			Name: "JSON Minify", Category: CategoryBasic, Type: Minify,
			Description: "Remove all insignificant whitespace",
			Execute:     b.minify,
		},
		{
			Name: "JSON Validate", Category: CategoryBasic, Type: Validate,
			Description: "Check JSON syntax and point at the first error",
			Execute:     b.validate,
		},
		{
			Name: "Sort Keys", Category: CategoryBasic, Type: SortKeys,
			Description: "Sort object keys recursively",
			Parameters: []ParameterDef{
				{Name: KeyOrder, Type: "string", Description: "asc or desc"},
			},
			Execute: b.sortKeys,
		},
		{
			Name: "Remove Null", Category: CategoryBasic, Type: RemoveNull,
			Description: "Drop object fields whose value is null",
			Execute:     b.valueTool(transform.RemoveNull),
		},
		{
			Name: "Remove Empty Strings", Category: CategoryBasic, Type: RemoveEmptyString,
			Description: "Drop object fields whose value is an empty string",
			Execute:     b.valueTool(transform.RemoveEmptyString),
		},
		{
			Name: "Remove Undefined", Category: CategoryBasic, Type: RemoveUndefined,
			Description: "Drop undefined object fields and null undefined array slots",
			Execute:     b.valueTool(transform.RemoveUndefined),
		},
		{
			Name: "Deduplicate Arrays", Category: CategoryBasic, Type: DeepArrayDeduplicate,
			Description: "Remove repeated elements from every array",
			Execute:     b.valueTool(transform.Deduplicate),
		},
		{
			Name: "Flatten", Category: CategoryDataStructure, Type: Flatten,
			Description: "Collapse nested JSON into a single level of path keys",
			Parameters: []ParameterDef{
				{Name: KeySeparator, Type: "string", Description: "Separator between object keys"},
			},
			Execute: b.flatten,
		},
		{
			Name: "Unflatten", Category: CategoryDataStructure, Type: Unflatten,
			Description: "Rebuild nested JSON from path keys",
			Parameters: []ParameterDef{
				{Name: KeySeparator, Type: "string", Description: "Separator between object keys"},
			},
			Execute: b.unflatten,
		},
		{
			Name: "Diff", Category: CategoryDataStructure, Type: Diff,
			Description: "Compare the input with another document",
			Parameters: []ParameterDef{
				{Name: KeyCompareWith, Type: "string", Description: "JSON text to compare against", Required: true},
			},
			Execute: b.diff,
		},
		{
			Name: "Merge", Category: CategoryDataStructure, Type: Merge,
			Description: "Deep-merge another document into the input",
			Parameters: []ParameterDef{
				{Name: KeyMergeWith, Type: "string", Description: "JSON text merged on top of the input", Required: true},
			},
			Execute: b.merge,
		},
		{
			Name: "To TypeScript", Category: CategoryConversion, Type: ToTypeScript,
			Description: "Generate a TypeScript interface",
			Parameters: []ParameterDef{
				{Name: KeyInterfaceName, Type: "string", Description: "Interface name"},
			},
			Execute: b.codegen(ToTypeScript, generator.TypeScript),
		},
		{
			Name: "To Java", Category: CategoryConversion, Type: ToJava,
			Description: "Generate a Java class",
			Parameters: []ParameterDef{
				{Name: KeyClassName, Type: "string", Description: "Class name"},
			},
			Execute: b.codegen(ToJava, generator.Java),
		},
		{
			Name: "To Go", Category: CategoryConversion, Type: ToGo,
			Description: "Generate a Go struct",
			Parameters: []ParameterDef{
				{Name: KeyStructName, Type: "string", Description: "Struct name"},
				{Name: KeyGofmt, Type: "boolean", Description: "Run the output through gofmt"},
			},
			Execute: b.codegen(ToGo, generator.Go),
		},
		{
			Name: "To Python", Category: CategoryConversion, Type: ToPython,
			Description: "Generate a Python dataclass",
			Parameters: []ParameterDef{
				{Name: KeyClassName, Type: "string", Description: "Class name"},
			},
			Execute: b.codegen(ToPython, generator.Python),
		},
		{
			Name: "To JSON Schema", Category: CategoryConversion, Type: ToSchema,
			Description: "Infer a draft-07 JSON Schema",
			Execute:     b.toSchema,
		},
		{
			Name: "JSON Path", Category: CategoryQuery, Type: JSONPath,
			Description: "Read the value at a path such as items[0].name",
			Parameters: []ParameterDef{
				{Name: KeyPath, Type: "string", Description: "Path expression; empty returns the input", Required: true},
			},
			Execute: b.jsonPath,
		},
		{
			Name: "Search Keys", Category: CategoryQuery, Type: SearchKey,
			Description: "Find keys containing a keyword",
			Parameters: []ParameterDef{
				{Name: KeyKeyword, Type: "string", Description: "Case-insensitive keyword", Required: true},
			},
			Execute: b.search(transform.SearchKeys),
		},
		{
			Name: "Search Values", Category: CategoryQuery, Type: SearchValue,
			Description: "Find scalar values containing a keyword",
			Parameters: []ParameterDef{
				{Name: KeyKeyword, Type: "string", Description: "Case-insensitive keyword", Required: true},
			},
			Execute: b.search(transform.SearchValues),
		},
		{
			Name: "Mask Fields", Category: CategorySecurity, Type: MaskFields,
			Description: "Mask personal data such as emails, phone numbers and secrets",
			Parameters: []ParameterDef{
				{Name: KeyKeywords, Type: "array", Description: "Extra sensitive key keywords"},
			},
			Execute: b.maskFields,
		},
		{
			Name: "Delete Fields", Category: CategorySecurity, Type: DeleteFields,
			Description: "Remove the named keys at every depth",
			Parameters: []ParameterDef{
				{Name: KeyFields, Type: "array", Description: "Keys to remove", Required: true},
			},
			Execute: b.deleteFields,
		},
	}
}

// load returns the parsed input. Parsed values are checked for cycles so the
// recursive passes that follow terminate.
func (b *builtins) load(in Input) (models.JSONValue, error) {
	v, err := in.Value(b.parse...)
	if err != nil {
		return nil, err
	}
	if in.IsValue() {
		if _, err := encoder.Minify(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// document parses the text of a required option holding a second document.
func (b *builtins) document(key, text string) (models.JSONValue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewMissingParameterError(key)
	}
	v, err := parser.ParseString(text, b.parse...)
	if err != nil {
		return nil, errors.NewInvalidJSONError(fmt.Sprintf("option %q: %s", key, errors.Message(err)), nil)
	}
	return v, nil
}

func render(v models.JSONValue, metadata map[string]any) (Output, error) {
	text, err := encoder.Indent(v, resultIndent)
	if err != nil {
		return Output{}, err
	}
	return Output{Text: text, Metadata: metadata}, nil
}

// valueTool adapts an option-less value transformation.
func (b *builtins) valueTool(fn func(models.JSONValue) models.JSONValue) Func {
	return func(in Input, _ Options) (Output, error) {
		v, err := b.load(in)
		if err != nil {
			return Output{}, err
		}
		return render(fn(v), nil)
	}
}

func (b *builtins) format(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, FormatOptions{Indent: b.cfg.Defaults.Indent})
	if err != nil {
		return Output{}, err
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}

	indent := min(max(o.Indent, 0), encoder.MaxIndent)
	text, err := encoder.Indent(v, indent)
	if err != nil {
		return Output{}, err
	}
	return Output{Text: text, Metadata: map[string]any{"indent": indent}}, nil
}

func (b *builtins) minify(in Input, _ Options) (Output, error) {
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	text, err := encoder.Minify(v)
	if err != nil {
		return Output{}, err
	}
	return Output{Text: text}, nil
}

// validate works on text; a parsed value is serialized first.
func (b *builtins) validate(in Input, _ Options) (Output, error) {
	text, err := in.Text()
	if err != nil {
		return Output{Metadata: map[string]any{"valid": false}}, err
	}

	v, err := parser.ParseString(text, b.parse...)
	if err != nil {
		var se *parser.SyntaxError
		if !stderrors.As(err, &se) {
			return Output{Metadata: map[string]any{"valid": false}}, err
		}
		msg := fmt.Sprintf("JSON syntax error at line %d, column %d: %s", se.Line, se.Column, se.Reason)
		if se.Context != "" {
			msg += "\n" + se.Context
		}
		return Output{Metadata: map[string]any{
			"valid":  false,
			"line":   se.Line,
			"column": se.Column,
			"offset": se.Offset,
		}}, errors.NewInvalidJSONError(msg, nil)
	}
	return render(v, map[string]any{"valid": true})
}

func (b *builtins) sortKeys(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, SortOptions{})
	if err != nil {
		return Output{}, err
	}
	if o.Order == "" {
		o.Order = b.cfg.Defaults.Order
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	sorted, err := transform.SortKeys(v, o.Order)
	if err != nil {
		return Output{}, errors.NewExecutionError(err.Error(), nil)
	}
	return render(sorted, map[string]any{"order": o.Order})
}

func (b *builtins) separator(opts Options) (string, error) {
	o, err := optionsOf(opts, FlattenOptions{})
	if err != nil {
		return "", err
	}
	if o.Separator == "" {
		return b.cfg.Defaults.Separator, nil
	}
	return o.Separator, nil
}

func (b *builtins) flatten(in Input, opts Options) (Output, error) {
	sep, err := b.separator(opts)
	if err != nil {
		return Output{}, err
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	return render(transform.Flatten(v, sep), map[string]any{"separator": sep})
}

func (b *builtins) unflatten(in Input, opts Options) (Output, error) {
	sep, err := b.separator(opts)
	if err != nil {
		return Output{}, err
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	flat, ok := v.(*models.JSONObject)
	if !ok {
		return Output{}, errors.NewExecutionError(fmt.Sprintf("unflatten expects an object, got %s", models.KindOf(v)), nil)
	}
	nested, err := transform.Unflatten(flat, sep)
	if err != nil {
		return Output{}, errors.NewExecutionError(err.Error(), nil)
	}
	return render(nested, map[string]any{"separator": sep})
}

func (b *builtins) diff(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, DiffOptions{})
	if err != nil {
		return Output{}, err
	}
	other, err := b.document(KeyCompareWith, o.CompareWith)
	if err != nil {
		return Output{}, err
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	return render(transform.Diff(v, other), nil)
}

func (b *builtins) merge(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, MergeOptions{})
	if err != nil {
		return Output{}, err
	}
	source, err := b.document(KeyMergeWith, o.MergeWith)
	if err != nil {
		return Output{}, err
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	return render(transform.Merge(v, source), nil)
}

// codegen adapts a generator. Go output may additionally be run through gofmt.
func (b *builtins) codegen(t ToolType, gen func(models.TypeInfo, string) string) Func {
	return func(in Input, opts Options) (Output, error) {
		o, err := optionsOf(opts, CodegenOptions{Gofmt: b.cfg.Defaults.Gofmt})
		if err != nil {
			return Output{}, err
		}
		if o.Name == "" {
			o.Name = defaultName(t, b.cfg)
		}
		v, err := b.load(in)
		if err != nil {
			return Output{}, err
		}

		code := gen(analyzer.Analyze(v), o.Name)
		if t == ToGo && o.Gofmt {
			code, err = formatter.NewFormatter().Format(code)
			if err != nil {
				return Output{}, errors.NewOutputError("gofmt rejected the generated code", err)
			}
		}
		return Output{Text: code}, nil
	}
}

func (b *builtins) toSchema(in Input, _ Options) (Output, error) {
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	return render(schema.Infer(analyzer.Analyze(v)).ToValue(), nil)
}

func (b *builtins) jsonPath(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, PathOptions{})
	if err != nil {
		return Output{}, err
	}
	if o.Path == nil {
		return Output{}, errors.NewMissingParameterError(KeyPath)
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	return render(transform.Query(v, *o.Path), nil)
}

func (b *builtins) search(fn func(models.JSONValue, string) []transform.Match) Func {
	return func(in Input, opts Options) (Output, error) {
		o, err := optionsOf(opts, SearchOptions{})
		if err != nil {
			return Output{}, err
		}
		if o.Keyword == "" {
			return Output{}, errors.NewMissingParameterError(KeyKeyword)
		}
		v, err := b.load(in)
		if err != nil {
			return Output{}, err
		}
		return render(transform.MatchesToValue(fn(v, o.Keyword)), nil)
	}
}

func (b *builtins) maskFields(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, MaskOptions{})
	if err != nil {
		return Output{}, err
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	masker := b.masker
	if len(o.Keywords) > 0 {
		masker = transform.NewMasker(append(append([]string{}, b.cfg.Mask.Keywords...), o.Keywords...), b.cfg.Mask.KeyMatchers()...)
	}
	return render(masker.Mask(v), nil)
}

func (b *builtins) deleteFields(in Input, opts Options) (Output, error) {
	o, err := optionsOf(opts, DeleteOptions{})
	if err != nil {
		return Output{}, err
	}
	if len(o.Fields) == 0 {
		return Output{}, errors.NewMissingParameterError(KeyFields)
	}
	v, err := b.load(in)
	if err != nil {
		return Output{}, err
	}
	return render(transform.DeleteFields(v, o.Fields), nil)
}
