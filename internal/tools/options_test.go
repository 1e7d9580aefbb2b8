package tools

import (
	"encoding/json"
	"testing"

	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptions(t *testing.T) {
	cfg := config.NewConfig()
	path := "a.b"
	empty := ""

	tests := []struct {
		name     string
		tool     ToolType
		in       map[string]any
		expected Options
	}{
		{"format default", Format, nil, FormatOptions{Indent: 2}},
		{"format number", Format, map[string]any{"indent": float64(4)}, FormatOptions{Indent: 4}},
		{"format string number", Format, map[string]any{"indent": " 0 "}, FormatOptions{Indent: 0}},
		{"format json number", Format, map[string]any{"indent": json.Number("3")}, FormatOptions{Indent: 3}},
		{"format malformed", Format, map[string]any{"indent": "wide"}, FormatOptions{Indent: 2}},
		{"sort default", SortKeys, map[string]any{}, SortOptions{Order: "asc"}},
		{"sort desc", SortKeys, map[string]any{"order": "desc"}, SortOptions{Order: "desc"}},
		{"flatten default", Flatten, nil, FlattenOptions{Separator: "."}},
		{"unflatten separator", Unflatten, map[string]any{"separator": "_"}, FlattenOptions{Separator: "_"}},
		{"empty separator", Flatten, map[string]any{"separator": ""}, FlattenOptions{Separator: "."}},
		{"diff text", Diff, map[string]any{"compareWith": `{"a":1}`}, DiffOptions{CompareWith: `{"a":1}`}},
		{"diff value", Diff, map[string]any{"compareWith": map[string]any{"b": []any{1.5, true}, "a": nil}}, DiffOptions{CompareWith: `{"a":null,"b":[1.5,true]}`}},
		{"diff missing", Diff, nil, DiffOptions{}},
		{"merge text", Merge, map[string]any{"mergeWith": `[1]`}, MergeOptions{MergeWith: `[1]`}},
		{"typescript default", ToTypeScript, nil, CodegenOptions{Name: "MyType"}},
		{"typescript name", ToTypeScript, map[string]any{"interfaceName": "User"}, CodegenOptions{Name: "User"}},
		{"java ignores struct name", ToJava, map[string]any{"structName": "User"}, CodegenOptions{Name: "MyClass"}},
		{"go name and gofmt", ToGo, map[string]any{"structName": "User", "gofmt": true}, CodegenOptions{Name: "User", Gofmt: true}},
		{"go gofmt string", ToGo, map[string]any{"gofmt": "true"}, CodegenOptions{Name: "MyStruct", Gofmt: true}},
		{"python class name", ToPython, map[string]any{"className": "Row"}, CodegenOptions{Name: "Row"}},
		{"path present", JSONPath, map[string]any{"path": "a.b"}, PathOptions{Path: &path}},
		{"path empty", JSONPath, map[string]any{"path": ""}, PathOptions{Path: &empty}},
		{"path missing", JSONPath, map[string]any{}, PathOptions{}},
		{"path null", JSONPath, map[string]any{"path": nil}, PathOptions{}},
		{"keyword", SearchKey, map[string]any{"keyword": "name"}, SearchOptions{Keyword: "name"}},
		{"numeric keyword", SearchValue, map[string]any{"keyword": float64(25)}, SearchOptions{Keyword: "25"}},
		{"mask keywords list", MaskFields, map[string]any{"keywords": []any{"iban", " swift "}}, MaskOptions{Keywords: []string{"iban", "swift"}}},
		{"mask keywords none", MaskFields, nil, MaskOptions{Keywords: []string{}}},
		{"fields csv", DeleteFields, map[string]any{"fields": "a, b,,c"}, DeleteOptions{Fields: []string{"a", "b", "c"}}},
		{"fields list", DeleteFields, map[string]any{"fields": []string{"x"}}, DeleteOptions{Fields: []string{"x"}}},
		{"no options", Minify, map[string]any{"indent": 4}, nil},
		{"custom tool", ToolType("custom"), map[string]any{"k": "v"}, RawOptions{"k": "v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOptions(tt.tool, tt.in, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeOptions_ConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Defaults.Indent = 4
	cfg.Defaults.Order = "desc"
	cfg.Names.Python = "Record"

	got, err := DecodeOptions(Format, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, FormatOptions{Indent: 4}, got)

	got, err = DecodeOptions(SortKeys, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, SortOptions{Order: "desc"}, got)

	got, err = DecodeOptions(ToPython, nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, CodegenOptions{Name: "Record"}, got)

	got, err = DecodeOptions(Format, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, FormatOptions{Indent: 2}, got, "a nil config uses the built-in defaults")
}

func TestDecodeOptions_UnserializableDocument(t *testing.T) {
	_, err := DecodeOptions(Merge, map[string]any{"mergeWith": map[string]any{"f": func() {}}}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeExecution, errors.TypeOf(err))
}

func TestExecuteMap(t *testing.T) {
	r := NewDefaultRegistry(nil)

	res := r.ExecuteMap(Format, FromText(`{"a":1}`), map[string]any{"indent": "0"})
	assert.Equal(t, `{"a":1}`, requireSuccess(t, res))

	res = r.ExecuteMap(Diff, FromText(`{"a":1}`), map[string]any{"compareWith": map[string]any{"a": 2.0}})
	assert.Contains(t, requireSuccess(t, res), `"newValue": 2`)

	res = r.ExecuteMap(DeleteFields, FromText(`{"a":1,"b":2,"c":3}`), map[string]any{"fields": "a,c"})
	assert.Equal(t, "{\n  \"b\": 2\n}", requireSuccess(t, res))

	res = r.ExecuteMap(JSONPath, FromText(`{"a":1}`), nil)
	assert.Equal(t, errors.ErrorTypeMissingParameter, res.Code)

	res = r.ExecuteMap(Merge, FromText(`{}`), map[string]any{"mergeWith": map[string]any{"f": func() {}}})
	assert.False(t, res.Success)
	assert.Equal(t, errors.ErrorTypeExecution, res.Code)
}
