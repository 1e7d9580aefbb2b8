package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeString(t *testing.T, s string) models.TypeInfo {
	t.Helper()
	v, err := parser.ParseString(s)
	require.NoError(t, err)
	return Analyze(v)
}

func TestAnalyze_SimpleObject(t *testing.T) {
	info := analyzeString(t, `{"name": "John Doe", "age": 30, "is_student": false, "score": 99.5, "nick": null}`)

	require.Equal(t, models.Object, info.Kind)
	expected := []models.FieldInfo{
		{Key: "name", Type: models.TypeInfo{Kind: models.String}},
		{Key: "age", Type: models.TypeInfo{Kind: models.Integer}},
		{Key: "is_student", Type: models.TypeInfo{Kind: models.Bool}},
		{Key: "score", Type: models.TypeInfo{Kind: models.Float}},
		{Key: "nick", Type: models.TypeInfo{Kind: models.Null}},
	}
	assert.Equal(t, expected, info.Fields)
}

func TestAnalyze_NestedObject(t *testing.T) {
	info := analyzeString(t, `{"profile": {"address": {"city": "Anytown"}}}`)

	require.Len(t, info.Fields, 1)
	profile := info.Fields[0].Type
	require.Equal(t, models.Object, profile.Kind)
	require.Len(t, profile.Fields, 1)
	address := profile.Fields[0].Type
	assert.Equal(t, "address", profile.Fields[0].Key)
	assert.Equal(t, []models.FieldInfo{{Key: "city", Type: models.TypeInfo{Kind: models.String}}}, address.Fields)
}

func TestAnalyze_Numbers(t *testing.T) {
	tests := []struct {
		literal string
		kind    models.Kind
		wide    bool
	}{
		{"25", models.Integer, false},
		{"1.0", models.Integer, false},
		{"1e3", models.Integer, false},
		{"99.99", models.Float, false},
		{"-2147483648", models.Integer, false},
		{"2147483648", models.Integer, true},
		{"123456789012345678901234", models.Integer, true},
		{"1.5e-3", models.Float, false},
	}
	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			info := Analyze(json.Number(tt.literal))
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.wide, info.Wide)
		})
	}
}

func TestAnalyze_Arrays(t *testing.T) {
	empty := analyzeString(t, `[]`)
	assert.Equal(t, models.Array, empty.Kind)
	assert.Nil(t, empty.Elem)
	assert.True(t, empty.Homogeneous)

	ints := analyzeString(t, `[1, 2, 3]`)
	require.NotNil(t, ints.Elem)
	assert.Equal(t, models.Integer, ints.Elem.Kind)
	assert.True(t, ints.Homogeneous)

	mixed := analyzeString(t, `[1, "a", true]`)
	require.NotNil(t, mixed.Elem)
	assert.Equal(t, models.Integer, mixed.Elem.Kind, "element type comes from the first element")
	assert.False(t, mixed.Homogeneous)

	nested := analyzeString(t, `[[1, 2], [3]]`)
	require.NotNil(t, nested.Elem)
	assert.Equal(t, models.Array, nested.Elem.Kind)
	assert.Equal(t, models.Integer, nested.Elem.Elem.Kind)
	assert.True(t, nested.Homogeneous)

	numbers := analyzeString(t, `[1, 2.5]`)
	assert.True(t, numbers.Homogeneous)

	objects := analyzeString(t, `[{"a": 1}, {"b": 1}]`)
	assert.False(t, objects.Homogeneous, "objects with different keys differ")
	require.NotNil(t, objects.Elem)
	assert.Equal(t, "a", objects.Elem.Fields[0].Key)
}

func TestAnalyze_ArrayElementTypesCompareDeeply(t *testing.T) {
	tests := []struct {
		input       string
		homogeneous bool
	}{
		{`[[1], ["a"]]`, false},
		{`[[1], [2.5, 3]]`, true},
		{`[[1], []]`, false},
		{`[[1, "a"], [2]]`, false},
		{`[{"a": 1}, {"a": "x"}]`, false},
		{`[{"a": 1, "b": true}, {"b": false, "a": 2.5}]`, true},
		{`[{"a": 1}, {"a": 1, "b": 2}]`, false},
		{`[{"a": {"b": [1]}}, {"a": {"b": ["x"]}}]`, false},
		{`[{"a": {"b": [1]}}, {"a": {"b": [2]}}]`, true},
		{`[1, null]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.homogeneous, analyzeString(t, tt.input).Homogeneous)
		})
	}
}

func TestAnalyze_SkipsUndefined(t *testing.T) {
	obj := models.NewObject(2)
	obj.Set("gone", models.Undefined)
	obj.Set("kept", "x")

	info := Analyze(obj)
	require.Len(t, info.Fields, 1)
	assert.Equal(t, "kept", info.Fields[0].Key)
}
