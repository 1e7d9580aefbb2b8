// Package tools holds the tool registry and the built-in JSON tools it
// dispatches to.
package tools

// ToolType identifies a tool.
type ToolType string

// Built-in tool identifiers.
const (
	Format               ToolType = "format"
	Minify               ToolType = "minify"
	Validate             ToolType = "validate"
	SortKeys             ToolType = "sortKeys"
	RemoveNull           ToolType = "removeNull"
	RemoveEmptyString    ToolType = "removeEmptyString"
	RemoveUndefined      ToolType = "removeUndefined"
	DeepArrayDeduplicate ToolType = "deepArrayDeduplicate"
	Flatten              ToolType = "flatten"
	Unflatten            ToolType = "unflatten"
	Diff                 ToolType = "diff"
	Merge                ToolType = "merge"
	ToTypeScript         ToolType = "toTypeScript"
	ToJava               ToolType = "toJava"
	ToGo                 ToolType = "toGo"
	ToPython             ToolType = "toPython"
	ToSchema             ToolType = "toSchema"
	JSONPath             ToolType = "jsonPath"
	SearchKey            ToolType = "searchKey"
	SearchValue          ToolType = "searchValue"
	MaskFields           ToolType = "maskFields"
	DeleteFields         ToolType = "deleteFields"
)

// Category groups tools for listings.
type Category string

const (
	CategoryBasic         Category = "basic"
	CategoryDataStructure Category = "data_structure"
	CategoryConversion    Category = "conversion"
	CategoryQuery         Category = "query"
	CategorySecurity      Category = "security"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryBasic,
	CategoryDataStructure,
	CategoryConversion,
	CategoryQuery,
	CategorySecurity,
}

// ParameterDef describes one option a tool accepts.
type ParameterDef struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Output is what a tool produces on success.
type Output struct {
	Text     string
	Metadata map[string]any
}

// Func runs a tool over its input.
type Func func(in Input, opts Options) (Output, error)

// Tool describes a registered tool.
type Tool struct {
	Name        string
	Category    Category
	Type        ToolType
	Description string
	Parameters  []ParameterDef
	Execute     Func
}

// Parameter looks up a parameter by name.
func (t Tool) Parameter(name string) (ParameterDef, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterDef{}, false
}

// ParameterSchema renders the parameters as a JSON Schema object.
func (t Tool) ParameterSchema() map[string]any {
	properties := make(map[string]any, len(t.Parameters))
	required := make([]string, 0)

	for _, param := range t.Parameters {
		properties[param.Name] = map[string]any{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Required {
			required = append(required, param.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
