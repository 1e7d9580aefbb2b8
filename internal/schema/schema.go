// Package schema infers a JSON Schema document from an example value.
package schema

import (
	"github.com/mcncl/jsonkit/internal/models"
)

// Draft is the dialect declared at the root of generated schemas.
const Draft = "http://json-schema.org/draft-07/schema#"

// Schema is the subset of JSON Schema that inference produces.
// An empty Type means any value is allowed.
type Schema struct {
	Dialect    string
	Type       string
	Properties []Property
	Items      *Schema
}

// Property is one named member of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Infer builds the schema describing values shaped like info.
func Infer(info models.TypeInfo) *Schema {
	root := fromTypeInfo(info)
	root.Dialect = Draft
	return root
}

func fromTypeInfo(info models.TypeInfo) *Schema {
	s := &Schema{Type: info.Kind.String()}
	switch info.Kind {
	case models.Array:
		if info.Elem == nil {
			s.Items = &Schema{}
		} else {
			s.Items = fromTypeInfo(*info.Elem)
		}
	case models.Object:
		s.Properties = make([]Property, 0, len(info.Fields))
		for _, field := range info.Fields {
			s.Properties = append(s.Properties, Property{Name: field.Key, Schema: fromTypeInfo(field.Type)})
		}
	}
	return s
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// ToValue converts the schema into a JSON value with keys in document order.
func (s *Schema) ToValue() models.JSONValue {
	obj := models.NewObject(4)
	if s.Dialect != "" {
		obj.Set("$schema", s.Dialect)
	}
	if s.Type == "" {
		return obj
	}
	obj.Set("type", s.Type)
	switch s.Type {
	case "object":
		props := models.NewObject(len(s.Properties))
		for _, p := range s.Properties {
			props.Set(p.Name, p.Schema.ToValue())
		}
		obj.Set("properties", props)
	case "array":
		items := s.Items
		if items == nil {
			items = &Schema{}
		}
		obj.Set("items", items.ToValue())
	}
	return obj
}
