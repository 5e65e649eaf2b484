package command

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParamType is the resolved primitive kind of one input parameter.
type ParamType string

// The closed set of resolved parameter types. Shape kinds outside the
// resolver's mapping table pass through with their raw name, so a
// ParamType value is not guaranteed to be one of these; Known reports
// whether it is.
const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
	TypeUnknown ParamType = "unknown"
)

// Known reports whether the type is one of the six closed values.
func (t ParamType) Known() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeArray, TypeObject, TypeUnknown:
		return true
	}
	return false
}

// ParameterDescriptor is one resolved input parameter.
// Created once during extraction, never mutated afterwards.
type ParameterDescriptor struct {
	Name          string    `json:"name"`
	Type          ParamType `json:"type"`
	Required      bool      `json:"required"`
	Documentation string    `json:"documentation"`
}

// Schema is the flat, resolved parameter model for one operation.
//
// Parameters preserves the declaration order of the source structure's
// member list; RequiredParameters and OptionalParameters keep that same
// relative order. The three list/map fields are always non-nil on a
// schema produced by Extract, even when empty, so that the persisted
// JSON carries explicit empty collections rather than nulls.
type Schema struct {
	Service            string                                               `json:"service"`
	Operation          string                                               `json:"operation"`
	Parameters         *orderedmap.OrderedMap[string, *ParameterDescriptor] `json:"parameters"`
	RequiredParameters []string                                             `json:"requiredParameters"`
	OptionalParameters []string                                             `json:"optionalParameters"`
	Documentation      string                                               `json:"documentation,omitempty"`
}

// NewSchema creates an empty schema for the given service and operation.
func NewSchema(service, operation string) *Schema {
	return &Schema{
		Service:            service,
		Operation:          operation,
		Parameters:         orderedmap.New[string, *ParameterDescriptor](),
		RequiredParameters: []string{},
		OptionalParameters: []string{},
	}
}

// ParameterNames returns the parameter names in declaration order.
func (s *Schema) ParameterNames() []string {
	if s.Parameters == nil {
		return nil
	}
	names := make([]string, 0, s.Parameters.Len())
	for pair := s.Parameters.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
