package command

import "fmt"

// Result collects structural-consistency findings for one schema.
// Errors make the schema unusable; warnings flag it as suspicious but
// usable.
type Result struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the schema passed without errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks a schema's structural invariants. It is a pure
// function: no I/O, no shared state, and running it twice on the same
// schema yields identical results, so it serves both as the post-extract
// self-check and as the offline corpus audit.
func Validate(s *Schema) *Result {
	res := &Result{}

	if s == nil {
		res.Errors = append(res.Errors, "schema is missing")
		return res
	}

	if s.Service == "" {
		res.Errors = append(res.Errors, "missing field: service")
	}
	if s.Operation == "" {
		res.Errors = append(res.Errors, "missing field: operation")
	}
	if s.Parameters == nil {
		res.Errors = append(res.Errors, "missing field: parameters")
	}
	if s.RequiredParameters == nil {
		res.Errors = append(res.Errors, "missing field: requiredParameters")
	}
	if s.OptionalParameters == nil {
		res.Errors = append(res.Errors, "missing field: optionalParameters")
	}

	listed := make(map[string]bool, len(s.RequiredParameters)+len(s.OptionalParameters))
	required := make(map[string]bool, len(s.RequiredParameters))

	for _, name := range s.RequiredParameters {
		listed[name] = true
		required[name] = true
	}
	for _, name := range s.OptionalParameters {
		if required[name] {
			res.Errors = append(res.Errors, fmt.Sprintf("parameter %q listed as both required and optional", name))
		}
		listed[name] = true
	}

	if s.Parameters == nil {
		return res
	}

	for _, name := range s.RequiredParameters {
		desc, ok := s.Parameters.Get(name)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("required parameter %q has no definition", name))
			continue
		}
		if !desc.Required {
			res.Errors = append(res.Errors, fmt.Sprintf("parameter %q listed as required but not marked required", name))
		}
	}
	for _, name := range s.OptionalParameters {
		desc, ok := s.Parameters.Get(name)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("optional parameter %q has no definition", name))
			continue
		}
		if desc.Required {
			res.Errors = append(res.Errors, fmt.Sprintf("parameter %q listed as optional but marked required", name))
		}
	}

	for pair := s.Parameters.Oldest(); pair != nil; pair = pair.Next() {
		name, desc := pair.Key, pair.Value

		if desc == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("parameter %q has no descriptor", name))
			continue
		}
		if desc.Name != name {
			res.Errors = append(res.Errors, fmt.Sprintf("parameter key %q does not match descriptor name %q", name, desc.Name))
		}
		if !listed[name] {
			res.Warnings = append(res.Warnings, fmt.Sprintf("parameter %q is neither required nor optional", name))
		}
		if !desc.Type.Known() {
			res.Warnings = append(res.Warnings, fmt.Sprintf("parameter %q has unusual type %q", name, desc.Type))
		}
	}

	return res
}
