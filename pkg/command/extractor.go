package command

import (
	"fmt"

	"github.com/apiforge/commandgen/pkg/shape"
)

// Diagnostic describes one skipped member: a member whose shape
// reference could not be resolved. The containing operation's schema is
// still produced without it.
type Diagnostic struct {
	Member string
	Shape  string
	Err    error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("member %q skipped: %v", d.Member, d.Err)
}

// Extract walks the operation's input shape and produces its flat
// parameter schema.
//
// An operation without an input reference yields a valid empty schema.
// A missing input shape aborts the whole operation with
// ErrInputShapeNotFound, no partial schema. A missing shape behind one
// individual member does not: that member is skipped entirely and
// reported as a Diagnostic, so one bad member never discards an
// otherwise-good operation.
func Extract(service, operation string, def *shape.Operation, store *shape.Store) (*Schema, []Diagnostic, error) {
	schema := NewSchema(service, operation)
	if def == nil {
		return schema, nil, nil
	}

	// Operation-level documentation is carried verbatim, only member
	// documentation goes through cleaning.
	schema.Documentation = def.Documentation

	if def.Input == nil || def.Input.Shape == "" {
		return schema, nil, nil
	}

	input, ok := store.Get(def.Input.Shape)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s (operation %s)", ErrInputShapeNotFound, def.Input.Shape, operation)
	}

	var diagnostics []Diagnostic
	if input.Members == nil {
		return schema, nil, nil
	}

	for pair := input.Members.Oldest(); pair != nil; pair = pair.Next() {
		name, ref := pair.Key, pair.Value

		typ, doc, err := Resolve(ref, store)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Member: name, Shape: ref.Shape, Err: err})
			continue
		}

		required := input.IsRequired(name)
		schema.Parameters.Set(name, &ParameterDescriptor{
			Name:          name,
			Type:          typ,
			Required:      required,
			Documentation: doc,
		})

		if required {
			schema.RequiredParameters = append(schema.RequiredParameters, name)
		} else {
			schema.OptionalParameters = append(schema.OptionalParameters, name)
		}
	}

	return schema, diagnostics, nil
}
