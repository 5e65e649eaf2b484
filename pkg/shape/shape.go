package shape

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Known shape kinds in vendor API descriptions.
// The set is open: descriptions may introduce new kinds, which the
// resolver passes through as-is.
const (
	KindString    = "string"
	KindInteger   = "integer"
	KindLong      = "long"
	KindFloat     = "float"
	KindDouble    = "double"
	KindBoolean   = "boolean"
	KindTimestamp = "timestamp"
	KindBlob      = "blob"
	KindList      = "list"
	KindMap       = "map"
	KindStructure = "structure"
)

// Ref is a reference site pointing at a shape by name.
// A member-level documentation string, when present, overrides the
// documentation of the referenced shape.
type Ref struct {
	Shape         string `json:"shape"`
	Documentation string `json:"documentation,omitempty"`
}

// Shape is one named type definition from a vendor API description.
// Members is an ordered map: the declaration order in the source JSON is
// authoritative and must survive parsing, so a plain Go map won't do.
type Shape struct {
	Type          string                               `json:"type"`
	Members       *orderedmap.OrderedMap[string, *Ref] `json:"members,omitempty"`
	Required      []string                             `json:"required,omitempty"`
	Documentation string                               `json:"documentation,omitempty"`
}

// IsRequired reports whether the given member name appears in the shape's
// required list. Comparison is case-sensitive.
func (s *Shape) IsRequired(member string) bool {
	for _, name := range s.Required {
		if name == member {
			return true
		}
	}
	return false
}

// MemberNames returns the member names in declaration order.
func (s *Shape) MemberNames() []string {
	if s.Members == nil {
		return nil
	}
	names := make([]string, 0, s.Members.Len())
	for pair := s.Members.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
