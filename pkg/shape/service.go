package shape

import "sort"

// Metadata carries the identifying fields of one API description.
type Metadata struct {
	ServiceID  string `json:"serviceId,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
}

// Operation is one API action: an optional input shape reference
// plus free-form documentation.
type Operation struct {
	Input         *Ref   `json:"input,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

// Service is the parse target for one service+version API description file.
type Service struct {
	Metadata   Metadata              `json:"metadata"`
	Operations map[string]*Operation `json:"operations"`
	Shapes     map[string]*Shape     `json:"shapes"`
}

// Store returns an immutable lookup over the service's shapes.
func (s *Service) Store() *Store {
	return NewStore(s.Shapes)
}

// OperationNames returns all operation names in sorted order,
// so batch extraction output is deterministic.
func (s *Service) OperationNames() []string {
	names := make([]string, 0, len(s.Operations))
	for name := range s.Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
