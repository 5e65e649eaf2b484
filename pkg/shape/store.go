package shape

import "sort"

// Store is an immutable shape name lookup for one service+version.
// It is read-only after construction and safe to share by reference
// across concurrent extractions.
type Store struct {
	shapes map[string]*Shape
}

// NewStore creates a store from a name -> shape mapping.
// The map is used as-is; callers must not mutate it afterwards.
func NewStore(shapes map[string]*Shape) *Store {
	if shapes == nil {
		shapes = map[string]*Shape{}
	}
	return &Store{shapes: shapes}
}

// Get returns the shape registered under the given name.
func (s *Store) Get(name string) (*Shape, bool) {
	res, ok := s.shapes[name]
	return res, ok
}

// Len returns the number of shapes in the store.
func (s *Store) Len() int {
	return len(s.shapes)
}

// Names returns all shape names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.shapes))
	for name := range s.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
