package annotation

import "sync"

// storeImpl is the implementation of the Store interface.
type storeImpl struct {
	mu *sync.RWMutex

	// order holds annotation IDs in insertion order.
	order []string

	// records indexes annotations by ID.
	records map[string]*Annotation
}

// Store holds the session's annotation records. Insertion order is preserved
// for listing; lookups go through the ID index. Operations on unknown IDs are
// silent no-ops reported through the boolean return, never errors — callers
// are expected to only ever issue IDs that exist.
// Thread-safe for concurrent access.
type Store interface {
	// Add inserts a new annotation with a fresh ID at the given position,
	// using the default title and an empty description.
	//
	// Parameters:
	//   - position: committed world-space anchor point
	//
	// Returns:
	//   - Annotation: a copy of the stored record, including its new ID
	Add(position [3]float32) Annotation

	// Get retrieves a copy of the annotation with the given ID.
	//
	// Parameters:
	//   - id: the annotation's unique ID
	//
	// Returns:
	//   - Annotation: a copy of the record (zero value if not found)
	//   - bool: true if the ID exists
	Get(id string) (Annotation, bool)

	// Edit updates the title and/or description of an annotation in place.
	// Nil fields are left untouched.
	//
	// Parameters:
	//   - id: the annotation's unique ID
	//   - title: new title, or nil to keep the current one
	//   - description: new description, or nil to keep the current one
	//
	// Returns:
	//   - bool: true if the ID existed and the record was updated
	Edit(id string, title, description *string) bool

	// SetPosition replaces an annotation's committed position.
	//
	// Parameters:
	//   - id: the annotation's unique ID
	//   - position: the new committed world-space point
	//
	// Returns:
	//   - bool: true if the ID existed and the position was updated
	SetPosition(id string, position [3]float32) bool

	// Delete removes an annotation from the set.
	//
	// Parameters:
	//   - id: the annotation's unique ID
	//
	// Returns:
	//   - bool: true if the ID existed and was removed
	Delete(id string) bool

	// All returns copies of every annotation in insertion order.
	//
	// Returns:
	//   - []Annotation: the annotation list
	All() []Annotation

	// Count returns the number of annotations in the set.
	//
	// Returns:
	//   - int: the annotation count
	Count() int
}

var _ Store = &storeImpl{}

// NewStore creates an empty annotation store.
//
// Returns:
//   - Store: the newly created store
func NewStore() Store {
	return &storeImpl{
		mu:      &sync.RWMutex{},
		records: make(map[string]*Annotation),
	}
}

func (s *storeImpl) Add(position [3]float32) Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Annotation{
		ID:       newID(),
		Position: position,
		Title:    DefaultTitle,
	}
	s.order = append(s.order, a.ID)
	s.records[a.ID] = a
	return *a
}

func (s *storeImpl) Get(id string) (Annotation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.records[id]
	if !ok {
		return Annotation{}, false
	}
	return *a, true
}

func (s *storeImpl) Edit(id string, title, description *string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.records[id]
	if !ok {
		return false
	}
	if title != nil {
		a.Title = *title
	}
	if description != nil {
		a.Description = *description
	}
	return true
}

func (s *storeImpl) SetPosition(id string, position [3]float32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.records[id]
	if !ok {
		return false
	}
	a.Position = position
	return true
}

func (s *storeImpl) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *storeImpl) All() []Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Annotation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

func (s *storeImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
