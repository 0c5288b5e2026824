package template

import (
	"errors"
	"sync"
)

var (
	// ErrTemplateNotFound is returned when a template id is unknown.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplateType is returned for unknown template types.
	ErrInvalidTemplateType = errors.New("invalid template type")

	// ErrTemplateExists is returned when adding a template with a taken id.
	ErrTemplateExists = errors.New("template id already exists")
)

// Store holds named message templates. Templates are seeded at construction
// and additions are append-only; there is no update or delete.
type Store struct {
	mu        sync.RWMutex
	templates map[string]*Template
	// order preserves insertion order for stable listings.
	order []string
}

// NewStore creates a store seeded with the default email and SMS templates.
func NewStore() *Store {
	s := &Store{
		templates: make(map[string]*Template),
	}
	for _, tpl := range seedTemplates() {
		// Seeds are authored in this package; collisions cannot happen.
		_ = s.Add(tpl)
	}
	return s
}

// Add appends a template to the store. The template id must be unused.
func (s *Store) Add(tpl *Template) error {
	if !tpl.Type.IsValid() {
		return ErrInvalidTemplateType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[tpl.ID]; exists {
		return ErrTemplateExists
	}
	s.templates[tpl.ID] = tpl
	s.order = append(s.order, tpl.ID)
	return nil
}

// Get returns the template with the given id.
func (s *Store) Get(id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

// ListByType returns all templates of the given type in insertion order.
func (s *Store) ListByType(t Type) []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Template
	for _, id := range s.order {
		if tpl := s.templates[id]; tpl.Type == t {
			out = append(out, tpl)
		}
	}
	return out
}

// ListAll returns every template in insertion order.
func (s *Store) ListAll() []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Template, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.templates[id])
	}
	return out
}

// DefaultFor returns the default template for the given type.
func (s *Store) DefaultFor(t Type) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if tpl := s.templates[id]; tpl.Type == t && tpl.IsDefault {
			return tpl, nil
		}
	}
	return nil, ErrTemplateNotFound
}
