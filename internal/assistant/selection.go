package assistant

import "sync"

// ContextSelection is the set of filenames the user has chosen as chat context.
// After every catalog update it is pruned to a subset of that catalog.
type ContextSelection struct {
	mu       sync.Mutex
	selected map[string]struct{}
}

func NewContextSelection() *ContextSelection {
	return &ContextSelection{selected: make(map[string]struct{})}
}

// Toggle removes name if selected, otherwise adds it. It reports whether name is
// selected afterwards.
func (s *ContextSelection) Toggle(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[name]; ok {
		delete(s.selected, name)
		return false
	}
	s.selected[name] = struct{}{}
	return true
}

// Deselect removes name if present.
func (s *ContextSelection) Deselect(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, name)
}

// Prune keeps only names present in catalog.
func (s *ContextSelection) Prune(catalog []string) {
	available := make(map[string]struct{}, len(catalog))
	for _, f := range catalog {
		available[f] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.selected {
		if _, ok := available[name]; !ok {
			delete(s.selected, name)
		}
	}
}

func (s *ContextSelection) IsSelected(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[name]
	return ok
}

func (s *ContextSelection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Ordered returns the selected names in catalog order. Duplicate catalog entries
// are reported once.
func (s *ContextSelection) Ordered(catalog []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.selected))
	seen := make(map[string]struct{}, len(s.selected))
	for _, f := range catalog {
		if _, ok := s.selected[f]; !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
