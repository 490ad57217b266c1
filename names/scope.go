package names

import "sync"

// Scope is a set of names that must not repeat: class names in one package,
// members of one class, resource names in one module. Safe for concurrent use.
type Scope struct {
	name string

	mu    sync.Mutex
	taken map[string]struct{}
}

// NewScope creates a scope pre-populated with names that are already taken,
// such as simple type names imported into every generated source file.
func NewScope(name string, taken ...string) *Scope {
	s := &Scope{name: name, taken: make(map[string]struct{}, len(taken))}
	for _, t := range taken {
		s.taken[t] = struct{}{}
	}
	return s
}

// Name identifies the scope in error messages
func (s *Scope) Name() string {
	return s.name
}

// Claim records name and reports whether it was free.
func (s *Scope) Claim(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.taken[name]; ok {
		return false
	}
	s.taken[name] = struct{}{}
	return true
}

// Len returns the number of taken names, including the pre-populated ones
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.taken)
}
