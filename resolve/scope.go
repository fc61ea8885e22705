package resolve

// Scope is one level of the name-resolution scope stack: a table from
// name to Def plus a parent to search when the name is not found
// locally. Variables, parameters, and procedures share one namespace,
// so a procedure and an enclosing variable of the same name collide.
type Scope struct {
	parent *Scope
	names  map[string]*Def
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: make(map[string]*Def)}
}

// define binds name to def in s. If the name is already bound in s
// (not an ancestor), it returns the existing Def and false.
func (s *Scope) define(def *Def) (prev *Def, ok bool) {
	if existing, found := s.names[def.Name]; found {
		return existing, false
	}
	s.names[def.Name] = def
	return nil, true
}

// lookup searches s, then its ancestors, returning the first match.
func (s *Scope) lookup(name string) (*Def, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if def, ok := sc.names[name]; ok {
			return def, true
		}
	}
	return nil, false
}
