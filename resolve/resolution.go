package resolve

import "github.com/mppl-lang/mpplc/syntax"

// Resolution is the output of a resolve pass: a binder map from each
// binding-occurrence identifier to the Def it introduces, and a use map
// from each referencing-occurrence identifier to the Def it resolves
// to. Both are keyed by node identity rather than by position, so
// later passes (the type checker, the renderer) never need to recompute
// or thread spans just to look a node's definition up.
type Resolution struct {
	Binders map[*syntax.Node]*Def
	Uses    map[*syntax.Node]*Def
}

func newResolution() *Resolution {
	return &Resolution{
		Binders: make(map[*syntax.Node]*Def),
		Uses:    make(map[*syntax.Node]*Def),
	}
}

// DefOf returns the Def that ident is either a binder or a use for,
// checking the binder map before the use map.
func (r *Resolution) DefOf(ident *syntax.Node) (*Def, bool) {
	if def, ok := r.Binders[ident]; ok {
		return def, true
	}
	def, ok := r.Uses[ident]
	return def, ok
}
