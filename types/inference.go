package types

import (
	"github.com/mppl-lang/mpplc/resolve"
	"github.com/mppl-lang/mpplc/syntax"
)

// Inference is the output of a check pass: a Type for every typed
// definition and a Type for every expression node, both keyed by node
// or Def identity rather than position.
type Inference struct {
	DefTypes  map[*resolve.Def]Type
	ExprTypes map[*syntax.Node]Type
}

func newInference() *Inference {
	return &Inference{
		DefTypes:  make(map[*resolve.Def]Type),
		ExprTypes: make(map[*syntax.Node]Type),
	}
}

// TypeOf returns the type assigned to an expression node, or
// InvalidType if none was recorded.
func (inf *Inference) TypeOf(n *syntax.Node) Type {
	if t, ok := inf.ExprTypes[n]; ok {
		return t
	}
	return InvalidType
}

// TypeOfDef returns the type assigned to a definition, or InvalidType
// if none was recorded.
func (inf *Inference) TypeOfDef(def *resolve.Def) Type {
	if t, ok := inf.DefTypes[def]; ok {
		return t
	}
	return InvalidType
}
