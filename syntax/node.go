// Package syntax: this file defines Node, the untyped lossless syntax
// tree. A Node comes in three flavors: Token, Tree, and Empty.
package syntax

import "strings"

// TriviaPiece is one piece of absorbed trivia (whitespace or a comment)
// carried as a token's leading trivia.
type TriviaPiece struct {
	Kind Kind
	Text string
}

// Node is a node in the untyped, lossless syntax tree. It wraps one of
// three flavors: a token (with its leading trivia), a tree (an ordered
// list of child slots), or an empty placeholder for a missing optional
// child.
type Node struct {
	data nodeData
}

// nodeData is the internal representation of a Node. Implemented by
// tokenNode, treeNode, and emptyNode; the unexported marker method keeps
// the union closed to this package.
type nodeData interface {
	kind() Kind
	text() string
	length() int
	children() []*Node
	isNodeData()
}

type tokenNode struct {
	nodeKind  Kind
	tokenText string
	leading   []TriviaPiece
}

func (n *tokenNode) kind() Kind { return n.nodeKind }
func (n *tokenNode) text() string {
	if len(n.leading) == 0 {
		return n.tokenText
	}
	var b strings.Builder
	for _, t := range n.leading {
		b.WriteString(t.Text)
	}
	b.WriteString(n.tokenText)
	return b.String()
}
func (n *tokenNode) length() int {
	total := len(n.tokenText)
	for _, t := range n.leading {
		total += len(t.Text)
	}
	return total
}
func (n *tokenNode) children() []*Node { return nil }
func (n *tokenNode) isNodeData()       {}

type treeNode struct {
	nodeKind Kind
	kids     []*Node
}

func (n *treeNode) kind() Kind { return n.nodeKind }
func (n *treeNode) text() string {
	var b strings.Builder
	for _, c := range n.kids {
		b.WriteString(c.Text())
	}
	return b.String()
}
func (n *treeNode) length() int {
	total := 0
	for _, c := range n.kids {
		total += c.Length()
	}
	return total
}
func (n *treeNode) children() []*Node { return n.kids }
func (n *treeNode) isNodeData()       {}

type emptyNode struct {
	nodeKind Kind
}

func (n *emptyNode) kind() Kind        { return n.nodeKind }
func (n *emptyNode) text() string      { return "" }
func (n *emptyNode) length() int       { return 0 }
func (n *emptyNode) children() []*Node { return nil }
func (n *emptyNode) isNodeData()       {}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.data.kind() }

// Text returns the node's full text: for a token, its leading trivia
// plus its own text; for a tree, the concatenation of its children's
// text; for an empty node, the empty string.
func (n *Node) Text() string { return n.data.text() }

// Length returns len(n.Text()).
func (n *Node) Length() int { return n.data.length() }

// Children returns the node's ordered child slots, or nil for tokens
// and empty nodes.
func (n *Node) Children() []*Node { return n.data.children() }

// IsToken reports whether n is a Token node.
func (n *Node) IsToken() bool {
	_, ok := n.data.(*tokenNode)
	return ok
}

// IsTree reports whether n is a Tree node.
func (n *Node) IsTree() bool {
	_, ok := n.data.(*treeNode)
	return ok
}

// IsEmpty reports whether n is an Empty placeholder.
func (n *Node) IsEmpty() bool {
	_, ok := n.data.(*emptyNode)
	return ok
}

// Leading returns the token's leading trivia, or nil if n is not a token.
func (n *Node) Leading() []TriviaPiece {
	if t, ok := n.data.(*tokenNode); ok {
		return t.leading
	}
	return nil
}

// TokenText returns the token's own text, excluding leading trivia, or
// the empty string if n is not a token.
func (n *Node) TokenText() string {
	if t, ok := n.data.(*tokenNode); ok {
		return t.tokenText
	}
	return ""
}

// NewToken constructs a Token node directly, bypassing the builder.
// Used by tests and by callers assembling small trees by hand.
func NewToken(kind Kind, text string, leading []TriviaPiece) *Node {
	return &Node{data: &tokenNode{nodeKind: kind, tokenText: text, leading: leading}}
}

// NewTree constructs a Tree node directly from already-built children.
func NewTree(kind Kind, children []*Node) *Node {
	return &Node{data: &treeNode{nodeKind: kind, kids: children}}
}

// NewEmpty constructs an Empty placeholder node of the given kind.
func NewEmpty(kind Kind) *Node {
	return &Node{data: &emptyNode{nodeKind: kind}}
}

// Walk performs a pre-order traversal of the tree rooted at n, calling
// fn for every node (tokens, trees, and empties alike) with its absolute
// byte span computed relative to base. This replaces stored parent
// pointers and stored absolute offsets: callers that need a node's
// position recompute it by walking from the root, carrying whatever
// ancestor context they need through fn's closure.
func Walk(n *Node, base int, fn func(node *Node, start, end int)) {
	end := base + n.Length()
	fn(n, base, end)
	offset := base
	if t, ok := n.data.(*tokenNode); ok {
		for _, piece := range t.leading {
			offset += len(piece.Text)
		}
		return
	}
	for _, child := range n.Children() {
		Walk(child, offset, fn)
		offset += child.Length()
	}
}

// Span returns the byte span of target within the tree rooted at root,
// found by pointer identity. Ok is false if target is not in the tree.
func Span(root, target *Node) (start, end int, ok bool) {
	Walk(root, 0, func(node *Node, s, e int) {
		if ok || node != target {
			return
		}
		start, end, ok = s, e, true
	})
	return
}
