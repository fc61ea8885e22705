package syntax

// Checkpoint marks a position in the builder's node stream to which a
// later Close call can retroactively attach a tree kind, once the
// parser has enough lookahead to know what production it is in.
type Checkpoint int

// Builder assembles a lossless Node tree from a linear stream of
// trivia/token/empty emissions plus open/close checkpoints. It
// generalizes the marker/wrap mechanism of a flat event stream into the
// explicit three-flavor node model.
type Builder struct {
	nodes   []*Node
	trivia  []TriviaPiece
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Trivia records an absorbed trivia piece that will become the leading
// trivia of the next token emitted. Trivia recorded after the last token
// is not attached to any node; the parser always ends with an Eof token,
// which absorbs it.
func (b *Builder) Trivia(kind Kind, text string) {
	b.trivia = append(b.trivia, TriviaPiece{Kind: kind, Text: text})
}

// Token emits a token node. Any trivia recorded since the last token
// becomes this token's leading trivia.
func (b *Builder) Token(kind Kind, text string) {
	leading := b.trivia
	b.trivia = nil
	b.nodes = append(b.nodes, NewToken(kind, text, leading))
}

// Empty emits an empty placeholder in the next child slot, used when
// the parser synthesizes a missing optional child.
func (b *Builder) Empty(kind Kind) {
	b.nodes = append(b.nodes, NewEmpty(kind))
}

// Open captures the current end-of-stream position as a checkpoint.
func (b *Builder) Open() Checkpoint {
	return Checkpoint(len(b.nodes))
}

// Close wraps every node emitted since checkpoint into one new Tree
// node of the given kind, replacing them on the stream, and returns the
// new node.
func (b *Builder) Close(kind Kind, checkpoint Checkpoint) *Node {
	children := make([]*Node, len(b.nodes)-int(checkpoint))
	copy(children, b.nodes[checkpoint:])
	b.nodes = b.nodes[:checkpoint]
	tree := NewTree(kind, children)
	b.nodes = append(b.nodes, tree)
	return tree
}

// Finish validates that the stream holds exactly one root node and
// returns it. The parser arranges for that root's last token to be Eof,
// whose leading trivia then carries any trailing whitespace/comments,
// satisfying the single-trivia-block-at-each-end invariant.
func (b *Builder) Finish() *Node {
	if len(b.nodes) != 1 {
		panic("syntax: Builder.Finish called with a stream that is not a single root node")
	}
	return b.nodes[0]
}
