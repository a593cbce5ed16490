package cst

import "github.com/sysml-tools/sysml-engine/syntax/token"

// Builder accumulates GreenElements into a stack of open node frames, the
// way the teacher's recursive-descent parser builds its AST one call
// frame at a time. Checkpoint/StartNodeAt lets the parser open a node
// retroactively (needed so a production can look ahead before deciding
// what kind of node it is building — e.g. distinguishing a Definition
// from a Usage only after seeing whether "def" follows the keyword).
type Builder struct {
	frames [][]GreenElement
}

// NewBuilder returns an empty Builder with one open frame, onto which the
// root SourceFile's children are pushed.
func NewBuilder() *Builder {
	return &Builder{frames: [][]GreenElement{nil}}
}

// Token appends a leaf token (structural or trivia) to the innermost open
// frame.
func (b *Builder) Token(kind token.Kind, text string) {
	b.push(&GreenToken{Kind: kind, Text: text})
}

// StartNode opens a new frame; matched by a later call to FinishNode.
func (b *Builder) StartNode() {
	b.frames = append(b.frames, nil)
}

// FinishNode closes the innermost frame, wraps its accumulated children
// in a GreenNode of the given kind, and appends that node to the (now
// innermost) enclosing frame. Trivia tokens at the start of the closed
// frame are appended to the enclosing frame ahead of the node instead of
// being wrapped in it, so a node's range starts at its first non-trivia
// element.
func (b *Builder) FinishNode(kind NodeKind) *GreenNode {
	n := len(b.frames) - 1
	children := b.frames[n]
	b.frames = b.frames[:n]
	lead := 0
	for lead < len(children) {
		if t, ok := children[lead].(*GreenToken); !ok || !t.Kind.IsTrivia() {
			break
		}
		b.push(children[lead])
		lead++
	}
	node := NewGreenNode(kind, children[lead:])
	b.push(node)
	return node
}

func (b *Builder) push(el GreenElement) {
	top := len(b.frames) - 1
	b.frames[top] = append(b.frames[top], el)
}

// Checkpoint marks a position in the current frame so a node can be
// opened retroactively around everything pushed since the checkpoint
// (used when the parser must see a few tokens before it knows which
// node kind it is building, e.g. Definition vs. Usage).
type Checkpoint struct {
	frame int
	index int
}

// Checkpoint returns a marker for the current position in the innermost
// open frame.
func (b *Builder) Checkpoint() Checkpoint {
	top := len(b.frames) - 1
	return Checkpoint{frame: top, index: len(b.frames[top])}
}

// StartNodeAt opens a new node retroactively: every element pushed to
// frame cp.frame since cp was taken is moved into the new node's frame.
func (b *Builder) StartNodeAt(cp Checkpoint) {
	frame := b.frames[cp.frame]
	tail := append([]GreenElement(nil), frame[cp.index:]...)
	b.frames[cp.frame] = frame[:cp.index]
	b.frames = append(b.frames, tail)
}

// Finish closes the root frame and returns the SourceFile node. The
// Builder must have exactly one open frame (the root) remaining.
func (b *Builder) Finish() *GreenNode {
	n := len(b.frames) - 1
	node := NewGreenNode(SourceFile, b.frames[n])
	b.frames = b.frames[:n]
	return node
}
