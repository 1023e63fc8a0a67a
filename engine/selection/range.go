package selection

import (
	"fmt"

	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"golang.org/x/net/html"
)

// Range is a span of the document tree, delimited by two boundary points.
// A range with identical start and end points is collapsed and denotes a
// cursor position.
type Range struct {
	startContainer *html.Node
	startOffset    int
	endContainer   *html.Node
	endOffset      int
}

// NewRange creates a collapsed range at (n, offset).
func NewRange(n *html.Node, offset int) (*Range, error) {
	if err := checkBoundary(n, offset); err != nil {
		return nil, err
	}
	return &Range{
		startContainer: n,
		startOffset:    offset,
		endContainer:   n,
		endOffset:      offset,
	}, nil
}

// StartContainer returns the node of the start boundary point.
func (r *Range) StartContainer() *html.Node { return r.startContainer }

// StartOffset returns the offset of the start boundary point.
func (r *Range) StartOffset() int { return r.startOffset }

// EndContainer returns the node of the end boundary point.
func (r *Range) EndContainer() *html.Node { return r.endContainer }

// EndOffset returns the offset of the end boundary point.
func (r *Range) EndOffset() int { return r.endOffset }

// Collapsed is true if start and end of r are identical.
func (r *Range) Collapsed() bool {
	return r.startContainer == r.endContainer && r.startOffset == r.endOffset
}

// Clone returns an independent copy of r.
func (r *Range) Clone() *Range {
	c := *r
	return &c
}

func (r *Range) String() string {
	return fmt.Sprintf("[%s:%d … %s:%d]", nodeName(r.startContainer), r.startOffset,
		nodeName(r.endContainer), r.endOffset)
}

// SetStart sets the start boundary point. If the new start is after the
// current end, or in a different tree, the range is collapsed to the new start.
func (r *Range) SetStart(n *html.Node, offset int) error {
	if err := checkBoundary(n, offset); err != nil {
		return err
	}
	r.startContainer, r.startOffset = n, offset
	if treeRoot(n) != treeRoot(r.endContainer) ||
		compareBoundaries(n, offset, r.endContainer, r.endOffset) > 0 {
		r.endContainer, r.endOffset = n, offset
	}
	return nil
}

// SetEnd sets the end boundary point. If the new end is before the current
// start, or in a different tree, the range is collapsed to the new end.
func (r *Range) SetEnd(n *html.Node, offset int) error {
	if err := checkBoundary(n, offset); err != nil {
		return err
	}
	r.endContainer, r.endOffset = n, offset
	if treeRoot(n) != treeRoot(r.startContainer) ||
		compareBoundaries(r.startContainer, r.startOffset, n, offset) > 0 {
		r.startContainer, r.startOffset = n, offset
	}
	return nil
}

// Collapse collapses r to its start (toStart=true) or end.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.endContainer, r.endOffset = r.startContainer, r.startOffset
	} else {
		r.startContainer, r.startOffset = r.endContainer, r.endOffset
	}
}

// SelectNode sets r to enclose node n. n must have a parent.
func (r *Range) SelectNode(n *html.Node) error {
	if n == nil || n.Parent == nil {
		return core.Error(core.EMISSING, "cannot select detached node")
	}
	i := dom.ChildIndex(n)
	r.startContainer, r.startOffset = n.Parent, i
	r.endContainer, r.endOffset = n.Parent, i+1
	return nil
}

// SelectNodeContents sets r to span all the content of n.
func (r *Range) SelectNodeContents(n *html.Node) error {
	if n == nil {
		return core.Error(core.EMISSING, "cannot select contents of nil node")
	}
	r.startContainer, r.startOffset = n, 0
	r.endContainer, r.endOffset = n, dom.NodeLength(n)
	return nil
}

// DeleteContents removes the content spanned by r from the tree. Text nodes
// partially covered by r are truncated, nodes fully covered are removed.
// Afterwards r is collapsed.
func (r *Range) DeleteContents() error {
	if r.Collapsed() {
		return nil
	}
	sc, so, ec, eo := r.startContainer, r.startOffset, r.endContainer, r.endOffset
	if err := checkBoundary(sc, so); err != nil {
		return err
	}
	if err := checkBoundary(ec, eo); err != nil {
		return err
	}
	if sc == ec {
		if dom.IsText(sc) {
			sc.Data = sc.Data[:so] + sc.Data[eo:]
		} else {
			for i := so; i < eo; i++ {
				dom.Detach(dom.ChildAt(sc, so))
			}
		}
		r.Collapse(true)
		return nil
	}
	newNode, newOffset := sc, so
	if !isInclusiveAncestor(sc, ec) {
		ref := sc
		for ref.Parent != nil && !isInclusiveAncestor(ref.Parent, ec) {
			ref = ref.Parent
		}
		newNode, newOffset = ref.Parent, dom.ChildIndex(ref)+1
	}
	var contained []*html.Node
	r.collectContained(commonAncestor(sc, ec), &contained)
	tracer().Debugf("delete contents: %d nodes fully contained", len(contained))
	if dom.IsText(sc) {
		sc.Data = sc.Data[:so]
	}
	for _, n := range contained {
		dom.Detach(n)
	}
	if dom.IsText(ec) {
		ec.Data = ec.Data[eo:]
	}
	r.startContainer, r.startOffset = newNode, newOffset
	r.Collapse(true)
	return nil
}

// InsertNode inserts n at the start of r. If the start lies within a text
// node, the text node is split. Afterwards r encloses n.
func (r *Range) InsertNode(n *html.Node) error {
	if n == nil {
		return core.Error(core.EINVALID, "cannot insert nil node")
	}
	sc, so := r.startContainer, r.startOffset
	if err := checkBoundary(sc, so); err != nil {
		return err
	}
	var parent, ref *html.Node
	if dom.IsText(sc) {
		if sc.Parent == nil {
			return core.Error(core.EMISSING, "cannot insert into detached text node")
		}
		parent, ref = sc.Parent, splitText(sc, so)
	} else {
		parent, ref = sc, dom.ChildAt(sc, so)
	}
	if isInclusiveAncestor(n, parent) {
		return core.Error(core.EINVALID, "cannot insert node into itself")
	}
	dom.InsertBefore(parent, n, ref)
	return r.SelectNode(n)
}

// SurroundContents moves the content spanned by r into element el, and
// inserts el at the start of r. Surrounding fails if r partially covers a
// node which is not a text node. Afterwards r encloses el.
func (r *Range) SurroundContents(el *html.Node) error {
	if el == nil || el.Type != html.ElementNode {
		return core.Error(core.EINVALID, "can only surround contents with an element")
	}
	sc, so, ec, eo := r.startContainer, r.startOffset, r.endContainer, r.endOffset
	if err := checkBoundary(sc, so); err != nil {
		return err
	}
	if err := checkBoundary(ec, eo); err != nil {
		return err
	}
	ca := commonAncestor(sc, ec)
	if dom.IsText(ca) {
		ca = ca.Parent
	}
	if ca == nil {
		return core.Error(core.EMISSING, "range is not part of a tree")
	}
	for _, b := range []*html.Node{sc, ec} {
		if b != ca && (!dom.IsText(b) || b.Parent != ca) {
			return core.Error(core.EINVALID, "range partially selects a non-text node")
		}
	}
	if isInclusiveAncestor(el, ca) {
		return core.Error(core.EINVALID, "cannot surround contents with an ancestor")
	}
	// split the end boundary first: splitting at the start may shift
	// child offsets of the common ancestor
	var endRef, startRef *html.Node
	if dom.IsText(ec) {
		endRef = splitText(ec, eo)
	} else {
		endRef = dom.ChildAt(ca, eo)
	}
	if dom.IsText(sc) {
		startRef = splitText(sc, so)
	} else {
		startRef = dom.ChildAt(ca, so)
	}
	for c := el.FirstChild; c != nil; c = el.FirstChild {
		el.RemoveChild(c)
	}
	dom.InsertBefore(ca, el, startRef)
	for c := el.NextSibling; c != nil && c != endRef; c = el.NextSibling {
		dom.AppendChild(el, c)
	}
	return r.SelectNode(el)
}

// collectContained collects nodes below n which are fully contained in r,
// without descending into contained nodes.
func (r *Range) collectContained(n *html.Node, nodes *[]*html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if compareBoundaries(c, 0, r.startContainer, r.startOffset) > 0 &&
			compareBoundaries(c, dom.NodeLength(c), r.endContainer, r.endOffset) < 0 {
			*nodes = append(*nodes, c)
		} else if isInclusiveAncestor(c, r.startContainer) || isInclusiveAncestor(c, r.endContainer) {
			r.collectContained(c, nodes)
		}
	}
}

// --- Helpers ---------------------------------------------------------------

func checkBoundary(n *html.Node, offset int) error {
	if n == nil {
		return core.Error(core.EMISSING, "boundary point without a node")
	}
	if n.Type == html.DoctypeNode {
		return core.Error(core.EINVALID, "doctype cannot be a boundary point")
	}
	if offset < 0 || offset > dom.NodeLength(n) {
		return core.Error(core.EINVALID, "offset %d out of bounds for %s (length %d)",
			offset, nodeName(n), dom.NodeLength(n))
	}
	return nil
}

// splitText splits text node t at offset and returns the node which follows
// the split point. No empty text nodes are created: splitting at the start
// returns t, splitting at the end returns t's next sibling.
func splitText(t *html.Node, offset int) *html.Node {
	if offset == 0 {
		return t
	}
	if offset >= len(t.Data) {
		return t.NextSibling
	}
	tail := dom.CreateTextNode(t.Data[offset:])
	t.Data = t.Data[:offset]
	if t.Parent != nil {
		t.Parent.InsertBefore(tail, t.NextSibling)
	}
	return tail
}

func isInclusiveAncestor(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

func commonAncestor(a, b *html.Node) *html.Node {
	for n := a; n != nil; n = n.Parent {
		if isInclusiveAncestor(n, b) {
			return n
		}
	}
	return nil
}

func treeRoot(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

// path returns the child indices leading from the tree root to n.
func path(n *html.Node) []int {
	var p []int
	for ; n != nil && n.Parent != nil; n = n.Parent {
		p = append(p, dom.ChildIndex(n))
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// compareBoundaries returns -1, 0 or +1 if boundary point (an, ao) is
// before, equal to or after (bn, bo), in document order. Both points are
// expected to be located in the same tree.
func compareBoundaries(an *html.Node, ao int, bn *html.Node, bo int) int {
	pa := append(path(an), ao)
	pb := append(path(bn), bo)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] < pb[i] {
			return -1
		} else if pa[i] > pb[i] {
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

func nodeName(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	case html.ElementNode:
		return n.Data
	}
	return "#node"
}
