package dom

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/shortmark/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block containers are elements which formatBlock may rename and which
// delimit inline runs.
var blockContainer = cascadia.MustCompile("p, div, h1, h2, h3, h4, h5, h6, pre, blockquote, li, address")

// Block-level elements end an inline run, but are not containers for text.
var blockLevel = cascadia.MustCompile("p, div, h1, h2, h3, h4, h5, h6, pre, blockquote, li, address, ul, ol, hr, " +
	"table, tbody, thead, tfoot, tr, td, th, caption, dl, dt, dd")

var listElement = cascadia.MustCompile("ul, ol")

// Surface is an editable surface, i.e. an element node of an HTML tree
// together with all its descendents.
type Surface struct {
	root *html.Node
}

// NewSurface creates an editable surface rooted at an element node.
func NewSurface(root *html.Node) (*Surface, error) {
	if root == nil || root.Type != html.ElementNode {
		return nil, core.Error(core.EINVALID, "editable root must be an element node")
	}
	return &Surface{root: root}, nil
}

// Root returns the editable root element.
func (s *Surface) Root() *html.Node {
	return s.root
}

// Contains is true if n is the editable root or one of its descendents.
func (s *Surface) Contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == s.root {
			return true
		}
	}
	return false
}

// BlockContainer returns the nearest block container enclosing n, strictly
// below the editable root. If n is a block container itself, n is returned.
// If there is none, nil is returned.
func (s *Surface) BlockContainer(n *html.Node) *html.Node {
	for ; n != nil && n != s.root; n = n.Parent {
		if n.Type == html.ElementNode && blockContainer.Match(n) {
			return n
		}
	}
	return nil
}

// InlineRun returns the run of inline siblings which contains n, for content
// without any enclosing block container. The run is located either directly
// below the editable root or below a block-level element which does not
// qualify as a block container, such as <td> or a stray <ul>.
// For content within a block container, nil is returned.
func (s *Surface) InlineRun(n *html.Node) []*html.Node {
	if n == nil || n == s.root {
		return nil
	}
	for n.Parent != nil && n.Parent != s.root && !IsBlockLevel(n.Parent) {
		n = n.Parent
	}
	if n.Parent == nil || IsBlockLevel(n) {
		return nil // outside of the surface, or not inline
	}
	if n.Parent != s.root && blockContainer.Match(n.Parent) {
		return nil
	}
	first := n
	for first.PrevSibling != nil && !IsBlockLevel(first.PrevSibling) {
		first = first.PrevSibling
	}
	var run []*html.Node
	for c := first; c != nil && !IsBlockLevel(c); c = c.NextSibling {
		run = append(run, c)
	}
	return run
}

// ListItemAncestor returns the nearest <li> element enclosing n. The search
// stops at the editable root and never looks further up the tree.
func (s *Surface) ListItemAncestor(n *html.Node) *html.Node {
	if !s.Contains(n) {
		return nil
	}
	li, err := queryAncestor(s.root, n, "li")
	if err != nil {
		tracer().Errorf("list item query: %v", err)
		return nil
	}
	return li
}

// Query returns all elements below the editable root matching a CSS selector.
func (s *Surface) Query(selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid selector %q", selector)
	}
	return sel.MatchAll(s.root), nil
}

// Render writes the HTML content of the editable root, excluding the root
// element itself.
func (s *Surface) Render(w io.Writer) error {
	for c := s.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String returns the HTML content of the editable root.
func (s *Surface) String() string {
	var b bytes.Buffer
	if err := s.Render(&b); err != nil {
		tracer().Errorf("rendering surface: %v", err)
	}
	return b.String()
}

// FirstText returns the first text node below n, in document order.
func FirstText(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.TextNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := FirstText(c); t != nil {
			return t
		}
	}
	return nil
}

// LastText returns the last text node below n, in document order.
func LastText(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.TextNode {
		return n
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if t := LastText(c); t != nil {
			return t
		}
	}
	return nil
}

// --- Node helpers ----------------------------------------------------------

// CreateElement creates a new, detached element node.
func CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateTextNode creates a new, detached text node.
func CreateTextNode(text string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: text,
	}
}

// IsText is true for text nodes.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement is true if n is an element node with one of the given tag names.
// If no tags are given, IsElement checks for element type only.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// IsBlockLevel is true for elements which terminate an inline run.
func IsBlockLevel(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockLevel.Match(n)
}

// IsList is true for <ul> and <ol> elements.
func IsList(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && listElement.Match(n)
}

// NodeLength returns the length of a node in terms of boundary offsets:
// the byte length for text nodes, the number of children otherwise.
func NodeLength(n *html.Node) int {
	if n == nil {
		return 0
	}
	if n.Type == html.TextNode || n.Type == html.CommentNode {
		return len(n.Data)
	}
	l := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l++
	}
	return l
}

// ChildIndex returns the position of n within its parent's children,
// or -1 for detached nodes.
func ChildIndex(n *html.Node) int {
	if n == nil || n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			return i
		}
		i++
	}
	return -1
}

// ChildAt returns the i-th child of parent, or nil.
func ChildAt(parent *html.Node, i int) *html.Node {
	if parent == nil || i < 0 {
		return nil
	}
	c := parent.FirstChild
	for ; c != nil && i > 0; c = c.NextSibling {
		i--
	}
	return c
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertBefore inserts n into parent, before ref. If ref is nil, n is
// appended. n is detached from its current parent first.
func InsertBefore(parent, n, ref *html.Node) {
	Detach(n)
	parent.InsertBefore(n, ref)
}

// AppendChild appends n to parent, detaching it from its current parent first.
func AppendChild(parent, n *html.Node) {
	Detach(n)
	parent.AppendChild(n)
}

// MoveChildren moves all children of from to the end of to.
func MoveChildren(from, to *html.Node) {
	for c := from.FirstChild; c != nil; c = from.FirstChild {
		from.RemoveChild(c)
		to.AppendChild(c)
	}
}

// Wrap inserts el at the position of the first of nodes and moves all the
// nodes into el. The nodes are expected to be consecutive siblings.
func Wrap(nodes []*html.Node, el *html.Node) {
	if len(nodes) == 0 || nodes[0].Parent == nil {
		return
	}
	InsertBefore(nodes[0].Parent, el, nodes[0])
	for _, n := range nodes {
		AppendChild(el, n)
	}
}

// Rename replaces element n by a new element with tag name tag, carrying
// over n's attributes and children. The new element is returned.
// Renaming a detached node returns the new, detached element.
func Rename(n *html.Node, tag string) *html.Node {
	el := CreateElement(tag)
	el.Attr = append(el.Attr, n.Attr...)
	if n.Parent != nil {
		n.Parent.InsertBefore(el, n)
		n.Parent.RemoveChild(n)
	}
	MoveChildren(n, el)
	return el
}
