package dom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cords"
	"golang.org/x/net/html"
)

// InnerText creates a text cord for the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//      document.getElementById("myNode").innerText
//
// in JavaScript, except that <br> and block boundaries are not converted
// to newlines.
//
// The fragment organization of the resulting cord will reflect the text nodes
// of the element node's descendents. Empty text nodes are skipped.
//
func InnerText(n *html.Node) (cords.Cord, error) {
	if n == nil {
		return cords.Cord{}, cords.ErrIllegalArguments
	}
	b := cords.NewBuilder()
	collectText(n, b)
	return b.Cord(), nil
}

// InnerText returns the text content of the editable surface as a cord.
func (s *Surface) InnerText() (cords.Cord, error) {
	return InnerText(s.root)
}

func collectText(n *html.Node, b *cords.Builder) {
	if n.Type == html.TextNode && n.Data != "" {
		parent := n.Parent
		for parent != nil && parent.Type != html.ElementNode {
			parent = parent.Parent
		}
		leaf := &Leaf{
			element: parent,
			content: n.Data,
		}
		b.Append(leaf)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// ---------------------------------------------------------------------------

// Leaf is the leaf type created for cords from calls to InnerText(…).
type Leaf struct {
	element *html.Node
	content string
}

// Weight of a leaf is its string length in bytes.
func (l Leaf) Weight() uint64 {
	return uint64(len(l.content))
}

func (l Leaf) String() string {
	return l.content
}

// Split splits a leaf at position i, resulting in 2 new leafs.
func (l Leaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	left := &Leaf{
		element: l.element,
		content: l.content[:i],
	}
	right := &Leaf{
		element: l.element,
		content: l.content[i:],
	}
	return left, right
}

// Substring returns a string segment of the leaf's text fragment.
func (l Leaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

// Element returns the element enclosing the leaf's text.
func (l Leaf) Element() *html.Node {
	return l.element
}

var _ cords.Leaf = Leaf{}

// DebugString returns a leaf as {<tag> "text"}, with newlines made visible.
func (l Leaf) DebugString() string {
	estr := "?"
	if l.element != nil {
		estr = l.element.Data
	}
	cont := strings.Replace(l.String(), "\n", "_", -1)
	return fmt.Sprintf("{<%s> \"%s\"}", estr, cont)
}
