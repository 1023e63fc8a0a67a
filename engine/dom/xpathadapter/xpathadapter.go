/*
Package xpathadapter implements an xpath.NodeNavigator.

We use this library for XPath queries:

	github.com/antchfx/xpath

Package xpathadapter implements an adapter to enable antchfx/xpath to
access an editable surface, i.e. a sub-tree of *html.Node. The navigator
is bounded: the editable root acts as the root of the document, and no
move will ever leave the sub-tree below it. Queries on the ancestor axis
will therefore stop at the editable root and never cross into the
surrounding page.

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xpathadapter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// NodeNavigator navigates a bounded sub-tree of an HTML parse tree.
type NodeNavigator struct {
	root, current *html.Node
	attr          int // attributes index
}

// NewNavigator creates a new xpath.NodeNavigator for the sub-tree at root,
// positioned at node start. start is expected to be root or one of its
// descendents.
func NewNavigator(root, start *html.Node) *NodeNavigator {
	if start == nil {
		start = root
	}
	return &NodeNavigator{
		current: start,
		root:    root,
		attr:    -1,
	}
}

// CurrentNode extracts the HTML node a navigator is positioned at.
func CurrentNode(nav xpath.NodeNavigator) (*html.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch nav.current.Type {
	case html.CommentNode:
		return xpath.CommentNode
	case html.TextNode:
		return xpath.TextNode
	case html.DocumentNode, html.DoctypeNode:
		return xpath.RootNode
	case html.ElementNode:
		if nav.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	}
	panic(fmt.Sprintf("unknown node type: %v", nav.current.Type))
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.Attr[nav.attr].Key
	}
	return nav.current.Data
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	switch nav.current.Type {
	case html.CommentNode:
		return nav.current.Data
	case html.ElementNode:
		if nav.attr != -1 {
			return nav.current.Attr[nav.attr].Val
		}
		return innerText(nav.current)
	case html.TextNode:
		return nav.current.Data
	}
	return ""
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nav.root || nav.current.Parent == nil {
		return false
	}
	nav.current = nav.current.Parent
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr >= len(nav.current.Attr)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 || nav.current.FirstChild == nil {
		return false
	}
	nav.current = nav.current.FirstChild
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current == nav.root || nav.current.Parent == nil {
		return false
	}
	first := nav.current.Parent.FirstChild
	if first == nav.current {
		return false
	}
	nav.current = first
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || nav.current == nav.root || nav.current.NextSibling == nil {
		return false
	}
	nav.current = nav.current.NextSibling
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.current == nav.root || nav.current.PrevSibling == nil {
		return false
	}
	nav.current = nav.current.PrevSibling
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// innerText returns the text between the start and end tags of the object.
func innerText(n *html.Node) string {
	var output func(*bytes.Buffer, *html.Node)
	output = func(buf *bytes.Buffer, n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			output(buf, child)
		}
	}

	var buf bytes.Buffer
	output(&buf, n)
	return buf.String()
}
