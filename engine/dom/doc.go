/*
Package dom implements the editable surface the shortcut engine operates on.

A surface is a sub-tree of an HTML parse tree (package golang.org/x/net/html),
rooted at an element which is marked as editable. The engine never builds this
tree wholesale; it reads fragments of it and issues targeted mutations: create
element and text nodes, insert, wrap, rename and detach nodes.

Clients must not hold on to node references across edits which restructure
the tree. Package selection has the details.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shortmark.dom'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.dom")
}
