/*
Package selection implements ranges and the cursor of an editable surface.

A Range is a pair of boundary points (node, offset). For text nodes, offsets
are byte positions into the text; for element nodes, offsets count children.

Every mutation of the document tree may invalidate boundary points held
elsewhere. Clients therefore never keep a Range across a mutation: the
Accessor hands out a fresh copy of the live cursor on each call to Current,
and operations which mutate the tree return an error value only, never a
Range. After a mutation, callers re-acquire the cursor.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selection

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shortmark.selection'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.selection")
}
