/*
Package format implements the formatting capability of an editable surface.

A formatting capability applies a named rich-text operation, optionally with
a value, to the current selection. The vocabulary follows the command names
known from HTML editing hosts:

   bold, italic, createLink, insertImage,
   formatBlock, insertOrderedList, insertUnorderedList, insertHorizontalRule

Before executing an operation, a capability checks whether the operation is
permissible for the current selection. Applying a disabled operation is an
error (code core.EUNSUPPORTED) and leaves the document untouched.

Executing an operation may replace the active selection. Clients must
re-acquire the cursor after each call.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package format

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shortmark.format'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.format")
}
