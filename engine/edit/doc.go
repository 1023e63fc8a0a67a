/*
Package edit turns markdown-like shortcuts into rich-text structure while
the user types.

When the trigger key (the space bar, by default) is pressed, a Session
looks at the text immediately preceding the cursor, the declaration. If the
declaration is recognized by the grammar of package markdown, the current
block is converted, e.g. "##" turns a paragraph into a level-2 heading, and
the declaration text is erased. The key press is then consumed. Otherwise
the key press proceeds and inserts its character as usual.

Processing a key press follows a fixed sequence:

   cursor → declaration → command → formatting (or list nesting) → erase

Every step which mutates the document invalidates cursor positions held
so far. The cursor is therefore re-acquired from the selection accessor
after each mutation, and no positional reference outlives a single key press.

Editor bundles a surface, its selection, a formatting capability and a
session, and performs the default effect of keys which are not consumed.
It stands in for the host editor of a surface.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package edit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shortmark.edit'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.edit")
}
