package main

import (
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// caretLine returns a line which places a caret below text at byte offset,
// for display on a monospace terminal. Wide characters occupy two columns.
func caretLine(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	if offset <= 0 {
		return "^" // grapheme strings must not be empty
	}
	gstr := grapheme.StringFromString(text[:offset])
	col := uax11.StringWidth(gstr, uax11.LatinContext)
	return strings.Repeat(" ", col) + "^"
}
