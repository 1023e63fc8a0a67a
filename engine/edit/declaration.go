package edit

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/selection"
)

// ExtractDeclaration returns the text preceding the cursor within the
// cursor's text node, with surrounding whitespace trimmed. If the cursor is
// not located in a text node, an error of code core.ENOTEXT is returned.
// A cursor offset inside a multi-byte rune is moved back to the start of the
// rune. ExtractDeclaration does not mutate anything.
func ExtractDeclaration(cursor *selection.Range) (string, error) {
	text := cursor.StartContainer()
	if !dom.IsText(text) {
		return "", core.Error(core.ENOTEXT, "cursor is not within a text node")
	}
	offset := cursor.StartOffset()
	if offset < 0 || offset > len(text.Data) {
		return "", core.Error(core.EINVALID, "cursor offset %d outside of text", offset)
	}
	offset = runeStart(text.Data, offset)
	return strings.TrimSpace(text.Data[:offset]), nil
}

// runeStart moves a byte offset within s back to the start of the rune it
// points into.
func runeStart(s string, offset int) int {
	for offset > 0 && offset < len(s) && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}
