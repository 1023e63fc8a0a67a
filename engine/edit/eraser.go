package edit

import (
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/selection"
	"github.com/npillmayer/shortmark/input/markdown"
)

// EraseDeclaration deletes the declaration text after a command has been
// applied successfully. The cursor is re-acquired first, as the command
// will have restructured the tree. Everything from the start of the cursor's
// text node up to the cursor is deleted; nothing after the cursor is touched.
// Like ExtractDeclaration, a cursor inside a multi-byte rune counts from the
// start of that rune.
// Afterwards the cursor is collapsed at the start of the text node.
//
// For block commands a <br> placeholder is appended to the enclosing block,
// which otherwise may collapse to zero height once its text is gone.
func EraseDeclaration(surface *dom.Surface, cursor selection.Accessor, length int, kind markdown.Kind) error {
	r, err := cursor.Current()
	if err != nil {
		return err
	}
	text, offset := r.StartContainer(), r.StartOffset()
	if !dom.IsText(text) || text.Parent == nil {
		return core.Error(core.ENOTEXT, "cursor left the text after formatting")
	}
	offset = runeStart(text.Data, offset)
	if offset < length {
		return core.Error(core.EINVALID, "cursor offset %d cannot hold a declaration of length %d",
			offset, length)
	}
	if kind == markdown.KindBlock {
		container := surface.BlockContainer(text)
		if container == nil {
			container = text.Parent
		}
		container.AppendChild(dom.CreateElement("br"))
	}
	span, err := selection.NewRange(text, 0)
	if err != nil {
		return err
	}
	if err = span.SetEnd(text, offset); err != nil {
		return err
	}
	if err = span.DeleteContents(); err != nil {
		return err
	}
	return cursor.SetCollapsed(text, 0)
}
