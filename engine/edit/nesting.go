package edit

import (
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/selection"
)

// NestList creates a nested list at the cursor, which is expected to be
// located in a text node within a list item. Generic list insertion does not
// nest lists properly inside list items, so the structure is built here:
//
//   1. the cursor's text node is wrapped into a new <li>,
//   2. the range is expanded to enclose the new item,
//   3. the item is wrapped into a new list of kind tag (ol or ul),
//   4. a <br> is inserted where the text used to be.
//
// Afterwards the cursor is placed back at its former offset in the text.
//
// The <br> of step 4 leaves an extra, empty line in the enclosing list item
// in front of the nested list. This is a known defect.
func NestList(cursor selection.Accessor, at *selection.Range, tag string) error {
	if tag != "ol" && tag != "ul" {
		return core.Error(core.EINVALID, "cannot nest list of kind <%s>", tag)
	}
	text, offset := at.StartContainer(), at.StartOffset()
	if !dom.IsText(text) {
		return core.Error(core.ENOTEXT, "list nesting needs a cursor within text")
	}
	wrap := at.Clone()
	if err := wrap.SelectNode(text); err != nil {
		return err
	}
	li := dom.CreateElement("li")
	if err := wrap.SurroundContents(li); err != nil {
		return err
	}
	if err := wrap.SelectNode(li); err != nil {
		return err
	}
	if err := wrap.SurroundContents(dom.CreateElement(tag)); err != nil {
		return err
	}
	wrap.Collapse(true)
	if err := wrap.InsertNode(dom.CreateElement("br")); err != nil {
		return err
	}
	tracer().Debugf("nested <%s> created", tag)
	return cursor.SetCollapsed(text, offset)
}
