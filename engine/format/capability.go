package format

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/selection"
	"golang.org/x/net/html"
)

// Names of formatting operations.
const (
	Bold                 = "bold"
	Italic               = "italic"
	CreateLink           = "createLink"
	InsertImage          = "insertImage"
	FormatBlock          = "formatBlock"
	InsertOrderedList    = "insertOrderedList"
	InsertUnorderedList  = "insertUnorderedList"
	InsertHorizontalRule = "insertHorizontalRule"
)

// Capability applies named rich-text operations to the current selection.
type Capability interface {
	// Enabled reports whether operation op is permissible for the current
	// selection.
	Enabled(op string) bool
	// Apply executes operation op with an optional value. It returns whether
	// the document now reflects the intended effect. Applying a disabled
	// operation fails with an error of code core.EUNSUPPORTED.
	Apply(op string, value string) (bool, error)
}

type operation struct {
	enabled func(c *DOMCapability, r *selection.Range) bool
	exec    func(c *DOMCapability, r *selection.Range, value string) (bool, error)
}

var operations = map[string]operation{
	Bold:                 {enabled: nonCollapsed, exec: surroundWith("b")},
	Italic:               {enabled: nonCollapsed, exec: surroundWith("i")},
	CreateLink:           {enabled: nonCollapsed, exec: createLink},
	InsertImage:          {enabled: always, exec: insertImage},
	FormatBlock:          {enabled: always, exec: formatBlock},
	InsertOrderedList:    {enabled: listEnabled("ol"), exec: insertList("ol")},
	InsertUnorderedList:  {enabled: listEnabled("ul"), exec: insertList("ul")},
	InsertHorizontalRule: {enabled: always, exec: insertHorizontalRule},
}

// DOMCapability is the formatting capability of an editable surface,
// operating on the surface's host selection.
type DOMCapability struct {
	surface *dom.Surface
	cursor  *selection.HostAccessor
	ops     *trie.Trie
}

var _ Capability = (*DOMCapability)(nil)

// New creates a formatting capability for an editable surface and its
// host selection.
func New(surface *dom.Surface, host selection.Host) *DOMCapability {
	c := &DOMCapability{
		surface: surface,
		cursor:  selection.NewAccessor(host),
		ops:     trie.New(),
	}
	for name, op := range operations {
		c.ops.Add(name, op)
	}
	return c
}

// Operations returns the names of all operations, sorted.
func (c *DOMCapability) Operations() []string {
	return c.Complete("")
}

// Complete returns the names of all operations starting with prefix, sorted.
func (c *DOMCapability) Complete(prefix string) []string {
	names := c.ops.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// Enabled is part of interface Capability.
func (c *DOMCapability) Enabled(op string) bool {
	_, _, err := c.prepare(op)
	return err == nil
}

// Apply is part of interface Capability.
func (c *DOMCapability) Apply(op string, value string) (bool, error) {
	o, r, err := c.prepare(op)
	if err != nil {
		tracer().Infof("%s refused: %v", op, err)
		return false, err
	}
	tracer().Debugf("%s(%q) at %v", op, value, r)
	return o.exec(c, r, value)
}

func (c *DOMCapability) prepare(op string) (operation, *selection.Range, error) {
	node, ok := c.ops.Find(op)
	if !ok {
		return operation{}, nil, core.Error(core.EUNSUPPORTED, "unknown operation %q", op)
	}
	o := node.Meta().(operation)
	r, err := c.cursor.Current()
	if err != nil {
		return o, nil, core.WrapError(err, core.EUNSUPPORTED, "%s needs a selection", op)
	}
	if !c.surface.Contains(r.StartContainer()) || !c.surface.Contains(r.EndContainer()) {
		return o, nil, core.Error(core.EUNSUPPORTED, "selection is outside of the editable surface")
	}
	if !o.enabled(c, r) {
		return o, nil, core.Error(core.EUNSUPPORTED, "%s is disabled for the current selection", op)
	}
	return o, r, nil
}

// restore sets the cursor to (n, offset), where n may have been replaced
// by another element during the operation.
func (c *DOMCapability) restore(n *html.Node, offset int, replaced, by *html.Node) error {
	if n == replaced && by != nil {
		n = by
	}
	return c.cursor.SetCollapsed(n, offset)
}

// --- Predicates ------------------------------------------------------------

func always(*DOMCapability, *selection.Range) bool {
	return true
}

func nonCollapsed(_ *DOMCapability, r *selection.Range) bool {
	return !r.Collapsed()
}

func listEnabled(tag string) func(*DOMCapability, *selection.Range) bool {
	return func(c *DOMCapability, r *selection.Range) bool {
		block := c.surface.BlockContainer(r.StartContainer())
		if dom.IsElement(block, "li") && dom.IsElement(block.Parent, tag) {
			return false // already a list item of this kind
		}
		return true
	}
}

// --- Block operations ------------------------------------------------------

var formatBlockTags = map[string]bool{
	"p": true, "div": true, "pre": true, "blockquote": true, "address": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// BlockTag normalizes a formatBlock value: "<H2>" and "h2" both yield "h2".
func BlockTag(value string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(value), "<"), ">"))
}

func formatBlock(c *DOMCapability, r *selection.Range, value string) (bool, error) {
	tag := BlockTag(value)
	if !formatBlockTags[tag] {
		return false, core.Error(core.EINVALID, "formatBlock does not support <%s>", tag)
	}
	sc, so := r.StartContainer(), r.StartOffset()
	block := c.surface.BlockContainer(sc)
	switch {
	case block == nil:
		run, between, err := c.inlineRun(sc)
		if err != nil {
			return false, err
		} else if between {
			return c.insertEmptyBlock(r, dom.CreateElement(tag), nil)
		}
		dom.Wrap(run, dom.CreateElement(tag))
	case dom.IsElement(block, "li"):
		el := dom.CreateElement(tag)
		dom.MoveChildren(block, el)
		block.AppendChild(el)
		return true, c.restore(sc, so, block, el)
	case block.Data == tag:
		tracer().Debugf("block is already <%s>", tag)
	default:
		el := dom.Rename(block, tag)
		return true, c.restore(sc, so, block, el)
	}
	return true, c.restore(sc, so, nil, nil)
}

// inlineRun finds the content a block operation applies to if the cursor sc
// has no enclosing block container. If sc is the editable root or another
// block-level element, the cursor is located between blocks and between is
// true. Otherwise the run of inline nodes containing sc is returned.
func (c *DOMCapability) inlineRun(sc *html.Node) (run []*html.Node, between bool, err error) {
	if sc == c.surface.Root() || dom.IsBlockLevel(sc) {
		return nil, true, nil
	}
	if run = c.surface.InlineRun(sc); len(run) == 0 {
		return nil, false, core.Error(core.EUNSUPPORTED, "no inline content at the cursor")
	}
	return run, false, nil
}

// insertEmptyBlock inserts block at the cursor, which is located between
// other blocks. The cursor is moved into a new
// empty text node within block, or within inner if given.
func (c *DOMCapability) insertEmptyBlock(r *selection.Range, block, inner *html.Node) (bool, error) {
	if inner == nil {
		inner = block
	}
	text := dom.CreateTextNode("")
	inner.AppendChild(text)
	if err := r.InsertNode(block); err != nil {
		return false, err
	}
	return true, c.cursor.SetCollapsed(text, 0)
}

func insertList(tag string) func(*DOMCapability, *selection.Range, string) (bool, error) {
	return func(c *DOMCapability, r *selection.Range, _ string) (bool, error) {
		sc, so := r.StartContainer(), r.StartOffset()
		list, li := dom.CreateElement(tag), dom.CreateElement("li")
		list.AppendChild(li)
		block := c.surface.BlockContainer(sc)
		switch {
		case block == nil:
			run, between, err := c.inlineRun(sc)
			if err != nil {
				return false, err
			} else if between {
				return c.insertEmptyBlock(r, list, li)
			}
			dom.InsertBefore(run[0].Parent, list, run[0])
			for _, n := range run {
				dom.AppendChild(li, n)
			}
		case dom.IsElement(block, "li"):
			if !dom.IsList(block.Parent) {
				return false, core.Error(core.EINVALID, "list item without enclosing list")
			}
			dom.Rename(block.Parent, tag) // switch the kind of the enclosing list
		default:
			dom.InsertBefore(block.Parent, list, block)
			dom.MoveChildren(block, li)
			dom.Detach(block)
			return true, c.restore(sc, so, block, li)
		}
		return true, c.restore(sc, so, nil, nil)
	}
}

func insertHorizontalRule(c *DOMCapability, r *selection.Range, _ string) (bool, error) {
	sc, so := r.StartContainer(), r.StartOffset()
	hr := dom.CreateElement("hr")
	block := c.surface.BlockContainer(sc)
	switch {
	case block == nil:
		run, between, err := c.inlineRun(sc)
		if err != nil {
			return false, err
		} else if between {
			if err := r.InsertNode(hr); err != nil {
				return false, err
			}
			return true, c.cursor.SetCollapsed(hr.Parent, dom.ChildIndex(hr)+1)
		}
		dom.InsertBefore(run[0].Parent, hr, run[0])
	case dom.IsElement(block, "li"):
		dom.InsertBefore(block, hr, block.FirstChild)
	default:
		dom.InsertBefore(block.Parent, hr, block)
	}
	if hr.Parent == sc && dom.ChildIndex(hr) <= so {
		so++ // cursor was an element boundary behind the rule
	}
	return true, c.restore(sc, so, nil, nil)
}

// --- Inline operations -----------------------------------------------------

func surroundWith(tag string) func(*DOMCapability, *selection.Range, string) (bool, error) {
	return func(c *DOMCapability, r *selection.Range, _ string) (bool, error) {
		return c.surround(r, dom.CreateElement(tag))
	}
}

func createLink(c *DOMCapability, r *selection.Range, href string) (bool, error) {
	if href == "" {
		return false, core.Error(core.EINVALID, "createLink needs a link target")
	}
	a := dom.CreateElement("a")
	a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: href})
	return c.surround(r, a)
}

func (c *DOMCapability) surround(r *selection.Range, el *html.Node) (bool, error) {
	if err := r.SurroundContents(el); err != nil {
		return false, err
	}
	if err := r.SelectNodeContents(el); err != nil {
		return false, err
	}
	c.cursor.Select(r)
	return true, nil
}

func insertImage(c *DOMCapability, r *selection.Range, src string) (bool, error) {
	if src == "" {
		return false, core.Error(core.EINVALID, "insertImage needs an image source")
	}
	if err := r.DeleteContents(); err != nil {
		return false, err
	}
	img := dom.CreateElement("img")
	img.Attr = append(img.Attr, html.Attribute{Key: "src", Val: src})
	if err := r.InsertNode(img); err != nil {
		return false, err
	}
	return true, c.cursor.SetCollapsed(img.Parent, dom.ChildIndex(img)+1)
}
