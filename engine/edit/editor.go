package edit

import (
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/format"
	"github.com/npillmayer/shortmark/engine/selection"
	"github.com/npillmayer/shortmark/input/keyboard"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Editor is a minimal host editor for an editable surface. It owns the
// selection of the surface, delivers key presses to a shortcut session and
// performs the default effect of every key press not consumed by the session.
type Editor struct {
	surface *dom.Surface
	sel     *selection.Selection
	cursor  *selection.HostAccessor
	format  *format.DOMCapability
	session *Session
}

// NewEditor creates an editor for surface. Options are handed to the
// editor's shortcut session. The editor starts without a cursor; call Focus
// to place one.
func NewEditor(surface *dom.Surface, opts ...Option) *Editor {
	e := &Editor{
		surface: surface,
		sel:     selection.New(),
	}
	e.cursor = selection.NewAccessor(e.sel)
	e.format = format.New(surface, e.sel)
	e.session = NewSession(surface, e.cursor, e.format, opts...)
	return e
}

// Surface returns the editable surface.
func (e *Editor) Surface() *dom.Surface { return e.surface }

// Selection returns the host selection of the surface.
func (e *Editor) Selection() *selection.Selection { return e.sel }

// Cursor returns the accessor for the editor's cursor.
func (e *Editor) Cursor() *selection.HostAccessor { return e.cursor }

// Format returns the formatting capability of the surface.
func (e *Editor) Format() *format.DOMCapability { return e.format }

// Session returns the shortcut session.
func (e *Editor) Session() *Session { return e.session }

// Focus places the cursor at the end of the surface's last text. If the
// surface has no text, an empty text node is created for the cursor.
func (e *Editor) Focus() error {
	root := e.surface.Root()
	if t := dom.LastText(root); t != nil {
		return e.cursor.SetCollapsed(t, len(t.Data))
	}
	target := root
	for c := target.LastChild; c != nil && c.Type == html.ElementNode && !isVoid(c); c = target.LastChild {
		target = c
	}
	t := dom.CreateTextNode("")
	target.AppendChild(t)
	return e.cursor.SetCollapsed(t, 0)
}

// KeyPress delivers a key event. The shortcut session sees the event first;
// if it does not consume it, the key's default effect is performed.
// KeyPress returns true if the key press has been consumed by a shortcut.
func (e *Editor) KeyPress(ev *keyboard.Event) (bool, error) {
	if e.session.HandleKey(ev) {
		tracer().Debugf("key %q consumed by shortcut", ev.Name())
		return true, nil
	}
	if ev.DefaultPrevented() {
		return false, nil
	}
	switch ev.Name() {
	case keyboard.Enter:
		return false, e.NewLine()
	case keyboard.Backspace:
		return false, e.Backspace()
	case keyboard.ArrowLeft:
		return false, e.MoveCursor(-1)
	case keyboard.ArrowRight:
		return false, e.MoveCursor(1)
	}
	if ev.Char == 0 || ev.Modifiers.Has(keyboard.Ctrl) || ev.Modifiers.Has(keyboard.Meta) {
		return false, nil
	}
	return false, e.InsertText(string(ev.Char))
}

// Type delivers a key press for every character of s. It returns the
// number of key presses consumed by shortcuts.
func (e *Editor) Type(s string) (int, error) {
	consumed := 0
	for _, r := range s {
		ok, err := e.KeyPress(keyboard.ForRune(r))
		if err != nil {
			return consumed, err
		}
		if ok {
			consumed++
		}
	}
	return consumed, nil
}

// InsertText inserts s at the cursor and places the cursor after it.
// A non-collapsed selection is replaced. Text is normalized to NFC.
func (e *Editor) InsertText(s string) error {
	r, err := e.cursor.Current()
	if err != nil {
		return err
	}
	if !r.Collapsed() {
		if err = r.DeleteContents(); err != nil {
			return err
		}
	}
	s = norm.NFC.String(s)
	n, offset := r.StartContainer(), r.StartOffset()
	if dom.IsText(n) {
		n.Data = n.Data[:offset] + s + n.Data[offset:]
		return e.cursor.SetCollapsed(n, offset+len(s))
	}
	t := dom.CreateTextNode(s)
	if err = r.InsertNode(t); err != nil {
		return err
	}
	return e.cursor.SetCollapsed(t, len(s))
}

// MoveCursor moves the cursor by n grapheme clusters within its text node.
func (e *Editor) MoveCursor(n int) error {
	r, err := e.cursor.Current()
	if err != nil {
		return err
	}
	t := r.StartContainer()
	if !dom.IsText(t) {
		return core.Error(core.ENOTEXT, "cursor is not within text")
	}
	return e.cursor.SetCollapsed(t, selection.StepGraphemes(t.Data, r.StartOffset(), n))
}

// Backspace deletes the grapheme cluster in front of the cursor. At the start
// of a text node it does nothing.
func (e *Editor) Backspace() error {
	r, err := e.cursor.Current()
	if err != nil {
		return err
	}
	if !r.Collapsed() {
		if err = r.DeleteContents(); err != nil {
			return err
		}
		return e.cursor.SetCollapsed(r.StartContainer(), r.StartOffset())
	}
	t, offset := r.StartContainer(), r.StartOffset()
	if !dom.IsText(t) || offset == 0 {
		return nil
	}
	prev := selection.StepGraphemes(t.Data, offset, -1)
	if err = r.SetStart(t, prev); err != nil {
		return err
	}
	if err = r.DeleteContents(); err != nil {
		return err
	}
	return e.cursor.SetCollapsed(t, prev)
}

// NewLine splits the current block at the cursor. Text following the cursor
// moves to a new block after the current one: a list item continues its
// list, paragraphs and divisions are repeated, and other blocks are
// followed by a paragraph.
func (e *Editor) NewLine() error {
	r, err := e.cursor.Current()
	if err != nil {
		return err
	}
	t, offset := r.StartContainer(), r.StartOffset()
	if !dom.IsText(t) {
		return core.Error(core.ENOTEXT, "cursor is not within text")
	}
	var next, host *html.Node
	block := e.surface.BlockContainer(t)
	switch {
	case block == nil:
		run := e.surface.InlineRun(t)
		if len(run) == 0 {
			return core.Error(core.ENOTEXT, "cursor is not within a line of text")
		}
		// the new line follows the inline run, within the run's parent
		next, host = dom.CreateElement("p"), run[0].Parent
		last := run[len(run)-1]
		dom.InsertBefore(host, next, last.NextSibling)
	case dom.IsElement(block, "li", "p", "div"):
		next, host = dom.CreateElement(block.Data), block
		dom.InsertBefore(block.Parent, next, block.NextSibling)
	default:
		next, host = dom.CreateElement("p"), block
		dom.InsertBefore(block.Parent, next, block.NextSibling)
	}
	tail := dom.CreateTextNode(t.Data[offset:])
	t.Data = t.Data[:offset]
	next.AppendChild(tail)
	if t.Parent == host {
		// inline siblings after the cursor's text follow it into the new block
		for mv := t.NextSibling; mv != nil && mv != next && !dom.IsBlockLevel(mv); mv = t.NextSibling {
			dom.AppendChild(next, mv)
		}
	}
	return e.cursor.SetCollapsed(tail, 0)
}

func isVoid(n *html.Node) bool {
	return dom.IsElement(n, "br", "hr", "img", "input", "wbr")
}
