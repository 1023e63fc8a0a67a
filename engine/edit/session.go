package edit

import (
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/format"
	"github.com/npillmayer/shortmark/engine/selection"
	"github.com/npillmayer/shortmark/input/keyboard"
	"github.com/npillmayer/shortmark/input/markdown"
)

// Session watches key presses on an editable surface and applies shortcut
// declarations. A session holds no cursor state of its own; positions are
// read from the selection accessor when needed.
type Session struct {
	surface *dom.Surface
	cursor  selection.Accessor
	format  format.Capability
	opts    options
}

// NewSession creates a session for an editable surface. cursor is the
// source of truth for the cursor position, and formatting operations are
// delegated to capability.
func NewSession(surface *dom.Surface, cursor selection.Accessor, capability format.Capability,
	opts ...Option) *Session {
	//
	s := &Session{
		surface: surface,
		cursor:  cursor,
		format:  capability,
		opts:    defaultOptions(),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Grammar returns the grammar the session matches declarations against.
func (s *Session) Grammar() markdown.Grammar {
	return s.opts.grammar
}

// IsTrigger is true if ev may start a shortcut edit.
func (s *Session) IsTrigger(ev *keyboard.Event) bool {
	if ev == nil || ev.Name() != s.opts.trigger {
		return false
	}
	if ev.Modifiers.Has(keyboard.Ctrl) || ev.Modifiers.Has(keyboard.Alt) || ev.Modifiers.Has(keyboard.Meta) {
		return false
	}
	return s.opts.allowShift || !ev.Modifiers.Has(keyboard.Shift)
}

// HandleKey is the key-down entry point. Key presses other than the trigger
// are ignored. For a trigger key an edit is attempted, and if it succeeds,
// the key's default effect is suppressed. HandleKey returns true if the key
// press has been consumed.
func (s *Session) HandleKey(ev *keyboard.Event) bool {
	if !s.IsTrigger(ev) {
		return false
	}
	if !s.AttemptEdit(ev) {
		return false
	}
	ev.PreventDefault()
	return true
}

// AttemptEdit tries to apply the declaration preceding the cursor. It
// returns true if a transformation has been applied, in which case the
// declaration text has been erased as well. If no transformation applies,
// the document is left untouched and false is returned. AttemptEdit never
// fails loudly; the reason for a refusal is traced.
func (s *Session) AttemptEdit(ev *keyboard.Event) bool {
	length, kind, err := s.apply()
	if err != nil {
		if core.Is(err, core.ENOMATCH) || core.Is(err, core.ENOSELECTION) || core.Is(err, core.ENOTEXT) {
			tracer().Debugf("no shortcut edit: %v", err)
		} else {
			tracer().Infof("shortcut edit refused: %v", err)
		}
		return false
	}
	if err = EraseDeclaration(s.surface, s.cursor, length, kind); err != nil {
		// the document has already been restructured, so the key is still consumed
		tracer().Errorf("cannot erase declaration: %v", err)
	}
	return true
}

// apply runs the pipeline up to the point of erasing the declaration and
// returns the declaration's length and the kind of command applied.
func (s *Session) apply() (int, markdown.Kind, error) {
	r, err := s.cursor.Current()
	if err != nil {
		return 0, markdown.KindNone, err
	}
	if !r.Collapsed() {
		return 0, markdown.KindNone, core.Error(core.ENOSELECTION, "selection is not a cursor")
	}
	if !s.surface.Contains(r.StartContainer()) {
		return 0, markdown.KindNone, core.Error(core.ENOSELECTION, "cursor is outside of editable surface")
	}
	decl, err := ExtractDeclaration(r)
	if err != nil {
		return 0, markdown.KindNone, err
	}
	cmd := s.opts.grammar.Match(decl)
	tracer().Debugf("declaration %q → %v", decl, cmd)
	switch c := cmd.(type) {
	case markdown.None:
		return 0, markdown.KindNone, core.Error(core.ENOMATCH, "%q is not a declaration", decl)
	case markdown.Block:
		err = s.exec(format.FormatBlock, "<"+c.Tag+">")
	case markdown.Insert:
		if (c.Tag == "ol" || c.Tag == "ul") && s.surface.ListItemAncestor(r.StartContainer()) != nil {
			err = NestList(s.cursor, r, c.Tag)
			break
		}
		op, ok := insertOperations[c.Tag]
		if !ok {
			return 0, markdown.KindNone, core.Error(core.EUNSUPPORTED, "no operation inserts <%s>", c.Tag)
		}
		err = s.exec(op, "")
	default:
		return 0, markdown.KindNone, core.Error(core.EINTERNAL, "unknown command type %T", cmd)
	}
	if err != nil {
		return 0, markdown.KindNone, err
	}
	return len(decl), cmd.Kind(), nil
}

var insertOperations = map[string]string{
	"hr": format.InsertHorizontalRule,
	"ol": format.InsertOrderedList,
	"ul": format.InsertUnorderedList,
}

func (s *Session) exec(op, value string) error {
	ok, err := s.format.Apply(op, value)
	if err != nil {
		return err
	}
	if !ok {
		return core.Error(core.EUNSUPPORTED, "%s(%q) has not been applied", op, value)
	}
	return nil
}
