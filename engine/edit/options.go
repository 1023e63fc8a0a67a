package edit

import (
	"github.com/npillmayer/shortmark/input/keyboard"
	"github.com/npillmayer/shortmark/input/markdown"
)

type options struct {
	trigger    string
	allowShift bool
	grammar    markdown.Grammar
}

func defaultOptions() options {
	return options{
		trigger:    keyboard.Space,
		allowShift: true,
		grammar:    markdown.DefaultGrammar(),
	}
}

// Option configures a Session.
type Option func(*options)

// WithTrigger sets the semantic name of the trigger key. Default is "Space".
func WithTrigger(name string) Option {
	return func(o *options) {
		o.trigger = name
	}
}

// WithShift decides whether a trigger key pressed together with Shift still
// counts as a trigger. Default is true. Ctrl, Alt and Meta always change the
// semantics of a key press and disqualify it as a trigger.
func WithShift(allowed bool) Option {
	return func(o *options) {
		o.allowShift = allowed
	}
}

// WithGrammar replaces the default grammar of declarations.
func WithGrammar(g markdown.Grammar) Option {
	return func(o *options) {
		if g != nil {
			o.grammar = g
		}
	}
}
