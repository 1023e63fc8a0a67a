/*
Package markdown recognizes markdown-like block declarations.

A declaration is the short run of characters a user types at the start of a
line before hitting the space bar, e.g. "##" or "1.". Markdown parsing is
local: deciding what a line should become only depends on the declaration
itself, never on blocks further up or down the document. Therefore no full
markdown parser is needed, just an ordered table of rules.

Rules are kept as data (a Grammar), so the rule set is testable on its own
and may be extended without touching any control flow.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shortmark.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.markdown")
}

// Kind tells whether a command replaces the structural role of the current
// block, or inserts a new structural element.
type Kind int

const (
	KindNone Kind = iota
	KindBlock
	KindInsert
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindInsert:
		return "insert"
	}
	return "none"
}

// Command is the result of matching a declaration. It is one of Block,
// Insert or None; no other implementations exist.
type Command interface {
	Kind() Kind
	String() string
	isCommand()
}

// Block replaces the current block by an element with tag Tag.
type Block struct {
	Tag string
}

// Insert inserts a new element with tag Tag (a list or a rule).
type Insert struct {
	Tag string
}

// None means the declaration has not been recognized.
type None struct{}

func (Block) Kind() Kind  { return KindBlock }
func (Insert) Kind() Kind { return KindInsert }
func (None) Kind() Kind   { return KindNone }

func (b Block) String() string  { return "block(" + b.Tag + ")" }
func (i Insert) String() string { return "insert(" + i.Tag + ")" }
func (None) String() string     { return "none" }

func (Block) isCommand()  {}
func (Insert) isCommand() {}
func (None) isCommand()   {}

// Rule is a named predicate over a (trimmed, non-empty) declaration.
type Rule struct {
	Name  string
	Match func(decl string) (Command, bool)
}

// Grammar is an ordered table of rules. The first matching rule wins.
type Grammar []Rule

// DefaultGrammar returns the standard set of declarations:
//
//    #…######    heading h1…h6
//    ```         code block
//    >           blockquote
//    1.          ordered list
//    - or *      unordered list
//    ---, ***, -*. …   horizontal rule (3 or more of '.', '*', '-')
//
func DefaultGrammar() Grammar {
	return Grammar{
		{Name: "heading", Match: heading},
		{Name: "code", Match: exactly("```", Block{Tag: "pre"})},
		{Name: "quote", Match: exactly(">", Block{Tag: "blockquote"})},
		{Name: "ordered-list", Match: exactly("1.", Insert{Tag: "ol"})},
		{Name: "unordered-list", Match: exactly("-", Insert{Tag: "ul"})},
		{Name: "unordered-list", Match: exactly("*", Insert{Tag: "ul"})},
		{Name: "rule", Match: rule},
	}
}

var defaultGrammar = DefaultGrammar()

// Match maps a declaration to a command, using the default grammar.
func Match(decl string) Command {
	return defaultGrammar.Match(decl)
}

// Match maps a declaration to a command. Surrounding whitespace of decl is
// ignored. Match is total: every declaration yields exactly one command,
// None if no rule matches.
func (g Grammar) Match(decl string) Command {
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return None{}
	}
	for _, r := range g {
		if cmd, ok := r.Match(decl); ok {
			tracer().Debugf("declaration %q matches rule %s: %v", decl, r.Name, cmd)
			return cmd
		}
	}
	return None{}
}

// --- Rules -----------------------------------------------------------------

func exactly(lit string, cmd Command) func(string) (Command, bool) {
	return func(decl string) (Command, bool) {
		if decl == lit {
			return cmd, true
		}
		return nil, false
	}
}

func heading(decl string) (Command, bool) {
	level := len(decl)
	if level > 6 || strings.Trim(decl, "#") != "" {
		return nil, false
	}
	return Block{Tag: "h" + strconv.Itoa(level)}, true
}

func rule(decl string) (Command, bool) {
	if len(decl) < 3 || strings.Trim(decl, ".*-") != "" {
		return nil, false
	}
	return Insert{Tag: "hr"}, true
}
