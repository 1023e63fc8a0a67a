package main

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/derekparker/trie"
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/dom/domdebug"
	"github.com/npillmayer/shortmark/engine/edit"
	"github.com/npillmayer/shortmark/input/keyboard"
	"github.com/npillmayer/uax/grapheme"
	"github.com/pterm/pterm"
	"golang.org/x/net/html"
)

// Intp is our interpreter object
type Intp struct {
	editor     *edit.Editor
	repl       *readline.Instance
	commands   *trie.Trie
	stylesheet string
}

// Op codes of commands
const (
	QUIT int = iota
	HELP
	TYPE
	KEY
	LEFT
	RIGHT
	SHOW
	TEXT
	EXEC
	EXPORT
	DOT
)

var commandCodes = map[string]int{
	"quit":   QUIT,
	"help":   HELP,
	"type":   TYPE,
	"key":    KEY,
	"left":   LEFT,
	"right":  RIGHT,
	"show":   SHOW,
	"text":   TEXT,
	"exec":   EXEC,
	"export": EXPORT,
	"dot":    DOT,
}

// Command is a parsed input line.
type Command struct {
	code int
	args []string
	rest string // unparsed remainder of the line, for 'type'
}

// NewIntp creates an interpreter editing surface.
func NewIntp(surface *dom.Surface) *Intp {
	intp := &Intp{
		editor:   edit.NewEditor(surface),
		commands: trie.New(),
	}
	for name, code := range commandCodes {
		intp.commands.Add(name, code)
	}
	grapheme.SetupGraphemeClasses()
	return intp
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	line = strings.TrimLeft(line, " \t")
	word, rest := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		word, rest = line[:i], line[i+1:]
	}
	node, ok := intp.commands.Find(strings.ToLower(word))
	if !ok {
		candidates := intp.commands.PrefixSearch(strings.ToLower(word))
		if len(candidates) != 1 {
			return nil, core.Error(core.EINVALID, "unknown command %q, try 'help'", word)
		}
		node, _ = intp.commands.Find(candidates[0])
	}
	cmd := &Command{
		code: node.Meta().(int),
		args: strings.Fields(rest),
		rest: rest,
	}
	tracer().Debugf("parse command = %v", cmd)
	return cmd, nil
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(intp.editor.Format().Operations())
	case TYPE:
		n, err := intp.editor.Type(cmd.rest)
		if err != nil {
			return false, err
		}
		if n > 0 {
			pterm.Info.Printfln("%d shortcut(s) applied", n)
		}
		intp.show()
	case KEY:
		if len(cmd.args) == 0 {
			return false, core.Error(core.EMISSING, "key needs a key name")
		}
		for _, name := range cmd.args {
			if _, err := intp.editor.KeyPress(keyboard.ForName(name)); err != nil {
				return false, err
			}
		}
		intp.show()
	case LEFT, RIGHT:
		n, err := count(cmd.args)
		if err != nil {
			return false, err
		}
		if cmd.code == LEFT {
			n = -n
		}
		if err = intp.editor.MoveCursor(n); err != nil {
			return false, err
		}
		intp.showCursor()
	case SHOW:
		intp.show()
		intp.showCursor()
	case TEXT:
		text, err := intp.editor.Surface().InnerText()
		if err != nil {
			return false, err
		}
		pterm.Printfln("%q", text.String())
	case EXEC:
		if len(cmd.args) == 0 {
			return false, core.Error(core.EMISSING, "exec needs an operation name")
		}
		value := strings.Join(cmd.args[1:], " ")
		ok, err := intp.editor.Format().Apply(cmd.args[0], value)
		if err != nil {
			return false, err
		}
		if !ok {
			pterm.Info.Printfln("%s has not been applied", cmd.args[0])
		}
		intp.show()
	case EXPORT:
		return false, intp.export(cmd.args)
	case DOT:
		return false, intp.dot(cmd.args)
	}
	return false, nil
}

func (intp *Intp) show() {
	pterm.Println(intp.editor.Surface().String())
}

func (intp *Intp) showCursor() {
	r, err := intp.editor.Cursor().Current()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Printfln("cursor at %v", r)
	if t := r.StartContainer(); dom.IsText(t) && !strings.ContainsAny(t.Data, "\n\t") {
		pterm.Println(t.Data)
		pterm.Println(caretLine(t.Data, r.StartOffset()))
	}
}

func (intp *Intp) export(args []string) error {
	var b bytes.Buffer
	if err := dom.WriteDocument(&b, intp.editor.Surface(), intp.stylesheet); err != nil {
		return err
	}
	if len(args) == 0 {
		pterm.Println(b.String())
		return nil
	}
	if err := os.WriteFile(args[0], b.Bytes(), 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write %s", args[0])
	}
	pterm.Info.Printfln("document written to %s", args[0])
	return nil
}

func (intp *Intp) dot(args []string) error {
	var mark *html.Node
	if r, err := intp.editor.Cursor().Current(); err == nil {
		mark = r.StartContainer()
	}
	var b bytes.Buffer
	if err := domdebug.ToGraphViz(intp.editor.Surface(), &b, mark); err != nil {
		return err
	}
	if len(args) == 0 {
		pterm.Println(b.String())
		return nil
	}
	if err := os.WriteFile(args[0], b.Bytes(), 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write %s", args[0])
	}
	pterm.Info.Printfln("graph written to %s", args[0])
	return nil
}

func count(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "not a count: %q", args[0])
	}
	return n, nil
}

// Do completes command names and, for 'exec', operation names.
// Intp is a readline.AutoCompleter.
func (intp *Intp) Do(line []rune, pos int) ([][]rune, int) {
	input := string(line[:pos])
	fields := strings.Fields(input)
	typing := len(fields) == 0 || !strings.HasSuffix(input, " ")
	var candidates []string
	var prefix string
	switch {
	case len(fields) <= 1 && typing:
		if len(fields) == 1 {
			prefix = fields[0]
		}
		candidates = intp.commands.PrefixSearch(prefix)
	case fields[0] == "exec" && (len(fields) == 1 || len(fields) == 2 && typing):
		if len(fields) == 2 {
			prefix = fields[1]
		}
		candidates = intp.editor.Format().Complete(prefix)
	}
	var completions [][]rune
	for _, c := range candidates {
		completions = append(completions, []rune(c[len(prefix):]+" "))
	}
	return completions, len([]rune(prefix))
}

var _ readline.AutoCompleter = (*Intp)(nil)

func help(operations []string) {
	pterm.Info.Println("Commands")
	pterm.Println(`
	type <text>        type text, key by key; space triggers shortcuts
	key <name> …       press named keys (Enter, Backspace, ArrowLeft, Space, …)
	left|right [n]     move the cursor by n characters
	show               print the editable content and the cursor
	text               print the plain text of the editable content
	exec <op> [value]  apply a formatting operation
	export [file]      write a standalone HTML document
	dot [file]         write the editable content as a Graphviz graph
	quit               leave
	`)
	pterm.Info.Println("Shortcuts")
	pterm.Println(`
	# … ######   heading        >     blockquote
	-  *         bullet list    1.    numbered list
	` + "```" + `          code block     ---   horizontal rule
	`)
	pterm.Info.Printfln("Operations: %s", strings.Join(operations, ", "))
}
