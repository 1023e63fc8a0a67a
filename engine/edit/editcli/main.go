/*
Command editcli is an interactive playground for markdown shortcuts.

It loads an HTML document (or starts with an empty paragraph), places the
cursor at the end of the editable content and lets the user type into it.
Typing "## " at the start of a line will turn the line into a heading, "- "
will start a list, and so on.

Usage:

   editcli [-trace Info] [-html doc.html] [-css style.css]

Quit with <ctrl>D or "quit".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/input/html"
	"github.com/pterm/pterm"
)

// tracer traces with key 'shortmark.cli'
func tracer() tracing.Trace {
	return tracing.Select("shortmark.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.shortmark.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	docname := flag.String("html", "", "HTML document to edit")
	cssname := flag.String("css", "", "Stylesheet for export")
	flag.Parse()
	pterm.Info.Println("Welcome to the markdown shortcut CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// load document to edit
	surface, err := loadSurface(*docname)
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(2)
	}
	intp := NewIntp(surface)
	if *cssname != "" {
		css, err := os.ReadFile(*cssname)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		intp.stylesheet = string(css)
	}
	if err = intp.editor.Focus(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "md > ",
		AutoComplete: intp,
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	setTraceLevels(*tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevels(level string) {
	l := tracing.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "error":
		l = tracing.LevelError
	}
	for _, key := range []string{"shortmark.cli", "shortmark.edit", "shortmark.format",
		"shortmark.selection", "shortmark.dom", "shortmark.input"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func loadSurface(docname string) (*dom.Surface, error) {
	if docname == "" {
		return html.Fragment("<p></p>")
	}
	f, err := os.Open(docname)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open document %s", docname)
	}
	defer f.Close()
	return html.Load(f)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}
