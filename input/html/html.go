/*
Package html loads editable surfaces from HTML documents.

The editable root of a document is the first element marked with a
contenteditable attribute (other than "false"). Documents without such an
element are editable as a whole, i.e. the <body> becomes the editable root.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"golang.org/x/net/html"
)

// tracer traces with key 'shortmark.input'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.input")
}

var editableRoot = cascadia.MustCompile(`[contenteditable]:not([contenteditable="false"])`)

var body = cascadia.MustCompile("body")

// Load parses an HTML document and returns its editable surface.
func Load(r io.Reader) (*dom.Surface, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	root := editableRoot.MatchFirst(doc)
	if root == nil {
		tracer().Infof("no contenteditable element found, editing <body>")
		root = body.MatchFirst(doc)
	}
	if root == nil {
		return nil, core.Error(core.EMISSING, "document has neither an editable element nor a body")
	}
	return dom.NewSurface(root)
}

// LoadString parses an HTML document from a string and returns its
// editable surface.
func LoadString(markup string) (*dom.Surface, error) {
	return Load(strings.NewReader(markup))
}

// Fragment creates an editable surface from an HTML fragment, which becomes
// the content of a new editable <div>.
func Fragment(content string) (*dom.Surface, error) {
	return LoadString(`<html><body><div contenteditable="true">` + content + `</div></body></html>`)
}
