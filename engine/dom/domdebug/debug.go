/*
Package domdebug draws editable surfaces with Graphviz.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdebug

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shortmark/engine/dom"
	"golang.org/x/net/html"
)

// tracer traces with key 'shortmark.dom'.
func tracer() tracing.Trace {
	return tracing.Select("shortmark.dom")
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
	cnt      int
}

// ToGraphViz creates a graphical representation of an editable surface.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
// Node mark, usually the cursor's container, is highlighted.
func ToGraphViz(s *dom.Surface, w io.Writer, mark *html.Node) error {
	header, err := template.New("surface").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl, err = template.New("node").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"istext":      dom.IsText,
		}).Parse(nodeTmpl)
	if err != nil {
		return err
	}
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*html.Node]string, 256)
	if err = nodes(s.Root(), w, dict, mark, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func nodes(n *html.Node, w io.Writer, dict map[*html.Node]string, mark *html.Node,
	gparams *graphParamsType) error {
	//
	gparams.cnt++
	if gparams.cnt == 1000 {
		tracer().Errorf("surface too large to draw, stopping")
		return nil
	}
	if err := node(n, w, dict, mark, gparams); err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode && c.Type != html.TextNode {
			continue
		}
		if err := nodes(c, w, dict, mark, gparams); err != nil {
			return err
		}
		e := gedge{dict[n], dict[c]}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func node(n *html.Node, w io.Writer, dict map[*html.Node]string, mark *html.Node,
	gparams *graphParamsType) error {
	//
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	fill := "lightblue3"
	if dom.IsText(n) {
		fill = "grey95"
	}
	if n == mark {
		fill = "gold"
	}
	return gparams.NodeTmpl.Execute(w, &gnode{N: n, Name: name, Fill: fill})
}

// Helper structs
type gnode struct {
	N    *html.Node
	Name string
	Fill string
}

type gedge struct {
	From, To string
}

func shortText(n *html.Node) string {
	txt := []rune(n.Data)
	s := "\"T \\\""
	if len(txt) > 10 {
		s += string(txt[:10]) + "…\\\"\""
	} else {
		s += string(txt) + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const nodeTmpl = `{{ if istext .N }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor={{ .Fill }} fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label="<{{ .N.Data }}>" shape=box style=filled fillcolor={{ .Fill }} ] ;
{{ end }}
`

const edgeTmpl = `{{ .From }} -> {{ .To }} [weight=1] ;
`
