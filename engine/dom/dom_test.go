package dom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shortmark/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func buildSurface(t *testing.T, content string) *Surface {
	doc, err := html.Parse(strings.NewReader(
		`<html><body><nav><li>chrome</li></nav><div contenteditable="true">` + content + `</div></body></html>`))
	require.NoError(t, err)
	root := cascadia.MustCompile("[contenteditable]").MatchFirst(doc)
	require.NotNil(t, root)
	s, err := NewSurface(root)
	require.NoError(t, err)
	return s
}

func TestSurfaceRejectsText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	_, err := NewSurface(CreateTextNode("x"))
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestBlockContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<p>one <b>two</b></p>three`)
	p := s.Root().FirstChild
	bold := p.LastChild.FirstChild
	assert.Equal(t, p, s.BlockContainer(bold))
	assert.Nil(t, s.BlockContainer(s.Root().LastChild), "text directly in root has no block")
	assert.Nil(t, s.BlockContainer(s.Root()))
}

func TestInlineRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<p>x</p>a<i>b</i>c<hr/>d`)
	b := s.Root().FirstChild.NextSibling.NextSibling.FirstChild
	run := s.InlineRun(b)
	require.Len(t, run, 3)
	assert.Equal(t, "a", run[0].Data)
	assert.Equal(t, "i", run[1].Data)
	assert.Equal(t, "c", run[2].Data)
	assert.Nil(t, s.InlineRun(s.Root().FirstChild.FirstChild), "text in <p> is not in a root run")
}

func TestListItemAncestorIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<ul><li>item <b>bold</b></li></ul><p>plain</p>`)
	li := s.Root().FirstChild.FirstChild
	boldText := li.LastChild.FirstChild
	assert.Equal(t, li, s.ListItemAncestor(boldText))
	plain := s.Root().LastChild.FirstChild
	assert.Nil(t, s.ListItemAncestor(plain))
	//
	// an editable root nested in a list item of the host page
	doc, err := html.Parse(strings.NewReader(`<ul><li><div id="ed"><p>text</p></div></li></ul>`))
	require.NoError(t, err)
	root := cascadia.MustCompile("#ed").MatchFirst(doc)
	nested, err := NewSurface(root)
	require.NoError(t, err)
	assert.Nil(t, nested.ListItemAncestor(root.FirstChild.FirstChild), "query must not leave the surface")
}

func TestRenameAndWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<p class="x">hello</p>a<b>b</b>`)
	h := Rename(s.Root().FirstChild, "h2")
	assert.Equal(t, "h2", h.Data)
	run := s.InlineRun(s.Root().LastChild)
	Wrap(run, CreateElement("pre"))
	assert.Equal(t, `<h2 class="x">hello</h2><pre>a<b>b</b></pre>`, s.String())
}

func TestNodeLengthAndIndex(t *testing.T) {
	s := buildSurface(t, `<p>abc</p><p></p><hr/>`)
	assert.Equal(t, 3, NodeLength(s.Root()))
	assert.Equal(t, 3, NodeLength(s.Root().FirstChild.FirstChild))
	assert.Equal(t, 2, ChildIndex(s.Root().LastChild))
	assert.Equal(t, s.Root().LastChild, ChildAt(s.Root(), 2))
	assert.Nil(t, ChildAt(s.Root(), 3))
	assert.Equal(t, -1, ChildIndex(CreateElement("p")))
}

func TestInnerText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<h1>My First Heading</h1><p>My <b>first</b> paragraph.</p>`)
	text, err := s.InnerText()
	require.NoError(t, err)
	require.False(t, text.IsVoid())
	assert.Equal(t, "My First HeadingMy first paragraph.", text.String())
	var tags []string
	text.EachLeaf(func(leaf cords.Leaf, _ uint64) error {
		l := leaf.(*Leaf)
		t.Logf("leaf = %v", l.DebugString())
		tags = append(tags, l.Element().Data)
		return nil
	})
	assert.Equal(t, []string{"h1", "p", "b", "p"}, tags)
}

func TestQuery(t *testing.T) {
	s := buildSurface(t, `<ul><li>a</li><li>b</li></ul>`)
	items, err := s.Query("li")
	require.NoError(t, err)
	assert.Len(t, items, 2, "list items of the host chrome must not be found")
	_, err = s.Query("li[")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestWriteDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<h2>Title</h2>`)
	var buf bytes.Buffer
	err := WriteDocument(&buf, s, "h2 { color: red; }")
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, "color: red")
	assert.Contains(t, out, `<div contenteditable="true"><h2>Title</h2></div>`)
	//
	buf.Reset()
	require.NoError(t, WriteDocument(&buf, s, ""))
	assert.NotContains(t, buf.String(), "<style>")
}

func TestInlineRunBelowBlockLevelElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s := buildSurface(t, `<table><tbody><tr><td>a<b>b</b></td></tr></tbody></table><ul>c</ul>`)
	td := s.Root().FirstChild.FirstChild.FirstChild.FirstChild
	require.Equal(t, "td", td.Data)
	assert.Nil(t, s.BlockContainer(td.FirstChild))
	run := s.InlineRun(td.LastChild.FirstChild)
	require.Len(t, run, 2)
	assert.Equal(t, "a", run[0].Data)
	assert.Equal(t, td, run[0].Parent)
	assert.Nil(t, s.InlineRun(td), "cell itself is not inline")
	stray := s.Root().LastChild.FirstChild
	require.Equal(t, "c", stray.Data)
	assert.Len(t, s.InlineRun(stray), 1)
	assert.Nil(t, s.InlineRun(CreateTextNode("x")), "detached node")
}
