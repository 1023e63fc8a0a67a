package format

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/engine/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type fixture struct {
	surface *dom.Surface
	sel     *selection.Selection
	cap     *DOMCapability
}

func setup(t *testing.T, content string) *fixture {
	doc, err := html.Parse(strings.NewReader(`<div contenteditable="true">` + content + `</div>`))
	require.NoError(t, err)
	root := cascadia.MustCompile("[contenteditable]").MatchFirst(doc)
	s, err := dom.NewSurface(root)
	require.NoError(t, err)
	sel := selection.New()
	return &fixture{surface: s, sel: sel, cap: New(s, sel)}
}

// cursorAt places a collapsed cursor into the text node which is the
// first text node of the element matching selector.
func (f *fixture) cursorAt(t *testing.T, selector string, offset int) {
	nodes, err := f.surface.Query(selector)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	text := dom.FirstText(nodes[0])
	require.NotNil(t, text)
	require.NoError(t, selection.NewAccessor(f.sel).SetCollapsed(text, offset))
}

func (f *fixture) cursor(t *testing.T) *selection.Range {
	r, err := selection.NewAccessor(f.sel).Current()
	require.NoError(t, err)
	return r
}

func TestOperationRegistry(t *testing.T) {
	f := setup(t, `<p>x</p>`)
	assert.Equal(t, []string{"insertHorizontalRule", "insertImage", "insertOrderedList",
		"insertUnorderedList"}, f.cap.Complete("insert"))
	assert.Len(t, f.cap.Operations(), 8)
	_, err := f.cap.Apply("justifyFull", "")
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
}

func TestNoSelectionDisablesEverything(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.format")
	defer teardown()
	//
	f := setup(t, `<p>x</p>`)
	for _, op := range f.cap.Operations() {
		assert.False(t, f.cap.Enabled(op), op)
	}
	ok, err := f.cap.Apply(FormatBlock, "<h1>")
	assert.False(t, ok)
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
	assert.Equal(t, "<p>x</p>", f.surface.String())
}

func TestFormatBlockRenamesBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.format")
	defer teardown()
	//
	f := setup(t, `<p>## Title</p>`)
	f.cursorAt(t, "p", 3)
	ok, err := f.cap.Apply(FormatBlock, "<h2>")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<h2>## Title</h2>", f.surface.String())
	r := f.cursor(t)
	assert.True(t, r.Collapsed())
	assert.Equal(t, "## Title", r.StartContainer().Data)
	assert.Equal(t, 3, r.StartOffset())
}

func TestFormatBlockWrapsInlineRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.format")
	defer teardown()
	//
	f := setup(t, `<p>before</p>&gt; quote <b>me</b>`)
	text := f.surface.Root().FirstChild.NextSibling
	require.NoError(t, selection.NewAccessor(f.sel).SetCollapsed(text, 1))
	ok, err := f.cap.Apply(FormatBlock, "blockquote")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>before</p><blockquote>&gt; quote <b>me</b></blockquote>", f.surface.String())
}

func TestFormatBlockRejectsUnknownTag(t *testing.T) {
	f := setup(t, `<p>x</p>`)
	f.cursorAt(t, "p", 0)
	ok, err := f.cap.Apply(FormatBlock, "<table>")
	assert.False(t, ok)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestInsertUnorderedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.format")
	defer teardown()
	//
	f := setup(t, `<p>- item</p>`)
	f.cursorAt(t, "p", 1)
	ok, err := f.cap.Apply(InsertUnorderedList, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<ul><li>- item</li></ul>", f.surface.String())
	assert.Equal(t, 1, f.cursor(t).StartOffset())
	//
	assert.False(t, f.cap.Enabled(InsertUnorderedList), "already in an unordered list")
	assert.True(t, f.cap.Enabled(InsertOrderedList))
	ok, err = f.cap.Apply(InsertOrderedList, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<ol><li>- item</li></ol>", f.surface.String())
}

func TestInsertHorizontalRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.format")
	defer teardown()
	//
	f := setup(t, `<p>first</p><p>---</p>`)
	f.cursorAt(t, "p:nth-child(2)", 3)
	ok, err := f.cap.Apply(InsertHorizontalRule, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>first</p><hr/><p>---</p>", f.surface.String())
	r := f.cursor(t)
	assert.Equal(t, "---", r.StartContainer().Data)
	assert.Equal(t, 3, r.StartOffset())
}

func TestInlineOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.format")
	defer teardown()
	//
	f := setup(t, `<p>hello world</p>`)
	f.cursorAt(t, "p", 0)
	assert.False(t, f.cap.Enabled(Bold), "bold needs a non-collapsed selection")
	//
	text := f.surface.Root().FirstChild.FirstChild
	r, _ := selection.NewRange(text, 0)
	require.NoError(t, r.SetEnd(text, 5))
	f.sel.RemoveAllRanges()
	f.sel.AddRange(r)
	ok, err := f.cap.Apply(Bold, "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p><b>hello</b> world</p>", f.surface.String())
	assert.False(t, f.cursor(t).Collapsed(), "bold text stays selected")
	//
	ok, err = f.cap.Apply(CreateLink, "https://example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `<p><b><a href="https://example.com">hello</a></b> world</p>`, f.surface.String())
	//
	_, err = f.cap.Apply(CreateLink, "")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestInsertImage(t *testing.T) {
	f := setup(t, `<p>ab</p>`)
	f.cursorAt(t, "p", 1)
	ok, err := f.cap.Apply(InsertImage, "cat.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `<p>a<img src="cat.png"/>b</p>`, f.surface.String())
	r := f.cursor(t)
	assert.Equal(t, "p", r.StartContainer().Data)
	assert.Equal(t, 2, r.StartOffset())
}

func TestBlockTag(t *testing.T) {
	assert.Equal(t, "h2", BlockTag("<H2>"))
	assert.Equal(t, "pre", BlockTag("pre"))
	assert.Equal(t, "blockquote", BlockTag(" <blockquote> "))
}
