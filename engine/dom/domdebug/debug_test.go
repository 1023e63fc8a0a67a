package domdebug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shortmark/engine/dom"
	"github.com/npillmayer/shortmark/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shortmark.dom")
	defer teardown()
	//
	s, err := html.Fragment(`<h2>Title</h2><ul><li>one two</li></ul>`)
	require.NoError(t, err)
	mark := dom.LastText(s.Root())
	var b bytes.Buffer
	require.NoError(t, ToGraphViz(s, &b, mark))
	dot := b.String()
	t.Logf("\n%s", dot)
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `label="<h2>"`)
	assert.Contains(t, dot, "one␣two")
	assert.Equal(t, 1, strings.Count(dot, "fillcolor=gold"), "cursor node is highlighted")
	assert.Equal(t, 5, strings.Count(dot, "->"), "root, h2, text, ul, li, text are connected")
}
