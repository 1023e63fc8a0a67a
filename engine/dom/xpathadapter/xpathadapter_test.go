package xpathadapter

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *html.Node {
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestAncestorAxisIsBounded(t *testing.T) {
	doc := parse(t, `<ul><li><div id="root"><ul><li><b>x</b></li></ul></div></li></ul>`)
	root := cascadia.MustCompile("#root").MatchFirst(doc)
	b := cascadia.MustCompile("b").MatchFirst(doc)
	require.NotNil(t, root)
	require.NotNil(t, b)
	//
	count := 0
	iter := xpath.MustCompile("ancestor::li").Select(NewNavigator(root, b))
	for iter.MoveNext() {
		n, err := CurrentNode(iter.Current())
		require.NoError(t, err)
		assert.Equal(t, "li", n.Data)
		assert.Equal(t, root, n.Parent.Parent, "only the list item inside the root is found")
		count++
	}
	assert.Equal(t, 1, count)
}

func TestNavigatorMoves(t *testing.T) {
	doc := parse(t, `<div id="root" class="edit"><p>a</p><p>b</p></div>`)
	root := cascadia.MustCompile("#root").MatchFirst(doc)
	nav := NewNavigator(root, nil)
	assert.Equal(t, xpath.ElementNode, nav.NodeType())
	assert.False(t, nav.MoveToParent(), "cannot leave the root")
	assert.False(t, nav.MoveToNext())
	assert.True(t, nav.MoveToNextAttribute())
	assert.Equal(t, xpath.AttributeNode, nav.NodeType())
	assert.Equal(t, "id", nav.LocalName())
	assert.Equal(t, "root", nav.Value())
	assert.True(t, nav.MoveToParent())
	assert.True(t, nav.MoveToChild())
	assert.Equal(t, "p", nav.LocalName())
	assert.Equal(t, "a", nav.Value())
	assert.True(t, nav.MoveToNext())
	assert.Equal(t, "b", nav.Value())
	other := nav.Copy()
	assert.True(t, nav.MoveToFirst())
	assert.Equal(t, "a", nav.Value())
	assert.True(t, nav.MoveTo(other))
	assert.Equal(t, "b", nav.Value())
	nav.MoveToRoot()
	assert.Equal(t, "ab", nav.Value())
	_, err := CurrentNode(nil)
	assert.Error(t, err)
}
