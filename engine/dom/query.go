package dom

import (
	"sync"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/shortmark/core"
	"github.com/npillmayer/shortmark/engine/dom/xpathadapter"
	"golang.org/x/net/html"
)

var ancestorQueries = struct {
	sync.Mutex
	exprs map[string]*xpath.Expr
}{exprs: make(map[string]*xpath.Expr)}

// queryAncestor finds the nearest ancestor of n with a given tag name.
// The navigator is bounded by root, therefore the ancestor axis will never
// leave the editable surface.
func queryAncestor(root, n *html.Node, tag string) (*html.Node, error) {
	expr, err := ancestorExpr(tag)
	if err != nil {
		return nil, err
	}
	nav := xpathadapter.NewNavigator(root, n)
	iter := expr.Select(nav)
	if !iter.MoveNext() {
		return nil, nil
	}
	found, err := xpathadapter.CurrentNode(iter.Current())
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "xpath navigation")
	}
	tracer().Debugf("ancestor query for <%s> found %v", tag, found.Data)
	return found, nil
}

func ancestorExpr(tag string) (*xpath.Expr, error) {
	ancestorQueries.Lock()
	defer ancestorQueries.Unlock()
	if expr, ok := ancestorQueries.exprs[tag]; ok {
		return expr, nil
	}
	expr, err := xpath.Compile("ancestor::" + tag)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot compile ancestor query for %q", tag)
	}
	ancestorQueries.exprs[tag] = expr
	return expr, nil
}
