package selection

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/shortmark/core"
	"golang.org/x/net/html"
)

// Selection is the host's selection of an editable surface. A host may
// support more than one disjoint range; the shortcut engine only ever
// establishes a single one.
//
// Ranges are copied on the way in and on the way out, therefore mutating a
// Range obtained from a selection never changes the selection itself.
type Selection struct {
	ranges *arraylist.List
}

// New creates an empty selection, i.e. there is no cursor.
func New() *Selection {
	return &Selection{ranges: arraylist.New()}
}

// RangeCount returns the number of ranges in the selection.
func (sel *Selection) RangeCount() int {
	return sel.ranges.Size()
}

// GetRangeAt returns a copy of the i-th range of the selection.
func (sel *Selection) GetRangeAt(i int) (*Range, error) {
	r, ok := sel.ranges.Get(i)
	if !ok {
		return nil, core.Error(core.EINVALID, "selection has no range at index %d", i)
	}
	return r.(*Range).Clone(), nil
}

// AddRange adds a copy of r to the selection.
func (sel *Selection) AddRange(r *Range) {
	if r == nil {
		return
	}
	sel.ranges.Add(r.Clone())
}

// RemoveAllRanges clears the selection.
func (sel *Selection) RemoveAllRanges() {
	sel.ranges.Clear()
}

// --- Accessor --------------------------------------------------------------

// Host is the set of primitives a host selection offers.
type Host interface {
	RangeCount() int
	GetRangeAt(int) (*Range, error)
	AddRange(*Range)
	RemoveAllRanges()
}

var _ Host = (*Selection)(nil)

// Accessor is the single source of truth for the cursor position.
type Accessor interface {
	// Current re-reads the live cursor. It never returns a cached range.
	Current() (*Range, error)
	// SetCollapsed replaces the selection by a single cursor at (n, offset).
	SetCollapsed(n *html.Node, offset int) error
}

// HostAccessor reads and writes the cursor through a host selection.
type HostAccessor struct {
	host Host
}

var _ Accessor = (*HostAccessor)(nil)

// NewAccessor creates an accessor for a host selection.
func NewAccessor(host Host) *HostAccessor {
	return &HostAccessor{host: host}
}

// Current returns a fresh copy of the first range of the host selection.
// If there is no range, an error of code core.ENOSELECTION is returned.
func (acc *HostAccessor) Current() (*Range, error) {
	if acc.host.RangeCount() == 0 {
		return nil, core.Error(core.ENOSELECTION, "no active selection")
	}
	return acc.host.GetRangeAt(0)
}

// SetCollapsed clears the host selection, including any additional ranges,
// and establishes a single collapsed range at (n, offset).
func (acc *HostAccessor) SetCollapsed(n *html.Node, offset int) error {
	r, err := NewRange(n, offset)
	if err != nil {
		return err
	}
	acc.host.RemoveAllRanges()
	acc.host.AddRange(r)
	tracer().Debugf("cursor set to %v", r)
	return nil
}

// Select replaces the host selection by a single copy of r. It is used by
// formatting operations which leave a non-collapsed selection behind.
func (acc *HostAccessor) Select(r *Range) {
	acc.host.RemoveAllRanges()
	acc.host.AddRange(r)
}
