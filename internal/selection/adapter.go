package selection

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
)

// Current is a snapshot of the selection: the selection object and its range
// at the time of the call. Range is nil when nothing is selected.
type Current struct {
	Sel   *dom.Selection
	Range *dom.Range
}

// Adapter exposes caret and selection primitives for one editable root
type Adapter struct {
	doc  *dom.Document
	root *html.Node
	sel  *dom.Selection
}

// New creates an adapter with an empty selection
func New(doc *dom.Document, root *html.Node) *Adapter {
	return &Adapter{
		doc:  doc,
		root: root,
		sel:  dom.NewSelection(),
	}
}

// Root returns the editable root
func (a *Adapter) Root() *html.Node {
	return a.root
}

// Document returns the range registry the adapter creates ranges in
func (a *Adapter) Document() *dom.Document {
	return a.doc
}

// Current returns the selection and its first range
func (a *Adapter) Current() Current {
	return Current{Sel: a.sel, Range: a.sel.RangeAt(0)}
}

// Restore makes the saved range the selection again
func (a *Adapter) Restore(saved Current) {
	a.sel.RemoveAllRanges()
	if saved.Range != nil {
		a.sel.AddRange(saved.Range)
	}
}

// Clear empties the selection
func (a *Adapter) Clear() {
	a.sel.RemoveAllRanges()
}

func (a *Adapter) replace(r *dom.Range) {
	a.sel.RemoveAllRanges()
	a.sel.AddRange(r)
}

// MoveCursorInsideNode places a collapsed caret at offset 1 of target
func (a *Adapter) MoveCursorInsideNode(target *html.Node) {
	r := a.doc.NewRange()
	r.SetStart(target, 1)
	r.Collapse(true)
	a.replace(r)
}

// MoveCursorAfterNode places a collapsed caret right after target
func (a *Adapter) MoveCursorAfterNode(target *html.Node) {
	r := a.doc.NewRange()
	r.SetStartAfter(target)
	r.Collapse(true)
	a.replace(r)
}

// SelectNodeContents places the caret at the end of target's contents
func (a *Adapter) SelectNodeContents(target *html.Node) {
	r := a.doc.NewRange()
	r.SelectNodeContents(target)
	r.Collapse(false)
	a.replace(r)
}

// SelectNodes selects from before the first node to after the last one. A
// lone void element gets a caret after it instead.
func (a *Adapter) SelectNodes(nodes []*html.Node) {
	if len(nodes) == 0 {
		return
	}
	if len(nodes) == 1 && dom.IsElement(nodes[0]) && dom.IsSelfClosing(nodes[0].Data) {
		a.MoveCursorAfterNode(nodes[0])
		return
	}
	r := a.doc.NewRange()
	r.SetStartBefore(nodes[0])
	r.SetEndAfter(nodes[len(nodes)-1])
	a.replace(r)
}

// IsSelectionInsideNode reports whether both ends of the selection lie in node
func (a *Adapter) IsSelectionInsideNode(node *html.Node) bool {
	r := a.sel.RangeAt(0)
	if r == nil {
		return false
	}
	return dom.Contains(node, r.StartContainer()) && dom.Contains(node, r.EndContainer())
}

// Select sets the selection to the given boundaries
func (a *Adapter) Select(startNode *html.Node, startOffset int, endNode *html.Node, endOffset int) {
	r := a.doc.NewRange()
	r.SetStart(startNode, startOffset)
	r.SetEnd(endNode, endOffset)
	a.replace(r)
}

// SelectText selects the code points [start, end) of the root's text content.
// Offsets past the end clamp to the end of the last text node; a root without
// text gets a caret at its end.
func (a *Adapter) SelectText(start, end int) {
	if end < start {
		start, end = end, start
	}
	startPoint, ok := a.textPoint(start, false)
	if !ok {
		a.SelectNodeContents(a.root)
		return
	}
	endPoint, _ := a.textPoint(end, true)
	a.Select(startPoint.Node, startPoint.Offset, endPoint.Node, endPoint.Offset)
}

// textPoint maps a text offset to a boundary inside a text node. When the
// offset falls between two text nodes, preferEnd picks the earlier one.
func (a *Adapter) textPoint(offset int, preferEnd bool) (dom.Boundary, bool) {
	var last *html.Node
	var found dom.Boundary
	ok := false
	seen := 0

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if dom.IsText(c) {
				length := utf8.RuneCountInString(c.Data)
				last = c
				if offset < seen+length || (preferEnd && offset == seen+length) {
					found = dom.Boundary{Node: c, Offset: offset - seen}
					ok = true
					return true
				}
				seen += length
				continue
			}
			if dom.IsElement(c) && walk(c) {
				return true
			}
		}
		return false
	}
	walk(a.root)

	if ok {
		return found, true
	}
	if last == nil {
		return dom.Boundary{}, false
	}
	return dom.Boundary{Node: last, Offset: utf8.RuneCountInString(last.Data)}, true
}
