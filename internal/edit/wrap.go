package edit

import (
	"slices"
	"strings"

	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
	"wysiwyg/internal/sanitize"
	"wysiwyg/internal/selection"
)

// DefaultLinkText fills a link inserted at a collapsed caret
const DefaultLinkText = "link"

// Options tunes a wrap operation
type Options struct {
	// Text is the content of a link inserted at a collapsed caret
	Text string
}

// Engine applies formatting commands to the selection of one editable root
type Engine struct {
	doc     *dom.Document
	sel     *selection.Adapter
	root    *html.Node
	cleaner *sanitize.Cleaner
}

// New creates an engine bound to the adapter's root and document
func New(sel *selection.Adapter) *Engine {
	return &Engine{
		doc:     sel.Document(),
		sel:     sel,
		root:    sel.Root(),
		cleaner: sanitize.New(nil),
	}
}

// WrapInsideTag toggles tag at the selection and returns the node the
// operation produced: the new element, the text node holding the caret after
// a split, or the container whose content was rewritten. It returns nil when
// nothing is selected.
func (e *Engine) WrapInsideTag(tag string, opts Options) *html.Node {
	tag = strings.ToLower(tag)
	current := e.sel.Current()
	r := current.Range
	if r == nil {
		return nil
	}

	if r.Collapsed() {
		// Step 1: an enclosing element with the same tag is split at the caret
		if ancestor := dom.Closest(current.Sel.AnchorNode(), e.root, tag); ancestor != nil {
			return e.splitNodeAtCaret(r, ancestor)
		}

		// Step 2: otherwise an empty element is opened at the caret
		return e.insertTagAtCaret(r, tag, opts)
	}

	// Step 1: the selection is lifted out of an enclosing same-tag element
	if ancestor := dom.Closest(r.CommonAncestorContainer(), e.root, tag); ancestor != nil {
		return e.extractSelectionFromNode(r, ancestor)
	}

	// Step 2: same-tag elements touched by the selection are unwrapped
	if e.unwrapIntersecting(current.Sel, tag) {
		return e.root
	}

	// Step 3: the selection is wrapped in a new element
	return e.wrapSelection(r, tag)
}

// WrapInsideLink toggles a link at the selection and sets its target when a
// link element was produced
func (e *Engine) WrapInsideLink(text, href string, targetBlank bool) *html.Node {
	node := e.WrapInsideTag("a", Options{Text: text})
	if !dom.HasTagName(node, "a") {
		return node
	}

	dom.SetAttr(node, "href", href)
	if targetBlank {
		dom.SetAttr(node, "target", "_blank")
	}
	return node
}

// splitNodeAtCaret moves everything before the caret out of node and leaves
// the caret in a fresh zero-width text node between the two halves
func (e *Engine) splitNodeAtCaret(r *dom.Range, node *html.Node) *html.Node {
	parent := node.Parent

	before := r.Clone()
	before.SetStart(parent, 0)
	frag := before.ExtractContents()

	text := dom.CreateText(dom.ZeroWidthSpace)
	frag.AppendChild(text)
	e.doc.Prepend(parent, frag)

	e.sel.MoveCursorInsideNode(text)
	return text
}

// extractSelectionFromNode cuts the content around the selection into copies
// of node, then unwraps the element still holding the selection
func (e *Engine) extractSelectionFromNode(r *dom.Range, node *html.Node) *html.Node {
	parent := node.Parent

	before := e.doc.NewRange()
	before.SelectNodeContents(parent)
	before.SetEnd(r.StartContainer(), r.StartOffset())
	after := e.doc.NewRange()
	after.SelectNodeContents(parent)
	after.SetStart(r.EndContainer(), r.EndOffset())

	fragBefore := before.ExtractContents()
	fragAfter := after.ExtractContents()
	e.doc.Prepend(parent, fragBefore)
	e.doc.Append(parent, fragAfter)

	current := r.CommonAncestorContainer()
	for current != nil && !dom.HasTagName(current, node.Data) {
		current = current.Parent
	}
	if current != nil {
		e.sel.SelectNodes(e.doc.Unwrap(current))
	}

	return r.CommonAncestorContainer()
}

// insertTagAtCaret opens an element holding a caret placeholder
func (e *Engine) insertTagAtCaret(r *dom.Range, tag string, opts Options) *html.Node {
	node := dom.CreateElement(tag)
	if tag == "a" {
		text := opts.Text
		if text == "" {
			text = DefaultLinkText
		}
		node.AppendChild(dom.CreateText(text))
	} else {
		node.AppendChild(dom.CreateText(dom.ZeroWidthSpace))
	}

	r.InsertNode(node)

	if tag == "a" {
		e.doc.InsertBefore(node.Parent, dom.CreateText(" "), node.NextSibling)
	}

	e.sel.MoveCursorInsideNode(node)
	return node
}

// unwrapIntersecting unwraps every tag element under the root touched by the
// selection and reports whether any was found
func (e *Engine) unwrapIntersecting(sel *dom.Selection, tag string) bool {
	var inner []*html.Node
	found := false
	for _, el := range dom.FindAll(e.root, tag) {
		if el.Parent == nil || !sel.ContainsNode(el, true) {
			continue
		}
		found = true
		inner = append(inner, e.doc.Unwrap(el)...)
	}
	if !found {
		return false
	}

	// Unwrapping nested tag elements detaches the inner ones listed earlier
	attached := inner[:0]
	for _, n := range inner {
		if n.Parent != nil {
			attached = append(attached, n)
		}
	}
	if len(attached) == 0 {
		e.doc.Normalize(e.root)
		return true
	}
	slices.SortStableFunc(attached, func(a, b *html.Node) int {
		switch {
		case dom.Precedes(a, b):
			return -1
		case dom.Precedes(b, a):
			return 1
		}
		return 0
	})

	e.sel.SelectNodes(attached)
	e.doc.Normalize(e.root)
	return true
}

// wrapSelection moves the selected content into a new element
func (e *Engine) wrapSelection(r *dom.Range, tag string) *html.Node {
	node := dom.CreateElement(tag)
	frag := r.ExtractContents()
	for _, c := range dom.Children(frag) {
		frag.RemoveChild(c)
		node.AppendChild(c)
	}
	r.InsertNode(node)

	// Extraction leaves emptied shells of partially selected elements behind
	e.doc.RemoveNodes(node.Parent, func(n *html.Node) bool {
		return n != node && dom.IsEmptyElement(n)
	})

	e.sel.SelectNodeContents(node)
	return node
}

// ReplaceSelectionByHTML replaces the selected content by the parsed markup
// and puts the caret after it
func (e *Engine) ReplaceSelectionByHTML(markup string) error {
	current := e.sel.Current()
	if current.Range == nil {
		return nil
	}

	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return err
	}

	current.Sel.DeleteFromDocument()
	if len(nodes) == 0 {
		return nil
	}
	last := nodes[len(nodes)-1]
	current.Range.InsertNode(dom.FragmentOf(nodes))

	e.sel.MoveCursorAfterNode(last)
	return nil
}

// ClearSelectionStyle flattens the selected children of the common ancestor
// to plain text
func (e *Engine) ClearSelectionStyle() {
	current := e.sel.Current()
	if current.Range == nil {
		return
	}
	common := current.Range.CommonAncestorContainer()
	if dom.IsText(common) {
		return
	}

	for _, el := range dom.ElementChildren(common) {
		if current.Sel.ContainsNode(el, true) {
			e.doc.Textify(el)
		}
	}
}
