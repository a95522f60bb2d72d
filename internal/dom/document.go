package dom

import (
	"strings"
	"weak"

	"golang.org/x/net/html"
)

// Document owns the live ranges positioned in a node tree. Every structural or
// character-data mutation of that tree must go through the Document so the
// ranges keep pointing at the same logical positions.
//
// A nil *Document is valid: its mutations behave the same and update no range.
// A Document is not safe for concurrent use.
type Document struct {
	ranges []weak.Pointer[Range]
}

// NewDocument creates an empty range registry
func NewDocument() *Document {
	return &Document{}
}

// NewRange creates an unpositioned live range. Its first SetStart or SetEnd
// collapses it onto that boundary.
func (d *Document) NewRange() *Range {
	r := &Range{doc: d}
	d.track(r)
	return r
}

// RangeAt creates a live range collapsed at (node, offset)
func (d *Document) RangeAt(node *html.Node, offset int) *Range {
	r := d.NewRange()
	r.SetStart(node, offset)
	return r
}

func (d *Document) track(r *Range) {
	if d == nil {
		return
	}
	d.ranges = append(d.ranges, weak.Make(r))
}

// each calls fn for every range still referenced somewhere
func (d *Document) each(fn func(r *Range)) {
	if d == nil {
		return
	}
	kept := d.ranges[:0]
	for _, wp := range d.ranges {
		if r := wp.Value(); r != nil {
			kept = append(kept, wp)
			fn(r)
		}
	}
	clear(d.ranges[len(kept):])
	d.ranges = kept
}

// insert places node (or a fragment's children) into parent before child
func (d *Document) insert(parent, node, child *html.Node) {
	var nodes []*html.Node
	if IsFragment(node) {
		nodes = Children(node)
		for _, n := range nodes {
			d.remove(n)
		}
	} else {
		nodes = []*html.Node{node}
	}
	if len(nodes) == 0 {
		return
	}

	if child != nil {
		index := Index(child)
		count := len(nodes)
		d.each(func(r *Range) {
			if r.start.Node == parent && r.start.Offset > index {
				r.start.Offset += count
			}
			if r.end.Node == parent && r.end.Offset > index {
				r.end.Offset += count
			}
		})
	}

	for _, n := range nodes {
		parent.InsertBefore(n, child)
	}
}

// remove detaches node from its parent
func (d *Document) remove(node *html.Node) {
	parent := node.Parent
	if parent == nil {
		return
	}
	index := Index(node)
	d.each(func(r *Range) {
		if Contains(node, r.start.Node) {
			r.start = Boundary{Node: parent, Offset: index}
		}
		if Contains(node, r.end.Node) {
			r.end = Boundary{Node: parent, Offset: index}
		}
		if r.start.Node == parent && r.start.Offset > index {
			r.start.Offset--
		}
		if r.end.Node == parent && r.end.Offset > index {
			r.end.Offset--
		}
	})
	parent.RemoveChild(node)
}

// InsertBefore inserts node into parent before ref; a nil ref appends.
// A fragment contributes its children. A node that already has a parent is
// moved.
func (d *Document) InsertBefore(parent, node, ref *html.Node) {
	if ref == node {
		ref = node.NextSibling
	}
	if node.Parent != nil {
		d.remove(node)
	}
	d.insert(parent, node, ref)
}

// AppendChild appends node (or a fragment's children) to parent
func (d *Document) AppendChild(parent, node *html.Node) {
	d.InsertBefore(parent, node, nil)
}

// Append appends the nodes to parent in order
func (d *Document) Append(parent *html.Node, nodes ...*html.Node) {
	d.AppendChild(parent, d.collect(nodes))
}

// Prepend inserts the nodes before the first child of parent
func (d *Document) Prepend(parent *html.Node, nodes ...*html.Node) {
	frag := d.collect(nodes)
	d.InsertBefore(parent, frag, parent.FirstChild)
}

// collect moves the nodes into a fresh fragment, flattening fragments
func (d *Document) collect(nodes []*html.Node) *html.Node {
	frag := NewFragment()
	for _, n := range nodes {
		if IsFragment(n) {
			for _, c := range Children(n) {
				n.RemoveChild(c)
				frag.AppendChild(c)
			}
			continue
		}
		d.remove(n)
		frag.AppendChild(n)
	}
	return frag
}

// Remove detaches node from the tree
func (d *Document) Remove(node *html.Node) {
	d.remove(node)
}

// ReplaceWith puts the replacement nodes where node was
func (d *Document) ReplaceWith(node *html.Node, replacements ...*html.Node) {
	parent := node.Parent
	if parent == nil {
		return
	}
	next := node.NextSibling
	for next != nil && isOneOf(next, replacements) {
		next = next.NextSibling
	}
	frag := d.collect(replacements)
	if node.Parent == parent {
		d.remove(node)
	}
	d.insert(parent, frag, next)
}

func isOneOf(n *html.Node, nodes []*html.Node) bool {
	for _, c := range nodes {
		if c == n {
			return true
		}
	}
	return false
}

// Unwrap replaces node by its child nodes and returns them
func (d *Document) Unwrap(node *html.Node) []*html.Node {
	children := Children(node)
	d.ReplaceWith(node, children...)
	return children
}

// Textify replaces node by a text node holding its text content
func (d *Document) Textify(node *html.Node) *html.Node {
	text := CreateText(TextContent(node))
	d.ReplaceWith(node, text)
	return text
}

// ReplaceData replaces count code points of a character data node starting at
// offset.
func (d *Document) ReplaceData(node *html.Node, offset, count int, data string) {
	runes := []rune(node.Data)
	if offset > len(runes) {
		offset = len(runes)
	}
	if offset+count > len(runes) {
		count = len(runes) - offset
	}
	added := len([]rune(data))
	d.each(func(r *Range) {
		if r.start.Node == node && r.start.Offset > offset && r.start.Offset <= offset+count {
			r.start.Offset = offset
		}
		if r.end.Node == node && r.end.Offset > offset && r.end.Offset <= offset+count {
			r.end.Offset = offset
		}
		if r.start.Node == node && r.start.Offset > offset+count {
			r.start.Offset += added - count
		}
		if r.end.Node == node && r.end.Offset > offset+count {
			r.end.Offset += added - count
		}
	})
	node.Data = string(runes[:offset]) + data + string(runes[offset+count:])
}

// SetData replaces the whole content of a character data node
func (d *Document) SetData(node *html.Node, data string) {
	d.ReplaceData(node, 0, Length(node), data)
}

// SplitText cuts a text node at offset and returns the new node holding the
// tail. The new node follows the original one when it has a parent.
func (d *Document) SplitText(node *html.Node, offset int) *html.Node {
	length := Length(node)
	if offset > length {
		offset = length
	}
	tail := CreateText(string([]rune(node.Data)[offset:]))

	if parent := node.Parent; parent != nil {
		d.insert(parent, tail, node.NextSibling)
		d.each(func(r *Range) {
			if r.start.Node == node && r.start.Offset > offset {
				r.start = Boundary{Node: tail, Offset: r.start.Offset - offset}
			}
			if r.end.Node == node && r.end.Offset > offset {
				r.end = Boundary{Node: tail, Offset: r.end.Offset - offset}
			}
		})
		index := Index(node)
		d.each(func(r *Range) {
			if r.start.Node == parent && r.start.Offset == index+1 {
				r.start.Offset++
			}
			if r.end.Node == parent && r.end.Offset == index+1 {
				r.end.Offset++
			}
		})
	}

	d.ReplaceData(node, offset, length-offset, "")
	return tail
}

// Normalize merges adjacent text nodes and drops empty ones in the subtree
func (d *Document) Normalize(node *html.Node) {
	for c := node.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			if Length(c) == 0 {
				d.remove(c)
				break
			}
			d.mergeFollowingText(c)
			next = c.NextSibling
		case html.ElementNode:
			d.Normalize(c)
		}
		c = next
	}
}

func (d *Document) mergeFollowingText(first *html.Node) {
	var tail strings.Builder
	var merged []*html.Node
	for s := first.NextSibling; IsText(s); s = s.NextSibling {
		tail.WriteString(s.Data)
		merged = append(merged, s)
	}
	if len(merged) == 0 {
		return
	}

	length := Length(first)
	d.ReplaceData(first, length, 0, tail.String())
	for _, s := range merged {
		index := Index(s)
		d.each(func(r *Range) {
			if r.start.Node == s {
				r.start = Boundary{Node: first, Offset: r.start.Offset + length}
			}
			if r.end.Node == s {
				r.end = Boundary{Node: first, Offset: r.end.Offset + length}
			}
			if r.start.Node == s.Parent && r.start.Offset == index {
				r.start = Boundary{Node: first, Offset: length}
			}
			if r.end.Node == s.Parent && r.end.Offset == index {
				r.end = Boundary{Node: first, Offset: length}
			}
		})
		length += Length(s)
	}
	for _, s := range merged {
		d.remove(s)
	}
}

// SetTextContent replaces every child of node by a single text node
func (d *Document) SetTextContent(node *html.Node, text string) {
	if IsCharacterData(node) {
		d.SetData(node, text)
		return
	}
	for _, c := range Children(node) {
		d.remove(c)
	}
	if text != "" {
		d.insert(node, CreateText(text), nil)
	}
}

// SetInnerHTML replaces every child of node by the parsed markup
func (d *Document) SetInnerHTML(node *html.Node, markup string) error {
	nodes, err := ParseFragmentIn(node, markup)
	if err != nil {
		return err
	}
	for _, c := range Children(node) {
		d.remove(c)
	}
	frag := NewFragment()
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	d.insert(node, frag, nil)
	return nil
}

// RemoveNodes removes the children of node matching the predicate
func (d *Document) RemoveNodes(node *html.Node, match func(*html.Node) bool) {
	for _, c := range Children(node) {
		if match(c) {
			d.remove(c)
		}
	}
}

// RemoveNodesRecursively removes node when it matches, otherwise descends
// into its children.
func (d *Document) RemoveNodesRecursively(node *html.Node, match func(*html.Node) bool) {
	if match(node) {
		d.remove(node)
		return
	}
	for _, c := range Children(node) {
		d.RemoveNodesRecursively(c, match)
	}
}

// RemoveEmptyTextNodes removes the whitespace-only text children of node
func (d *Document) RemoveEmptyTextNodes(node *html.Node) {
	d.RemoveNodes(node, func(c *html.Node) bool {
		return IsText(c) && strings.TrimSpace(c.Data) == ""
	})
}

// RemoveCommentNodes removes the comment children of node
func (d *Document) RemoveCommentNodes(node *html.Node) {
	d.RemoveNodes(node, IsComment)
}

// TrimTag removes leading and trailing children of node with the given tag
func (d *Document) TrimTag(node *html.Node, tag string) {
	for node.FirstChild != nil && HasTagName(node.FirstChild, tag) {
		d.remove(node.FirstChild)
	}
	for node.LastChild != nil && HasTagName(node.LastChild, tag) {
		d.remove(node.LastChild)
	}
}

// IsEmptyElement reports whether n is a non-void element with no text
func IsEmptyElement(n *html.Node) bool {
	return IsElement(n) && !IsSelfClosing(n.Data) && TextContent(n) == ""
}
