package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Boundary is a position in the tree: a container node and an offset inside
// it (code points for character data, child index otherwise).
type Boundary struct {
	Node   *html.Node
	Offset int
}

// Range is a live pair of boundaries. Mutations made through the owning
// Document keep it consistent.
type Range struct {
	doc   *Document
	start Boundary
	end   Boundary
}

// StartContainer returns the node holding the start boundary
func (r *Range) StartContainer() *html.Node { return r.start.Node }

// StartOffset returns the start offset
func (r *Range) StartOffset() int { return r.start.Offset }

// EndContainer returns the node holding the end boundary
func (r *Range) EndContainer() *html.Node { return r.end.Node }

// EndOffset returns the end offset
func (r *Range) EndOffset() int { return r.end.Offset }

// Start returns the start boundary
func (r *Range) Start() Boundary { return r.start }

// End returns the end boundary
func (r *Range) End() Boundary { return r.end }

// Collapsed reports whether start and end are the same position
func (r *Range) Collapsed() bool {
	return r.start == r.end
}

// CommonAncestorContainer returns the deepest node containing both boundaries
func (r *Range) CommonAncestorContainer() *html.Node {
	c := r.start.Node
	for c != nil && !Contains(c, r.end.Node) {
		c = c.Parent
	}
	return c
}

func clampOffset(node *html.Node, offset int) int {
	if offset < 0 {
		return 0
	}
	if l := Length(node); offset > l {
		return l
	}
	return offset
}

// SetStart moves the start boundary. Offsets are clamped to the node length.
// When the new start lies after the end, or in another tree, the range
// collapses onto it.
func (r *Range) SetStart(node *html.Node, offset int) {
	r.start = Boundary{Node: node, Offset: clampOffset(node, offset)}
	if r.end.Node == nil || Root(r.end.Node) != Root(node) || ComparePoints(r.start, r.end) > 0 {
		r.end = r.start
	}
}

// SetEnd moves the end boundary, collapsing the range when it would end
// before its start.
func (r *Range) SetEnd(node *html.Node, offset int) {
	r.end = Boundary{Node: node, Offset: clampOffset(node, offset)}
	if r.start.Node == nil || Root(r.start.Node) != Root(node) || ComparePoints(r.start, r.end) > 0 {
		r.start = r.end
	}
}

// SetStartBefore starts the range right before node
func (r *Range) SetStartBefore(node *html.Node) {
	r.SetStart(node.Parent, Index(node))
}

// SetStartAfter starts the range right after node
func (r *Range) SetStartAfter(node *html.Node) {
	r.SetStart(node.Parent, Index(node)+1)
}

// SetEndBefore ends the range right before node
func (r *Range) SetEndBefore(node *html.Node) {
	r.SetEnd(node.Parent, Index(node))
}

// SetEndAfter ends the range right after node
func (r *Range) SetEndAfter(node *html.Node) {
	r.SetEnd(node.Parent, Index(node)+1)
}

// Collapse moves one boundary onto the other
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
}

// SelectNode makes the range surround node
func (r *Range) SelectNode(node *html.Node) {
	index := Index(node)
	r.start = Boundary{Node: node.Parent, Offset: index}
	r.end = Boundary{Node: node.Parent, Offset: index + 1}
}

// SelectNodeContents makes the range cover every child of node
func (r *Range) SelectNodeContents(node *html.Node) {
	r.start = Boundary{Node: node, Offset: 0}
	r.end = Boundary{Node: node, Offset: Length(node)}
}

// Clone returns a new live range with the same boundaries
func (r *Range) Clone() *Range {
	clone := &Range{doc: r.doc, start: r.start, end: r.end}
	r.doc.track(clone)
	return clone
}

// String returns the text covered by the range
func (r *Range) String() string {
	if r.start.Node == nil {
		return ""
	}
	if r.start.Node == r.end.Node && IsText(r.start.Node) {
		return runeSlice(r.start.Node.Data, r.start.Offset, r.end.Offset)
	}

	var b strings.Builder
	if IsText(r.start.Node) {
		b.WriteString(runeSlice(r.start.Node.Data, r.start.Offset, Length(r.start.Node)))
	}
	walkTree(r.CommonAncestorContainer(), func(n *html.Node) {
		if IsText(n) && r.contains(n) {
			b.WriteString(n.Data)
		}
	})
	if IsText(r.end.Node) {
		b.WriteString(runeSlice(r.end.Node.Data, 0, r.end.Offset))
	}
	return b.String()
}

// IntersectsNode reports whether the range touches node, boundaries included
func (r *Range) IntersectsNode(node *html.Node) bool {
	if r.start.Node == nil || Root(node) != Root(r.start.Node) {
		return false
	}
	return ComparePoints(r.start, Boundary{Node: node, Offset: Length(node)}) <= 0 &&
		ComparePoints(r.end, Boundary{Node: node, Offset: 0}) >= 0
}

// ContainsNode reports whether node lies entirely inside the range
func (r *Range) ContainsNode(node *html.Node) bool {
	if r.start.Node == nil || Root(node) != Root(r.start.Node) {
		return false
	}
	return ComparePoints(r.start, Boundary{Node: node, Offset: 0}) <= 0 &&
		ComparePoints(r.end, Boundary{Node: node, Offset: Length(node)}) >= 0
}

// contains is the strict containment used by extraction
func (r *Range) contains(node *html.Node) bool {
	return Root(node) == Root(r.start.Node) &&
		ComparePoints(Boundary{Node: node, Offset: 0}, r.start) > 0 &&
		ComparePoints(Boundary{Node: node, Offset: Length(node)}, r.end) < 0
}

func (r *Range) partiallyContains(node *html.Node) bool {
	return Contains(node, r.start.Node) != Contains(node, r.end.Node)
}

// ExtractContents moves the content of the range into a new fragment. Nodes
// cut by a boundary are split: the fragment receives shallow clones holding
// the inner part. The range collapses where the content was.
func (r *Range) ExtractContents() *html.Node {
	frag := NewFragment()
	if r.Collapsed() {
		return frag
	}
	d := r.doc
	start, end := r.start, r.end

	if start.Node == end.Node && IsCharacterData(start.Node) {
		clone := ShallowClone(start.Node)
		clone.Data = runeSlice(start.Node.Data, start.Offset, end.Offset)
		frag.AppendChild(clone)
		d.ReplaceData(start.Node, start.Offset, end.Offset-start.Offset, "")
		return frag
	}

	common := start.Node
	for !Contains(common, end.Node) {
		common = common.Parent
	}

	var firstPartial, lastPartial *html.Node
	if !Contains(start.Node, end.Node) {
		for c := common.FirstChild; c != nil; c = c.NextSibling {
			if r.partiallyContains(c) {
				firstPartial = c
				break
			}
		}
	}
	if !Contains(end.Node, start.Node) {
		for c := common.LastChild; c != nil; c = c.PrevSibling {
			if r.partiallyContains(c) {
				lastPartial = c
				break
			}
		}
	}
	var contained []*html.Node
	for c := common.FirstChild; c != nil; c = c.NextSibling {
		if r.contains(c) {
			contained = append(contained, c)
		}
	}

	collapseAt := r.collapsePoint()

	if firstPartial != nil {
		if IsCharacterData(firstPartial) {
			clone := ShallowClone(start.Node)
			clone.Data = runeSlice(start.Node.Data, start.Offset, Length(start.Node))
			frag.AppendChild(clone)
			d.ReplaceData(start.Node, start.Offset, Length(start.Node)-start.Offset, "")
		} else {
			clone := ShallowClone(firstPartial)
			frag.AppendChild(clone)
			sub := &Range{doc: d, start: start, end: Boundary{Node: firstPartial, Offset: Length(firstPartial)}}
			appendFragment(clone, sub.ExtractContents())
		}
	}

	for _, c := range contained {
		d.remove(c)
		frag.AppendChild(c)
	}

	if lastPartial != nil {
		if IsCharacterData(lastPartial) {
			clone := ShallowClone(end.Node)
			clone.Data = runeSlice(end.Node.Data, 0, end.Offset)
			frag.AppendChild(clone)
			d.ReplaceData(end.Node, 0, end.Offset, "")
		} else {
			clone := ShallowClone(lastPartial)
			frag.AppendChild(clone)
			sub := &Range{doc: d, start: Boundary{Node: lastPartial, Offset: 0}, end: end}
			appendFragment(clone, sub.ExtractContents())
		}
	}

	r.start, r.end = collapseAt, collapseAt
	return frag
}

// DeleteContents removes the content of the range, splitting cut nodes
func (r *Range) DeleteContents() {
	if r.Collapsed() {
		return
	}
	d := r.doc
	start, end := r.start, r.end

	if start.Node == end.Node && IsCharacterData(start.Node) {
		d.ReplaceData(start.Node, start.Offset, end.Offset-start.Offset, "")
		return
	}

	var toRemove []*html.Node
	walkTree(r.CommonAncestorContainer(), func(n *html.Node) {
		if r.contains(n) && (n.Parent == nil || !r.contains(n.Parent)) {
			toRemove = append(toRemove, n)
		}
	})

	collapseAt := r.collapsePoint()

	if IsCharacterData(start.Node) {
		d.ReplaceData(start.Node, start.Offset, Length(start.Node)-start.Offset, "")
	}
	for _, n := range toRemove {
		d.remove(n)
	}
	if IsCharacterData(end.Node) {
		d.ReplaceData(end.Node, 0, end.Offset, "")
	}

	r.start, r.end = collapseAt, collapseAt
}

// collapsePoint is where the range ends up after its content is removed
func (r *Range) collapsePoint() Boundary {
	if Contains(r.start.Node, r.end.Node) {
		return r.start
	}
	ref := r.start.Node
	for ref.Parent != nil && !Contains(ref.Parent, r.end.Node) {
		ref = ref.Parent
	}
	return Boundary{Node: ref.Parent, Offset: Index(ref) + 1}
}

// InsertNode inserts node (or a fragment's children) at the start of the
// range, splitting a text container. A collapsed range grows to cover the
// inserted content.
func (r *Range) InsertNode(node *html.Node) {
	d := r.doc
	container := r.start.Node

	var ref *html.Node
	if IsText(container) {
		ref = container
	} else {
		ref = ChildAt(container, r.start.Offset)
	}
	parent := container
	if ref != nil {
		parent = ref.Parent
	}

	if IsText(container) {
		ref = d.SplitText(container, r.start.Offset)
	}
	if node == ref {
		ref = ref.NextSibling
	}
	if node.Parent != nil {
		d.remove(node)
	}

	offset := Length(parent)
	if ref != nil {
		offset = Index(ref)
	}
	if IsFragment(node) {
		offset += Length(node)
	} else {
		offset++
	}

	d.insert(parent, node, ref)

	if r.Collapsed() {
		r.end = Boundary{Node: parent, Offset: offset}
	}
}

func appendFragment(parent, frag *html.Node) {
	for _, c := range Children(frag) {
		frag.RemoveChild(c)
		parent.AppendChild(c)
	}
}

// walkTree visits the descendants of root in tree order
func walkTree(root *html.Node, visit func(*html.Node)) {
	if root == nil {
		return
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
		walkTree(c, visit)
	}
}

func runeSlice(s string, from, to int) string {
	runes := []rune(s)
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return ""
	}
	return string(runes[from:to])
}
