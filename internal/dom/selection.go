package dom

import "golang.org/x/net/html"

// Selection holds at most one live range, like a browser window selection
type Selection struct {
	r *Range
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{}
}

// RangeCount returns 0 or 1
func (s *Selection) RangeCount() int {
	if s.r == nil {
		return 0
	}
	return 1
}

// RangeAt returns the selected range, or nil when there is none
func (s *Selection) RangeAt(i int) *Range {
	if i != 0 {
		return nil
	}
	return s.r
}

// RemoveAllRanges empties the selection
func (s *Selection) RemoveAllRanges() {
	s.r = nil
}

// AddRange selects r when the selection is empty
func (s *Selection) AddRange(r *Range) {
	if s.r != nil || r == nil {
		return
	}
	s.r = r
}

// AnchorNode returns the start container of the selected range
func (s *Selection) AnchorNode() *html.Node {
	if s.r == nil {
		return nil
	}
	return s.r.start.Node
}

// FocusNode returns the end container of the selected range
func (s *Selection) FocusNode() *html.Node {
	if s.r == nil {
		return nil
	}
	return s.r.end.Node
}

// ContainsNode reports whether node is selected. With allowPartial, touching
// the node is enough.
func (s *Selection) ContainsNode(node *html.Node, allowPartial bool) bool {
	if s.r == nil {
		return false
	}
	if allowPartial {
		return s.r.IntersectsNode(node)
	}
	return s.r.ContainsNode(node)
}

// DeleteFromDocument removes the selected content
func (s *Selection) DeleteFromDocument() {
	if s.r != nil {
		s.r.DeleteContents()
	}
}
