package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ZeroWidthSpace keeps a caret inside an element that has no visible text yet
const ZeroWidthSpace = "\u200B"

// selfClosing lists the void elements that can never hold children
var selfClosing = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsElement reports whether n is an element node
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsText reports whether n is a text node
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsComment reports whether n is a comment node
func IsComment(n *html.Node) bool {
	return n != nil && n.Type == html.CommentNode
}

// IsCharacterData reports whether n stores its content in Data (text or comment)
func IsCharacterData(n *html.Node) bool {
	return IsText(n) || IsComment(n)
}

// IsFragment reports whether n is a detached fragment container
func IsFragment(n *html.Node) bool {
	return n != nil && n.Type == html.DocumentNode
}

// IsSelfClosing reports whether the tag is a void element
func IsSelfClosing(tag string) bool {
	return selfClosing[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// HasTagName reports whether n is an element with one of the given tag names
func HasTagName(n *html.Node, tags ...string) bool {
	if !IsElement(n) {
		return false
	}
	for _, tag := range tags {
		if strings.EqualFold(n.Data, tag) {
			return true
		}
	}
	return false
}

// HasClass reports whether n carries the class name
func HasClass(n *html.Node, className string) bool {
	value, ok := GetAttr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(value) {
		if c == className {
			return true
		}
	}
	return false
}

// AddClass appends the class name when it is missing
func AddClass(n *html.Node, className string) {
	if HasClass(n, className) {
		return
	}
	value, _ := GetAttr(n, "class")
	SetAttr(n, "class", strings.TrimSpace(value+" "+className))
}

// RemoveClass drops the class name, and the attribute once it is empty
func RemoveClass(n *html.Node, className string) {
	value, ok := GetAttr(n, "class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(value) {
		if c != className {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// GetAttr returns the attribute value and whether it is present
func GetAttr(n *html.Node, name string) (string, bool) {
	if !IsElement(n) {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present
func HasAttr(n *html.Node, name string) bool {
	_, ok := GetAttr(n, name)
	return ok
}

// SetAttr sets the attribute in place, or appends it when it is missing
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the attribute if present
func RemoveAttr(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// ResetAttributesTo removes every attribute not listed in target, then sets the
// listed ones. Existing attributes keep their position.
func ResetAttributesTo(n *html.Node, target []html.Attribute) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		for _, t := range target {
			if a.Namespace == "" && a.Key == t.Key {
				kept = append(kept, a)
				break
			}
		}
	}
	n.Attr = kept
	for _, t := range target {
		SetAttr(n, t.Key, t.Val)
	}
}

// CreateElement builds a detached element with the given attributes
func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
		Attr:     append([]html.Attribute(nil), attrs...),
	}
}

// CreateText builds a detached text node
func CreateText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// NewFragment builds an empty fragment container
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// ShallowClone copies a node without its children
func ShallowClone(n *html.Node) *html.Node {
	return &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
}

// DeepClone copies a node and its subtree
func DeepClone(n *html.Node) *html.Node {
	clone := ShallowClone(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(DeepClone(c))
	}
	return clone
}

// TextContent concatenates the data of every descendant text node
func TextContent(n *html.Node) string {
	if IsCharacterData(n) {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode, html.DocumentNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// Children returns a snapshot of the child nodes
func Children(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

// ElementChildren returns a snapshot of the element children
func ElementChildren(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Index returns the position of n among its siblings
func Index(n *html.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		i++
	}
	return i
}

// ChildAt returns the child at the given position, or nil
func ChildAt(n *html.Node, offset int) *html.Node {
	c := n.FirstChild
	for i := 0; c != nil && i < offset; i++ {
		c = c.NextSibling
	}
	return c
}

// Length is the boundary length of a node: code points for character data,
// child count otherwise.
func Length(n *html.Node) int {
	if IsCharacterData(n) {
		return utf8.RuneCountInString(n.Data)
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// Contains reports whether other is n or one of its descendants
func Contains(n, other *html.Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of n
func Root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
