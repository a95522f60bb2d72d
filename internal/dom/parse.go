package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup the way a <div> would interpret it as its inner
// HTML. The returned nodes are detached.
func ParseFragment(markup string) ([]*html.Node, error) {
	return ParseFragmentIn(nil, markup)
}

// ParseFragmentIn parses markup in the context of the given element. A nil or
// non-element context falls back to a <div>.
func ParseFragmentIn(context *html.Node, markup string) ([]*html.Node, error) {
	if !IsElement(context) {
		context = &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}
	return nodes, nil
}

// ParseContainer parses markup into the children of a detached <div>
func ParseContainer(markup string) (*html.Node, error) {
	div := CreateElement("div")
	nodes, err := ParseFragmentIn(div, markup)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		div.AppendChild(n)
	}
	return div, nil
}

// FragmentOf moves the nodes into a new fragment container
func FragmentOf(nodes []*html.Node) *html.Node {
	frag := NewFragment()
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		frag.AppendChild(n)
	}
	return frag
}
