package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Query wraps the subtree below root in a goquery selection
func Query(root *html.Node) *goquery.Document {
	return goquery.NewDocumentFromNode(root)
}

// FindAll returns the descendants of root matching the selector, in tree order
func FindAll(root *html.Node, selector string) []*html.Node {
	return Query(root).Find(selector).Nodes
}

// Closest walks from n up to, but excluding, boundary and returns the first
// element matching one of the tags.
func Closest(n, boundary *html.Node, tags ...string) *html.Node {
	for p := n; p != nil && p != boundary; p = p.Parent {
		if HasTagName(p, tags...) {
			return p
		}
	}
	return nil
}
