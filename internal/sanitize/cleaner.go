package sanitize

import (
	"strings"

	"golang.org/x/net/html"

	"wysiwyg/internal/css"
	"wysiwyg/internal/dom"
)

// Non-breaking space marker: a non-editable span standing for one &nbsp;
const (
	NbspClass  = "wysiwyg-nbsp"
	NbspGlyph  = "\u00B6"
	NbspMarkup = `<span class="` + NbspClass + `" contenteditable="false">` + NbspGlyph + `</span>`
)

var nbspAttributes = []html.Attribute{
	{Key: "class", Val: NbspClass},
	{Key: "contenteditable", Val: "false"},
}

// Cleaner rewrites arbitrary markup into the restricted formatting vocabulary
type Cleaner struct {
	doc    *dom.Document
	parser *css.Parser
}

// New creates a cleaner mutating trees through doc. A nil doc is fine for
// detached trees that no range points into.
func New(doc *dom.Document) *Cleaner {
	return &Cleaner{
		doc:    doc,
		parser: css.NewParser(),
	}
}

// Clean sanitizes a detached tree
func Clean(root *html.Node, ctx StyleContext) {
	New(nil).Clean(root, ctx)
}

// Clean rewrites the element children of root in place. ctx lists the
// formatting tags already active above root.
func (c *Cleaner) Clean(root *html.Node, ctx StyleContext) {
	for _, el := range dom.ElementChildren(root) {
		// Step 1: markers are normalized and never descended into
		if dom.HasTagName(el, "span") && dom.HasClass(el, NbspClass) {
			dom.ResetAttributesTo(el, nbspAttributes)
			c.doc.SetTextContent(el, NbspGlyph)
			continue
		}

		// Step 2: style declarations become tags
		if dom.HasAttr(el, "style") {
			el = c.ReplaceStyleByTag(el)
		}

		// Step 3: a tag already active above is redundant
		if ctx.Active(el.Data) {
			style, _ := dom.GetAttr(el, "style")
			el = c.rewrap(el, dom.CreateElement("span", html.Attribute{Key: "style", Val: style}))
		}

		// Step 4: children see this tag as active
		c.Clean(el, ctx.With(el.Data))

		// Step 5: terminal policy
		c.applyPolicy(el)
	}
}

// ReplaceStyleByTag demotes a tag whose style cancels it, then wraps the node
// in the tag its style implies. It returns the node now standing in the tree.
func (c *Cleaner) ReplaceStyleByTag(node *html.Node) *html.Node {
	style, _ := dom.GetAttr(node, "style")

	if c.parser.Cancels(node.Data, style) {
		node = c.rewrap(node, dom.CreateElement("span", html.Attribute{Key: "style", Val: style}))
	}

	if tag, rest, ok := c.parser.InferTag(style); ok {
		outer := dom.CreateElement(tag)
		inner := dom.CreateElement("span", html.Attribute{Key: "style", Val: rest})
		outer.AppendChild(inner)
		c.moveChildren(node, inner)
		c.replace(node, outer)
		node = outer
	}

	return node
}

// rewrap moves the children of node into replacement and swaps them
func (c *Cleaner) rewrap(node, replacement *html.Node) *html.Node {
	c.moveChildren(node, replacement)
	c.replace(node, replacement)
	return replacement
}

func (c *Cleaner) moveChildren(from, to *html.Node) {
	for _, child := range dom.Children(from) {
		c.doc.AppendChild(to, child)
	}
}

func (c *Cleaner) replace(node, replacement *html.Node) {
	if node.Parent != nil {
		c.doc.ReplaceWith(node, replacement)
	}
}

func (c *Cleaner) applyPolicy(el *html.Node) {
	switch {
	case dom.HasTagName(el, "a"):
		var keep []html.Attribute
		for _, name := range []string{"href", "target"} {
			if value, ok := dom.GetAttr(el, name); ok {
				keep = append(keep, html.Attribute{Key: name, Val: value})
			}
		}
		dom.ResetAttributesTo(el, keep)
	case dom.HasTagName(el, "b", "i", "q", "u", "s", "br", "sup"):
		dom.ResetAttributesTo(el, nil)
	case dom.HasTagName(el, "style", "meta", "link"):
		c.doc.Remove(el)
	case dom.HasTagName(el, "p"):
		if strings.TrimSpace(dom.TextContent(el)) == "" {
			c.doc.Remove(el)
			return
		}
		dom.ResetAttributesTo(el, nil)
		c.doc.TrimTag(el, "br")
	default:
		c.doc.Unwrap(el)
	}
}
