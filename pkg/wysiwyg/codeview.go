package wysiwyg

import (
	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
)

// CodeView is the source editor shown in code mode
type CodeView interface {
	// Text returns the current source
	Text() string
	// SetText replaces the whole source
	SetText(text string)
	// Destroy removes the view from the page
	Destroy()
}

// CodeViewFactory mounts a source editor holding text under parent
type CodeViewFactory func(parent *html.Node, text string) CodeView

// textareaView keeps the source in a <textarea>
type textareaView struct {
	el *html.Node
}

// NewTextareaView is the default CodeViewFactory
func NewTextareaView(parent *html.Node, text string) CodeView {
	v := &textareaView{
		el: dom.CreateElement("textarea", html.Attribute{Key: "spellcheck", Val: "false"}),
	}
	v.SetText(text)
	parent.AppendChild(v.el)
	return v
}

func (v *textareaView) Text() string {
	return dom.TextContent(v.el)
}

func (v *textareaView) SetText(text string) {
	for c := v.el.FirstChild; c != nil; c = v.el.FirstChild {
		v.el.RemoveChild(c)
	}
	v.el.AppendChild(dom.CreateText(text))
}

func (v *textareaView) Destroy() {
	if v.el.Parent != nil {
		v.el.Parent.RemoveChild(v.el)
	}
}
