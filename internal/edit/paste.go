package edit

import (
	"regexp"

	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
	"wysiwyg/internal/sanitize"
)

// Clipboard MIME types understood by Paste
const (
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
)

// ClipboardData maps MIME types to clipboard payloads
type ClipboardData map[string]string

// Has reports whether the clipboard carries the MIME type
func (c ClipboardData) Has(mime string) bool {
	_, ok := c[mime]
	return ok
}

// whitespace is a run of ASCII or Unicode space separators
const whitespace = `[\s\v\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

var (
	lineBreaks = regexp.MustCompile(`[\r\n]+`)
	envelope   = regexp.MustCompile(`^<html>` + whitespace + `*<body>`)
	nbspRun    = regexp.MustCompile(whitespace + `*&nbsp;` + whitespace + `*`)
	spaceRun   = regexp.MustCompile(whitespace + `+`)
	junction   = regexp.MustCompile(`</b>` + whitespace + `*<b>|</i>` + whitespace + `*<i>|</u>` + whitespace + `*<u>|</s>` + whitespace + `*<s>`)
)

// Paste replaces the selection by the clipboard content. HTML is cleaned
// against the formatting already active at the caret; plain text becomes
// lines separated by <br>. The caret ends after the pasted content.
func (e *Engine) Paste(data ClipboardData) error {
	current := e.sel.Current()
	if current.Range == nil {
		return nil
	}

	var frag *html.Node
	if !data.Has(MIMEHTML) {
		frag = PlainTextFragment(data[MIMEText])
	} else {
		ctx := ActiveStyles(current.Sel.AnchorNode(), e.root)
		cleaned, err := e.CleanPastedHTML(clipboardMarkup(data[MIMEHTML]), ctx)
		if err != nil {
			return err
		}
		frag = dom.FragmentOf(dom.Children(cleaned))
	}

	current.Sel.DeleteFromDocument()
	current.Range.InsertNode(frag)
	current.Range.Collapse(false)
	return nil
}

// PlainTextFragment turns text into text nodes separated by <br> elements
func PlainTextFragment(text string) *html.Node {
	frag := dom.NewFragment()
	for i, line := range lineBreaks.Split(text, -1) {
		if i > 0 {
			frag.AppendChild(dom.CreateElement("br"))
		}
		frag.AppendChild(dom.CreateText(line))
	}
	return frag
}

// ActiveStyles collects the formatting tags enclosing anchor below root
func ActiveStyles(anchor, root *html.Node) sanitize.StyleContext {
	var ctx sanitize.StyleContext
	if dom.IsText(anchor) {
		anchor = anchor.Parent
	}
	for p := anchor; p != nil && p != root; p = p.Parent {
		if dom.IsElement(p) {
			ctx = ctx.With(p.Data)
		}
	}
	return ctx
}

// clipboardMarkup joins the lines of clipboard HTML and puts it in an
// <html><body> envelope when the source left it out
func clipboardMarkup(markup string) string {
	markup = lineBreaks.ReplaceAllString(markup, " ")
	if !envelope.MatchString(markup) {
		markup = "<html><body>" + markup + "</body></html>"
	}
	return markup
}

// CleanClipboardHTML cleans clipboard HTML the way Paste does, without an
// editor
func CleanClipboardHTML(markup string, ctx sanitize.StyleContext) (*html.Node, error) {
	return CleanPastedHTML(clipboardMarkup(markup), ctx)
}

// CleanPastedHTML parses markup into a detached <div> and reduces it to the
// editor vocabulary
func (e *Engine) CleanPastedHTML(markup string, ctx sanitize.StyleContext) (*html.Node, error) {
	return cleanPasted(e.cleaner, markup, ctx)
}

// CleanPastedHTML is the engine-free form used by batch tools
func CleanPastedHTML(markup string, ctx sanitize.StyleContext) (*html.Node, error) {
	return cleanPasted(sanitize.New(nil), markup, ctx)
}

func cleanPasted(cleaner *sanitize.Cleaner, markup string, ctx sanitize.StyleContext) (*html.Node, error) {
	var scratch *dom.Document

	result, err := dom.ParseContainer(markup)
	if err != nil {
		return nil, err
	}

	cleaner.Clean(result, ctx)
	scratch.Normalize(result)
	scratch.RemoveEmptyTextNodes(result)

	inner := dom.InnerHTML(result)
	inner = nbspRun.ReplaceAllString(inner, " ")
	inner = spaceRun.ReplaceAllString(inner, " ")
	inner = junction.ReplaceAllString(inner, " ")

	result, err = dom.ParseContainer(inner)
	if err != nil {
		return nil, err
	}
	scratch.RemoveCommentNodes(result)
	return result, nil
}
