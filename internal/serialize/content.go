package serialize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
	"wysiwyg/internal/sanitize"
)

// EmptyMarkup is what an editing area holds when the user cleared it
const EmptyMarkup = "<p><br></p>"

var (
	paragraphJoin = regexp.MustCompile(`(?i)</p>\s*<p>`)
	paragraphTag  = regexp.MustCompile(`(?i)</?p>`)
	nbspMarker    = regexp.MustCompile(`(?i)<span[^>]+class="` + sanitize.NbspClass + `"[^>]*>[^<]*</span>`)
	trailingBreak = regexp.MustCompile(`(?i)(?:<br\s?/?>)+$`)
)

// Content turns the markup of an editing area into the canonical form handed
// to the host application
func Content(markup string) (string, error) {
	if markup == EmptyMarkup {
		return "", nil
	}

	placeholder, err := dom.ParseContainer(markup)
	if err != nil {
		return "", err
	}

	var doc *dom.Document

	// Step 1: caret placeholders disappear
	stripZeroWidth(placeholder)

	// Step 2: elements left without text are dropped
	for _, child := range dom.Children(placeholder) {
		doc.RemoveNodesRecursively(child, dom.IsEmptyElement)
	}

	// Step 3: inline styles go, then spans that no longer carry anything
	query := dom.Query(placeholder)
	query.Find("[style]").RemoveAttr("style")
	query.Find("span").Each(func(_ int, s *goquery.Selection) {
		if node := s.Get(0); len(node.Attr) == 0 {
			doc.Unwrap(node)
		}
	})

	// Step 4: textual rewrites
	code := dom.InnerHTML(placeholder)
	code = paragraphJoin.ReplaceAllString(code, "<br>")
	code = paragraphTag.ReplaceAllString(code, "")
	code = nbspMarker.ReplaceAllString(code, "&nbsp;")
	code = trailingBreak.ReplaceAllString(code, "")
	return code, nil
}

// CodeView normalizes markup typed in the source view: every line is trimmed
func CodeView(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func stripZeroWidth(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case dom.IsText(c):
			c.Data = strings.ReplaceAll(c.Data, dom.ZeroWidthSpace, "")
		case dom.IsElement(c):
			stripZeroWidth(c)
		}
	}
}
