package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// linkPolicy accepts http, https, mailto and relative URLs on <a href>.
// It is read-only after build.
var linkPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	return p
}()

// SafeHref reports whether href may be used as a link target
func SafeHref(href string) bool {
	if strings.TrimSpace(href) == "" {
		return false
	}
	out := linkPolicy.Sanitize(`<a href="` + html.EscapeString(href) + `">link</a>`)
	return strings.Contains(out, "href=")
}
