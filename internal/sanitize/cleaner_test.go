package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
)

func clean(t *testing.T, markup string, ctx StyleContext) string {
	t.Helper()
	root, err := dom.ParseContainer(markup)
	require.NoError(t, err)
	Clean(root, ctx)
	return dom.InnerHTML(root)
}

func TestCleanInfersTagsFromStyle(t *testing.T) {
	markup := `<div><span style="color: rgb(33, 37, 41); font-weight: bold; font-style: normal;">Bold text</span>,` +
		`<span style="color: rgb(33, 37, 41); font-style: normal; font-weight: 400;"> simple span</span> &amp; ` +
		`<span style="color: rgb(33, 37, 41); font-weight: normal; font-style: italic; ">Italic text</span></div>`

	got := clean(t, markup, StyleContext{Bold: true})
	assert.Equal(t, "Bold text, simple span &amp; <i>Italic text</i>", got)
}

func TestCleanKeepsMarkersAndSup(t *testing.T) {
	markup := `<div><span style="font-family: var(--bs-body-font-family); font-size: var(--bs-body-font-size); ` +
		`font-weight: var(--bs-body-font-weight); text-align: var(--bs-body-text-align);">Text simple <sup>exposant</sup>` +
		NbspMarkup + `suite du texte simple.</span></div>`

	got := clean(t, markup, StyleContext{})
	assert.Equal(t, "Text simple <sup>exposant</sup>"+NbspMarkup+"suite du texte simple.", got)
}

func TestCleanPolicy(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		ctx    StyleContext
		want   string
	}{
		{"style to bold", `<span style="font-weight: bold;">Hi</span>`, StyleContext{}, "<b>Hi</b>"},
		{"nested duplicate", "<b><b>x</b></b>", StyleContext{}, "<b>x</b>"},
		{"duplicate of context", "<i>x</i>", StyleContext{Italic: true}, "x"},
		{"cancelled bold", `<b style="font-weight: normal;">x</b>`, StyleContext{}, "x"},
		{"attributes stripped", `<u class="a" id="b">x</u><sup data-x="1">2</sup>`, StyleContext{}, "<u>x</u><sup>2</sup>"},
		{"link whitelist", `<a href="/x" class="c" target="_blank" onclick="y()">l</a>`, StyleContext{}, `<a href="/x" target="_blank">l</a>`},
		{"link href kept verbatim", `<a href="javascript:alert(1)">l</a>`, StyleContext{}, `<a href="javascript:alert(1)">l</a>`},
		{"paragraph trimmed", `<p style="x"><br>text<br></p>`, StyleContext{}, "<p>text</p>"},
		{"empty paragraph", "<p> <br></p>after", StyleContext{}, "after"},
		{"useless tags removed", `<style>p{}</style><meta charset="utf-8"><link rel="x">kept`, StyleContext{}, "kept"},
		{"unknown tags unwrapped", "<div><h1>Title</h1><table><tbody><tr><td>cell</td></tr></tbody></table></div>", StyleContext{}, "Titlecell"},
		{"sub unwrapped", "H<sub>2</sub>O", StyleContext{}, "H2O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clean(t, tt.markup, tt.ctx))
		})
	}
}

func TestCleanResetsMarker(t *testing.T) {
	got := clean(t, `<span data-x="1" class="wysiwyg-nbsp extra">foo</span>`, StyleContext{})
	assert.Equal(t, NbspMarkup, got)
}

func TestCleanIsIdempotent(t *testing.T) {
	markup := `<p>one <span style="font-style: italic;">two</span> <b>three <b>four</b></b></p><div>five</div>`

	once := clean(t, markup, StyleContext{})
	assert.Equal(t, once, clean(t, once, StyleContext{}))
}

func TestReplaceStyleByTag(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		style string
		want  string
	}{
		{"bold keyword", "span", "font-weight: bold;", `<b><span style="">Simple text</span></b>`},
		{"weight 700", "span", "font-weight: 700;", `<b><span style="">Simple text</span></b>`},
		{"weight 800", "span", "font-weight: 800;", `<b><span style="">Simple text</span></b>`},
		{"weight 900", "span", "font-weight: 900;", `<b><span style="">Simple text</span></b>`},
		{"italic", "span", "font-style: italic;", `<i><span style="">Simple text</span></i>`},
		{"underline", "span", "text-decoration: underline;", `<u><span style="">Simple text</span></u>`},
		{"line-through", "span", "text-decoration: line-through;", `<s><span style="">Simple text</span></s>`},
		{"rest kept verbatim", "span", "color: red; font-weight: bold; margin: 0", `<b><span style="color: red;  margin: 0">Simple text</span></b>`},
		{"unterminated ignored", "span", "font-weight: bold", `<span style="font-weight: bold">Simple text</span>`},
		{"cancelled bold", "b", "font-weight: normal;", `<span style="font-weight: normal;">Simple text</span>`},
	}

	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := dom.CreateElement(tt.tag, html.Attribute{Key: "style", Val: tt.style})
			el.AppendChild(dom.CreateText("Simple text"))
			assert.Equal(t, tt.want, dom.OuterHTML(c.ReplaceStyleByTag(el)))
		})
	}
}

func TestStyleContext(t *testing.T) {
	ctx := ContextFromTags("B", "q", "span")
	assert.Equal(t, []string{"b", "q"}, ctx.Tags())

	child := ctx.With("i")
	assert.True(t, child.Italic)
	assert.False(t, ctx.Italic)
}

func TestSafeHref(t *testing.T) {
	assert.True(t, SafeHref("https://example.com/a?b=c"))
	assert.True(t, SafeHref("mailto:someone@example.com"))
	assert.True(t, SafeHref("/relative/path"))
	assert.False(t, SafeHref("javascript:alert(1)"))
	assert.False(t, SafeHref("  "))
}
