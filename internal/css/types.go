package css

import "strings"

// Declaration represents a single CSS property declaration
type Declaration struct {
	Property  string // CSS property name (normalized)
	Value     string // CSS property value
	Important bool   // !important flag
}

// String renders the declaration the way a style attribute lists it
func (d Declaration) String() string {
	var b strings.Builder
	b.WriteString(d.Property)
	b.WriteString(": ")
	b.WriteString(d.Value)
	if d.Important {
		b.WriteString(" !important")
	}
	b.WriteByte(';')
	return b.String()
}

// Emphasis pairs an inline formatting tag with the style declarations that
// imply it and the ones that cancel it
type Emphasis struct {
	Tag     string // b, i, u or s
	implied string // pattern of the declaration implying the tag
	cancel  string // pattern of the declaration neutralizing the tag
}

// emphases is ordered: inference picks the first match
var emphases = []Emphasis{
	{Tag: "b", implied: `font-weight\s*:\s*(bold|700|800|900);`, cancel: `font-weight\s*:\s*(normal|400);`},
	{Tag: "i", implied: `font-style\s*:\s*italic;`, cancel: `font-style\s*:\s*normal;`},
	{Tag: "u", implied: `text-decoration\s*:\s*underline;`, cancel: `text-decoration\s*:\s*none;`},
	{Tag: "s", implied: `text-decoration\s*:\s*line-through;`, cancel: `text-decoration\s*:\s*none;`},
}
