package css

import (
	"regexp"
	"strings"
)

// Parser handles inline style parsing and the mapping between style
// declarations and formatting tags
type Parser struct {
	importantRegex *regexp.Regexp

	// Per-tag declaration patterns, compiled once
	implied map[string]*regexp.Regexp
	cancels map[string]*regexp.Regexp
}

// NewParser creates a new CSS parser with compiled regexes
func NewParser() *Parser {
	p := &Parser{
		importantRegex: regexp.MustCompile(`!\s*important\s*$`),
		implied:        make(map[string]*regexp.Regexp, len(emphases)),
		cancels:        make(map[string]*regexp.Regexp, len(emphases)),
	}
	for _, e := range emphases {
		p.implied[e.Tag] = regexp.MustCompile(e.implied)
		p.cancels[e.Tag] = regexp.MustCompile(e.cancel)
	}
	return p
}

// InferTag returns the formatting tag implied by a raw style string and the
// style with that declaration cut out. Only declarations terminated by a
// semicolon count; the rest of the string is kept verbatim.
func (p *Parser) InferTag(style string) (tag string, rest string, ok bool) {
	for _, e := range emphases {
		loc := p.implied[e.Tag].FindStringIndex(style)
		if loc == nil {
			continue
		}
		return e.Tag, style[:loc[0]] + style[loc[1]:], true
	}
	return "", style, false
}

// Cancels reports whether the style neutralizes the emphasis of tag
func (p *Parser) Cancels(tag, style string) bool {
	re, ok := p.cancels[strings.ToLower(tag)]
	return ok && re.MatchString(style)
}

// ParseInlineStyle parses a style attribute into declarations, in source
// order. A property declared twice keeps its last value at its first position.
func (p *Parser) ParseInlineStyle(styleAttr string) []Declaration {
	var declarations []Declaration
	positions := make(map[string]int)

	// Split by semicolon, but handle semicolons in quoted strings
	for _, part := range p.smartSplit(styleAttr, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Find the first colon that's not in a quoted string
		colonIndex := p.findUnquotedChar(part, ':')
		if colonIndex == -1 {
			continue
		}

		property := NormalizePropertyName(part[:colonIndex])
		value := strings.TrimSpace(part[colonIndex+1:])
		if property == "" || value == "" {
			continue
		}

		important := p.importantRegex.MatchString(value)
		if important {
			value = strings.TrimSpace(p.importantRegex.ReplaceAllString(value, ""))
		}

		decl := Declaration{Property: property, Value: value, Important: important}
		if i, seen := positions[property]; seen {
			declarations[i] = decl
			continue
		}
		positions[property] = len(declarations)
		declarations = append(declarations, decl)
	}

	return declarations
}

// Update sets a property of a style string; an empty value removes it
func (p *Parser) Update(styleAttr, property, value string) string {
	property = NormalizePropertyName(property)
	declarations := p.ParseInlineStyle(styleAttr)

	updated := declarations[:0]
	found := false
	for _, d := range declarations {
		if d.Property != property {
			updated = append(updated, d)
			continue
		}
		found = true
		if value != "" {
			updated = append(updated, Declaration{Property: property, Value: value})
		}
	}
	if !found && value != "" {
		updated = append(updated, Declaration{Property: property, Value: value})
	}

	return Format(updated)
}

// Format renders declarations as a style attribute value
func Format(declarations []Declaration) string {
	parts := make([]string, 0, len(declarations))
	for _, d := range declarations {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}

// smartSplit splits a string by delimiter, respecting quoted strings
func (p *Parser) smartSplit(s string, delimiter rune) []string {
	var parts []string
	var current strings.Builder
	var inQuotes bool
	var quoteChar rune

	for _, char := range s {
		switch {
		case !inQuotes && (char == '"' || char == '\''):
			inQuotes = true
			quoteChar = char
			current.WriteRune(char)
		case inQuotes && char == quoteChar:
			inQuotes = false
			current.WriteRune(char)
		case !inQuotes && char == delimiter:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// findUnquotedChar finds the first occurrence of char that's not in quotes
func (p *Parser) findUnquotedChar(s string, char rune) int {
	var inQuotes bool
	var quoteChar rune

	for i, c := range s {
		switch {
		case !inQuotes && (c == '"' || c == '\''):
			inQuotes = true
			quoteChar = c
		case inQuotes && c == quoteChar:
			inQuotes = false
		case !inQuotes && c == char:
			return i
		}
	}

	return -1
}

// NormalizePropertyName normalizes CSS property names
func NormalizePropertyName(property string) string {
	return strings.ToLower(strings.TrimSpace(property))
}
