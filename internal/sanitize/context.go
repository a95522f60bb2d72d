package sanitize

import "strings"

// StyleContext records which inline formatting tags are already active on the
// ancestors of the subtree being cleaned. It is a value: every recursion level
// works on its own copy.
type StyleContext struct {
	Bold      bool // <b>
	Italic    bool // <i>
	Underline bool // <u>
	Strike    bool // <s>
	Quote     bool // <q>
}

// ContextFromTags builds a context with the given tags active. Unknown tags
// are ignored.
func ContextFromTags(tags ...string) StyleContext {
	var c StyleContext
	for _, tag := range tags {
		c = c.With(tag)
	}
	return c
}

// Active reports whether the tag is already in effect
func (c StyleContext) Active(tag string) bool {
	switch strings.ToLower(tag) {
	case "b":
		return c.Bold
	case "i":
		return c.Italic
	case "u":
		return c.Underline
	case "s":
		return c.Strike
	case "q":
		return c.Quote
	}
	return false
}

// With returns a copy of the context with the tag marked active
func (c StyleContext) With(tag string) StyleContext {
	switch strings.ToLower(tag) {
	case "b":
		c.Bold = true
	case "i":
		c.Italic = true
	case "u":
		c.Underline = true
	case "s":
		c.Strike = true
	case "q":
		c.Quote = true
	}
	return c
}

// Tags lists the active tags in b, i, u, s, q order
func (c StyleContext) Tags() []string {
	var tags []string
	for _, tag := range []string{"b", "i", "u", "s", "q"} {
		if c.Active(tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}
