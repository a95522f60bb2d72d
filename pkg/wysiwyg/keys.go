package wysiwyg

import (
	"strings"

	"wysiwyg/internal/sanitize"
)

// KeyType tells key presses from releases
type KeyType int

const (
	KeyDown KeyType = iota
	KeyUp
)

// KeyEvent is a keyboard event on the visual surface
type KeyEvent struct {
	Type KeyType
	Key  string
	Meta bool
	Ctrl bool
}

func normalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(key)
}

// HandleKey runs the shortcut bound to the event and reports whether the
// host should prevent its default action. Shortcuts act on key-down only;
// the matching key-up is swallowed. Other keys arm the typing snapshot.
func (e *Editor) HandleKey(ev KeyEvent) bool {
	key := normalizeKey(ev.Key)
	down := ev.Type == KeyDown

	if key == "enter" {
		if down {
			e.logError(e.ReplaceByHTML("<br />"))
		}
		return true
	}

	if ev.Meta || ev.Ctrl {
		switch key {
		case "space":
			if down {
				e.logError(e.ReplaceByHTML(sanitize.NbspMarkup))
			}
			return true
		case "b", "i", "u", "s":
			if down {
				e.WrapInsideTag(key)
			}
			return true
		case "z":
			if down {
				e.logError(e.Undo())
			}
			return true
		}
		return false
	}

	e.snapshots.Call()
	return false
}

func (e *Editor) logError(err error) {
	if err != nil {
		e.log.Warnf("key handler failed: %s", err)
	}
}
