package wysiwyg

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
	"wysiwyg/internal/sanitize"
)

// Button is a toolbar control
type Button interface {
	// Render builds the button element placed in the toolbar
	Render() *html.Node
	// Click runs the button action
	Click()
}

// ButtonFactory creates a button bound to an editor
type ButtonFactory func(*Editor) Button

// modeAware buttons follow the visual/code switch while the editor is locked
type modeAware interface {
	modeChanged(Mode)
}

// ToolButton is a button running an editor action on click
type ToolButton struct {
	editor *Editor
	el     *html.Node

	Icon           string
	Title          string
	Action         func(*Editor) error
	ShowOnCodeView bool
}

// NewToolButton creates a button. Unless showOnCodeView is set, the button is
// disabled while the editor shows the source view.
func NewToolButton(e *Editor, icon, title string, action func(*Editor) error, showOnCodeView bool) *ToolButton {
	return &ToolButton{
		editor:         e,
		Icon:           icon,
		Title:          title,
		Action:         action,
		ShowOnCodeView: showOnCodeView,
	}
}

// Render builds the <button> element
func (b *ToolButton) Render() *html.Node {
	b.el = dom.CreateElement("button",
		html.Attribute{Key: "class", Val: "wysiwyg-btn " + b.Icon},
		html.Attribute{Key: "type", Val: "button"},
		html.Attribute{Key: "title", Val: b.Title},
	)
	return b.el
}

// Element returns the rendered element
func (b *ToolButton) Element() *html.Node {
	return b.el
}

// Disabled reports whether clicks are currently ignored
func (b *ToolButton) Disabled() bool {
	b.editor.lock()
	defer b.editor.unlock()
	return b.el != nil && dom.HasAttr(b.el, "disabled")
}

// Click runs the action unless the button is disabled
func (b *ToolButton) Click() {
	if b.Disabled() {
		return
	}
	if err := b.Action(b.editor); err != nil {
		b.editor.log.WithFields(logrus.Fields{"button": b.Title}).Warnf("button action failed: %s", err)
	}
}

func (b *ToolButton) modeChanged(mode Mode) {
	if b.ShowOnCodeView || b.el == nil {
		return
	}
	if mode == ModeCode {
		dom.SetAttr(b.el, "disabled", "disabled")
	} else {
		dom.RemoveAttr(b.el, "disabled")
	}
}

func wrapAction(tag string) func(*Editor) error {
	return func(e *Editor) error {
		e.WrapInsideTag(tag)
		return nil
	}
}

var builtinButtons = map[string]ButtonFactory{
	"bold": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-bold", "Bold", wrapAction("b"), false)
	},
	"italic": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-italic", "Italic", wrapAction("i"), false)
	},
	"underline": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-underline", "Underline", wrapAction("u"), false)
	},
	"strikethrough": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-strikethrough", "Strikethrough", wrapAction("s"), false)
	},
	"subscript": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-subscript", "Subscript", wrapAction("sub"), false)
	},
	"superscript": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-superscript", "Superscript", wrapAction("sup"), false)
	},
	"nbsp": func(e *Editor) Button {
		return NewToolButton(e, "wysiwyg-btn-nbsp", "Insert a non-breaking space", func(e *Editor) error {
			return e.ReplaceByHTML(sanitize.NbspMarkup)
		}, false)
	},
	"clear": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-eraser", "Clear formatting", func(e *Editor) error {
			e.ClearStyle()
			return nil
		}, false)
	},
	"link": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-link", "Link", func(e *Editor) error {
			_, err := e.InsertLink()
			return err
		}, false)
	},
	"codeview": func(e *Editor) Button {
		return NewToolButton(e, "fa-solid fa-code", "Show HTML source", func(e *Editor) error {
			return e.ToggleCodeView()
		}, true)
	},
}

// Button returns the toolbar button rendered for id, nil when the toolbar has
// none
func (e *Editor) Button(id string) Button {
	return e.buttonIndex[id]
}
