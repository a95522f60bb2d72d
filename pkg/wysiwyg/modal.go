package wysiwyg

import (
	"fmt"

	"golang.org/x/net/html"

	"wysiwyg/internal/dom"
)

// FieldType selects how a modal field is rendered
type FieldType int

const (
	FieldInput FieldType = iota + 1
	FieldCheckbox
)

// Field describes one input of a modal
type Field struct {
	Type    FieldType
	Label   string
	Name    string
	Value   string
	Checked bool
}

// InputField creates a text input field
func InputField(label, name, value string) Field {
	return Field{Type: FieldInput, Label: label, Name: name, Value: value}
}

// CheckboxField creates a checkbox field
func CheckboxField(label, name string, checked bool) Field {
	return Field{Type: FieldCheckbox, Label: label, Name: name, Checked: checked}
}

// ModalValues holds the submitted field values: strings for inputs, booleans
// for checkboxes
type ModalValues map[string]any

// String returns the value of a text input
func (v ModalValues) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns the state of a checkbox
func (v ModalValues) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// ModalCallback receives the values on submit and nil on cancel
type ModalCallback func(ModalValues)

// Modal is a dialog rendered in the editor's modals container
type Modal struct {
	editor   *Editor
	title    string
	fields   []Field
	callback ModalCallback
	el       *html.Node
}

// NewModal creates a dialog; Show renders it
func (e *Editor) NewModal(title string, fields []Field, callback ModalCallback) *Modal {
	return e.newModal(title, fields, callback)
}

func (e *Editor) newModal(title string, fields []Field, callback ModalCallback) *Modal {
	return &Modal{editor: e, title: title, fields: fields, callback: callback}
}

// Show renders the dialog. It fails on a field of unknown type.
func (m *Modal) Show() error {
	m.editor.lock()
	defer m.editor.unlock()
	return m.show()
}

func (m *Modal) show() error {
	content := dom.CreateElement("div", html.Attribute{Key: "class", Val: "wysiwyg-modal-content"})
	for _, field := range m.fields {
		el, err := renderField(field)
		if err != nil {
			return err
		}
		content.AppendChild(el)
	}

	header := dom.CreateElement("div", html.Attribute{Key: "class", Val: "wysiwyg-modal-header"})
	title := dom.CreateElement("span", html.Attribute{Key: "class", Val: "wysiwyg-modal-title"})
	title.AppendChild(dom.CreateText(m.title))
	header.AppendChild(title)

	footer := dom.CreateElement("div", html.Attribute{Key: "class", Val: "wysiwyg-modal-footer"})
	for _, action := range [][2]string{{"wysiwyg-modal-cancel", "Cancel"}, {"wysiwyg-modal-submit", "Submit"}} {
		button := dom.CreateElement("button",
			html.Attribute{Key: "class", Val: action[0]},
			html.Attribute{Key: "type", Val: "button"},
		)
		button.AppendChild(dom.CreateText(action[1]))
		footer.AppendChild(button)
	}

	m.el = dom.CreateElement("div", html.Attribute{Key: "class", Val: "wysiwyg-modal"})
	m.el.AppendChild(header)
	m.el.AppendChild(content)
	m.el.AppendChild(footer)

	m.editor.doc.AppendChild(m.editor.modals, m.el)
	m.editor.modal = m
	return nil
}

func renderField(field Field) (*html.Node, error) {
	label := dom.CreateElement("label")
	label.AppendChild(dom.CreateText(field.Label))
	input := dom.CreateElement("input", html.Attribute{Key: "name", Val: field.Name})

	switch field.Type {
	case FieldInput:
		dom.SetAttr(input, "type", "text")
		if field.Value != "" {
			dom.SetAttr(input, "value", field.Value)
		}
		el := dom.CreateElement("div", html.Attribute{Key: "class", Val: "wysiwyg-modal-input"})
		el.AppendChild(label)
		el.AppendChild(input)
		return el, nil
	case FieldCheckbox:
		dom.SetAttr(input, "type", "checkbox")
		if field.Checked {
			dom.SetAttr(input, "checked", "checked")
		}
		label.InsertBefore(input, label.FirstChild)
		el := dom.CreateElement("div", html.Attribute{Key: "class", Val: "wysiwyg-modal-checkbox"})
		el.AppendChild(label)
		return el, nil
	default:
		return nil, fmt.Errorf("unknown modal field type %d", field.Type)
	}
}

// Element returns the rendered dialog, nil once closed
func (m *Modal) Element() *html.Node {
	m.editor.lock()
	defer m.editor.unlock()
	return m.el
}

func (m *Modal) input(name string) *html.Node {
	if m.el == nil {
		return nil
	}
	for _, input := range dom.FindAll(m.el, "input[name]") {
		if value, _ := dom.GetAttr(input, "name"); value == name {
			return input
		}
	}
	return nil
}

// SetValue types into a text input
func (m *Modal) SetValue(name, value string) error {
	m.editor.lock()
	defer m.editor.unlock()

	input := m.input(name)
	if input == nil {
		return fmt.Errorf("modal has no field %s", name)
	}
	dom.SetAttr(input, "value", value)
	return nil
}

// SetChecked ticks or clears a checkbox
func (m *Modal) SetChecked(name string, checked bool) error {
	m.editor.lock()
	defer m.editor.unlock()

	input := m.input(name)
	if input == nil {
		return fmt.Errorf("modal has no field %s", name)
	}
	if checked {
		dom.SetAttr(input, "checked", "checked")
	} else {
		dom.RemoveAttr(input, "checked")
	}
	return nil
}

// values reads the rendered inputs back
func (m *Modal) values() ModalValues {
	values := make(ModalValues)
	for _, input := range dom.FindAll(m.el, "input[name]") {
		name, _ := dom.GetAttr(input, "name")
		if t, _ := dom.GetAttr(input, "type"); t == "checkbox" {
			values[name] = dom.HasAttr(input, "checked")
		} else {
			values[name], _ = dom.GetAttr(input, "value")
		}
	}
	return values
}

// Submit closes the dialog and hands the field values to the callback
func (m *Modal) Submit() {
	m.editor.lock()
	if m.el == nil {
		m.editor.unlock()
		return
	}
	values := m.values()
	m.close()
	m.editor.unlock()

	m.callback(values)
}

// Cancel closes the dialog and calls the callback with nil
func (m *Modal) Cancel() {
	m.editor.lock()
	if m.el == nil {
		m.editor.unlock()
		return
	}
	m.close()
	m.editor.unlock()

	m.callback(nil)
}

func (m *Modal) close() {
	if m.el.Parent != nil {
		m.editor.doc.Remove(m.el)
	}
	m.el = nil
	if m.editor.modal == m {
		m.editor.modal = nil
	}
}
