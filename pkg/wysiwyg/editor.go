package wysiwyg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"wysiwyg/internal/config"
	"wysiwyg/internal/css"
	"wysiwyg/internal/dom"
	"wysiwyg/internal/edit"
	"wysiwyg/internal/history"
	"wysiwyg/internal/sanitize"
	"wysiwyg/internal/selection"
	"wysiwyg/internal/serialize"
)

// Class names of the rendered editor
const (
	ClassEditor      = "wysiwyg"
	ClassToolbar     = "wysiwyg-toolbar"
	ClassButtonGroup = "wysiwyg-btn-group"
	ClassEditingArea = "wysiwyg-editing-area"
	ClassVisual      = "wysiwyg-visual"
	ClassCode        = "wysiwyg-code"
	ClassModals      = "wysiwyg-modals"
	ClassHidden      = "wysiwyg-hidden"
)

// Editor is a rich-text editor rendered into a host element. Every exported
// method is safe for concurrent use.
type Editor struct {
	mu  sync.Mutex
	cfg config.Config
	log *logrus.Entry

	host    *html.Node
	toolbar *html.Node
	area    *html.Node
	visual  *html.Node
	code    *html.Node
	modals  *html.Node

	doc    *dom.Document
	sel    *selection.Adapter
	engine *edit.Engine
	parser *css.Parser

	mode            Mode
	codeView        CodeView
	codeViewFactory CodeViewFactory
	factories       map[string]ButtonFactory
	buttons         []Button
	buttonIndex     map[string]Button
	modal           *Modal

	history   *history.History
	snapshots *history.Throttle

	listeners listeners
	pending   []Event
	destroyed bool
}

// New renders an editor into host
func New(host *html.Node, cfg config.Config, opts ...Option) (*Editor, error) {
	if !dom.IsElement(host) {
		return nil, fmt.Errorf("editor host must be an element")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}

	e := &Editor{
		cfg:             cfg,
		log:             logrus.WithField("component", "editor"),
		host:            host,
		doc:             dom.NewDocument(),
		parser:          css.NewParser(),
		codeViewFactory: NewTextareaView,
		factories:       make(map[string]ButtonFactory),
		buttonIndex:     make(map[string]Button),
		history:         history.New(cfg.HistorySize),
	}
	for id, factory := range builtinButtons {
		e.factories[id] = factory
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logrus.NewEntry(logrus.StandardLogger())
	}

	// Step 1: toolbar
	e.toolbar = dom.CreateElement("div", html.Attribute{Key: "class", Val: ClassToolbar})
	for _, group := range cfg.Toolbar {
		groupEl := dom.CreateElement("div",
			html.Attribute{Key: "id", Val: group.Name},
			html.Attribute{Key: "class", Val: ClassButtonGroup},
		)
		for _, id := range group.Buttons {
			factory, ok := e.factories[id]
			if !ok {
				return nil, fmt.Errorf("unknown toolbar button: %s", id)
			}
			button := factory(e)
			groupEl.AppendChild(button.Render())
			e.buttons = append(e.buttons, button)
			e.buttonIndex[id] = button
		}
		e.toolbar.AppendChild(groupEl)
	}

	// Step 2: editing area
	areaStyle, visualStyle := e.areaStyles()
	e.area = dom.CreateElement("div",
		html.Attribute{Key: "class", Val: ClassEditingArea},
		html.Attribute{Key: "style", Val: areaStyle},
	)
	e.visual = dom.CreateElement("div",
		html.Attribute{Key: "class", Val: ClassVisual},
		html.Attribute{Key: "contenteditable", Val: "true"},
		html.Attribute{Key: "style", Val: visualStyle},
	)
	e.code = dom.CreateElement("div", html.Attribute{Key: "class", Val: ClassCode + " " + ClassHidden})
	e.area.AppendChild(e.visual)
	e.area.AppendChild(e.code)
	if err := e.doc.SetInnerHTML(e.visual, withMarkers(cfg.InitialContent)); err != nil {
		return nil, fmt.Errorf("failed to load initial content: %w", err)
	}

	// Step 3: modals container
	e.modals = dom.CreateElement("div", html.Attribute{Key: "class", Val: ClassModals})

	dom.AddClass(host, ClassEditor)
	e.doc.Append(host, e.toolbar, e.area, e.modals)

	e.sel = selection.New(e.doc, e.visual)
	e.engine = edit.New(e.sel)
	e.snapshots = history.NewThrottle(cfg.SnapshotInterval, e.throttledSnapshot)

	e.log.WithField("buttons", len(e.buttons)).Debug("editor initialized")
	e.listeners.dispatch([]Event{{Type: EventInitialized, Mode: ModeVisual}})
	return e, nil
}

func (e *Editor) areaStyles() (area, visual string) {
	property := "height"
	if e.cfg.Resizable {
		property = "min-height"
	}
	area = e.parser.Update("", property, fmt.Sprintf("%dpx", e.cfg.Height))
	if e.cfg.Resizable {
		area = e.parser.Update(area, "resize", "vertical")
	}
	visual = e.parser.Update("", property, fmt.Sprintf("%dpx", e.cfg.Height-10))
	return area, visual
}

// withMarkers turns every &nbsp; entity into the non-breaking space marker
func withMarkers(content string) string {
	return strings.ReplaceAll(content, "&nbsp;", sanitize.NbspMarkup)
}

func (e *Editor) lock() {
	e.mu.Lock()
}

// unlock releases the editor and delivers the events queued meanwhile
func (e *Editor) unlock() {
	events := e.pending
	e.pending = nil
	e.mu.Unlock()
	e.listeners.dispatch(events)
}

func (e *Editor) emit(ev Event) {
	e.pending = append(e.pending, ev)
}

// editable reports whether a formatting command may run now
func (e *Editor) editable() bool {
	return !e.destroyed && e.mode == ModeVisual && e.sel.IsSelectionInsideNode(e.visual)
}

// Host returns the element the editor was rendered into
func (e *Editor) Host() *html.Node {
	return e.host
}

// Toolbar returns the toolbar element
func (e *Editor) Toolbar() *html.Node {
	return e.toolbar
}

// Visual returns the editable root
func (e *Editor) Visual() *html.Node {
	return e.visual
}

// CodeElement returns the element hosting the source editor
func (e *Editor) CodeElement() *html.Node {
	return e.code
}

// Modals returns the container open dialogs are rendered into
func (e *Editor) Modals() *html.Node {
	return e.modals
}

// Mode returns the surface currently shown
func (e *Editor) Mode() Mode {
	e.lock()
	defer e.unlock()
	return e.mode
}

// Modal returns the open dialog, if any
func (e *Editor) Modal() *Modal {
	e.lock()
	defer e.unlock()
	return e.modal
}

// On registers a handler for an event, optionally namespaced as "type.ns"
func (e *Editor) On(event string, handler Handler) ListenerID {
	return e.listeners.add(event, handler)
}

// Off removes handlers registered for event. A zero id removes all of them.
func (e *Editor) Off(event string, id ListenerID) {
	e.listeners.remove(event, id)
}

// Select sets the selection inside the editor
func (e *Editor) Select(startNode *html.Node, startOffset int, endNode *html.Node, endOffset int) {
	e.lock()
	defer e.unlock()
	e.sel.Select(startNode, startOffset, endNode, endOffset)
}

// SelectText selects the code points [start, end) of the visual text
func (e *Editor) SelectText(start, end int) {
	e.lock()
	defer e.unlock()
	e.sel.SelectText(start, end)
}

// SelectedText returns the text of the current selection
func (e *Editor) SelectedText() string {
	e.lock()
	defer e.unlock()
	if r := e.sel.Current().Range; r != nil {
		return r.String()
	}
	return ""
}

// SetContent replaces the content of the current surface
func (e *Editor) SetContent(content string) error {
	e.lock()
	defer e.unlock()
	if e.destroyed {
		return nil
	}

	content = withMarkers(content)
	if e.mode == ModeCode {
		e.codeView.SetText(content)
		return nil
	}
	if err := e.doc.SetInnerHTML(e.visual, content); err != nil {
		return fmt.Errorf("failed to set content: %w", err)
	}
	return nil
}

// GetContent returns the canonical content of the current surface
func (e *Editor) GetContent() (string, error) {
	e.lock()
	defer e.unlock()

	var code string
	switch {
	case e.destroyed:
		return "", nil
	case e.mode == ModeCode:
		code = serialize.CodeView(e.codeView.Text())
	default:
		code = dom.InnerHTML(e.visual)
	}
	return serialize.Content(code)
}

func (e *Editor) takeSnapshot() {
	e.history.Push(dom.InnerHTML(e.visual))
}

func (e *Editor) throttledSnapshot() {
	e.lock()
	defer e.unlock()
	if e.destroyed || e.mode != ModeVisual {
		return
	}
	e.takeSnapshot()
	e.log.WithField("snapshots", e.history.Len()).Debug("typing snapshot taken")
}

// WrapInsideTag toggles tag at the selection. It returns the node produced by
// the operation, nil when the selection is outside the editor.
func (e *Editor) WrapInsideTag(tag string) *html.Node {
	e.lock()
	defer e.unlock()
	if !e.editable() {
		return nil
	}

	e.takeSnapshot()
	e.log.WithField("tag", tag).Debug("wrap selection")
	return e.engine.WrapInsideTag(tag, edit.Options{})
}

// ReplaceByHTML replaces the selection by markup
func (e *Editor) ReplaceByHTML(markup string) error {
	e.lock()
	defer e.unlock()
	if !e.editable() {
		return nil
	}

	e.takeSnapshot()
	if err := e.engine.ReplaceSelectionByHTML(markup); err != nil {
		return fmt.Errorf("failed to replace selection: %w", err)
	}
	return nil
}

// ClearStyle removes the formatting of the selected elements
func (e *Editor) ClearStyle() {
	e.lock()
	defer e.unlock()
	if !e.editable() {
		return
	}

	e.takeSnapshot()
	e.engine.ClearSelectionStyle()
}

// Paste inserts clipboard content at the selection
func (e *Editor) Paste(data edit.ClipboardData) error {
	e.lock()
	defer e.unlock()
	if !e.editable() {
		return nil
	}

	e.takeSnapshot()
	e.log.WithField("html", data.Has(edit.MIMEHTML)).Debug("paste")
	if err := e.engine.Paste(data); err != nil {
		return fmt.Errorf("failed to paste: %w", err)
	}
	return nil
}

// InsertLink opens the link dialog for the current selection. The selection is
// captured now and restored when the dialog is submitted. It returns nil when
// there is nothing selected in the editor.
func (e *Editor) InsertLink() (*Modal, error) {
	e.lock()
	defer e.unlock()
	if !e.editable() {
		return nil, nil
	}

	saved := e.sel.Current()
	modal := e.newModal("Insert a link", []Field{
		InputField("Text", "text", saved.Range.String()),
		InputField("URL", "href", ""),
		CheckboxField("Open in a new window", "openInNewTab", true),
	}, func(values ModalValues) {
		if values != nil {
			e.submitLink(saved, values)
		}
	})
	if err := modal.show(); err != nil {
		return nil, err
	}
	return modal, nil
}

func (e *Editor) submitLink(saved selection.Current, values ModalValues) {
	e.lock()
	defer e.unlock()
	if e.destroyed {
		return
	}

	href := strings.TrimSpace(values.String("href"))
	if !sanitize.SafeHref(href) {
		e.log.WithField("href", href).Warn("refused link target")
		return
	}

	e.sel.Restore(saved)
	if !e.editable() {
		return
	}
	e.takeSnapshot()
	e.engine.WrapInsideLink(values.String("text"), href, values.Bool("openInNewTab"))
}

// ToggleCodeView switches between the visual surface and the source editor
func (e *Editor) ToggleCodeView() error {
	e.lock()
	defer e.unlock()
	if e.destroyed {
		return nil
	}

	if e.mode == ModeVisual {
		e.mode = ModeCode
		dom.AddClass(e.visual, ClassHidden)
		dom.RemoveClass(e.code, ClassHidden)
		e.codeView = e.codeViewFactory(e.code, dom.InnerHTML(e.visual))
	} else {
		e.mode = ModeVisual
		dom.AddClass(e.code, ClassHidden)
		dom.RemoveClass(e.visual, ClassHidden)
		code := serialize.CodeView(e.codeView.Text())
		e.codeView.Destroy()
		e.codeView = nil
		e.doc.RemoveNodes(e.code, func(*html.Node) bool { return true })
		if err := e.doc.SetInnerHTML(e.visual, code); err != nil {
			return fmt.Errorf("failed to leave code view: %w", err)
		}
	}

	for _, b := range e.buttons {
		if aware, ok := b.(modeAware); ok {
			aware.modeChanged(e.mode)
		}
	}
	e.log.WithField("mode", e.mode).Debug("mode changed")
	e.emit(Event{Type: EventModeChanged, Mode: e.mode})
	return nil
}

// Undo restores the latest snapshot. An empty history leaves the content as is.
func (e *Editor) Undo() error {
	e.lock()
	defer e.unlock()
	if e.destroyed || e.mode != ModeVisual {
		return nil
	}

	snapshot, ok := e.history.Pop()
	if !ok {
		return nil
	}
	if err := e.doc.SetInnerHTML(e.visual, snapshot); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	return nil
}

// Destroy removes everything the editor rendered and drops its listeners
func (e *Editor) Destroy() {
	e.lock()
	if e.destroyed {
		e.unlock()
		return
	}
	e.destroyed = true
	e.snapshots.Stop()

	if e.codeView != nil {
		e.codeView.Destroy()
		e.codeView = nil
	}
	e.modal = nil
	e.sel.Clear()
	for _, n := range []*html.Node{e.modals, e.area, e.toolbar} {
		if n.Parent != nil {
			e.doc.Remove(n)
		}
	}
	dom.RemoveClass(e.host, ClassEditor)
	if e.host.Parent != nil {
		e.doc.Remove(e.host)
	}
	e.pending = nil
	e.unlock()

	e.listeners.clear()
	e.log.Debug("editor destroyed")
}
