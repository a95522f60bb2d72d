package wysiwyg

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wysiwyg/internal/config"
	"wysiwyg/internal/dom"
	"wysiwyg/internal/edit"
	"wysiwyg/internal/sanitize"
)

func newEditor(t *testing.T, content string, opts ...Option) *Editor {
	t.Helper()
	cfg := config.Default()
	cfg.InitialContent = content
	e, err := New(dom.CreateElement("div"), cfg, opts...)
	require.NoError(t, err)
	return e
}

func content(t *testing.T, e *Editor) string {
	t.Helper()
	c, err := e.GetContent()
	require.NoError(t, err)
	return c
}

func historyLen(e *Editor) int {
	e.lock()
	defer e.unlock()
	return e.history.Len()
}

func TestNewRendersEditor(t *testing.T) {
	e := newEditor(t, "")

	assert.True(t, dom.HasClass(e.Host(), ClassEditor))
	children := dom.ElementChildren(e.Host())
	require.Len(t, children, 3)
	assert.Equal(t, e.Toolbar(), children[0])
	assert.Equal(t, e.Modals(), children[2])

	groups := dom.ElementChildren(e.Toolbar())
	require.Len(t, groups, 1)
	id, _ := dom.GetAttr(groups[0], "id")
	assert.Equal(t, "style", id)
	assert.Len(t, dom.ElementChildren(groups[0]), 4)

	area := children[1]
	style, _ := dom.GetAttr(area, "style")
	assert.Equal(t, "height: 80px;", style)
	style, _ = dom.GetAttr(e.Visual(), "style")
	assert.Equal(t, "height: 70px;", style)
	editable, _ := dom.GetAttr(e.Visual(), "contenteditable")
	assert.Equal(t, "true", editable)
	assert.True(t, dom.HasClass(e.CodeElement(), ClassHidden))
}

func TestNewResizable(t *testing.T) {
	cfg := config.Default()
	cfg.Resizable = true
	cfg.Height = 120
	e, err := New(dom.CreateElement("div"), cfg)
	require.NoError(t, err)

	style, _ := dom.GetAttr(e.Visual().Parent, "style")
	assert.Equal(t, "min-height: 120px; resize: vertical;", style)
	style, _ = dom.GetAttr(e.Visual(), "style")
	assert.Equal(t, "min-height: 110px;", style)
}

func TestNewErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Toolbar = []config.ToolbarGroup{{Name: "extra", Buttons: []string{"bold", "rainbow"}}}
	_, err := New(dom.CreateElement("div"), cfg)
	assert.ErrorContains(t, err, "unknown toolbar button: rainbow")

	cfg = config.Default()
	cfg.Height = 0
	_, err = New(dom.CreateElement("div"), cfg)
	assert.ErrorContains(t, err, "invalid editor config")

	_, err = New(dom.CreateText("host"), config.Default())
	assert.Error(t, err)
}

func TestInitializedEvent(t *testing.T) {
	var events []Event
	newEditor(t, "", WithListener(string(EventInitialized), func(ev Event) {
		events = append(events, ev)
	}))

	require.Len(t, events, 1)
	assert.Equal(t, EventInitialized, events[0].Type)
}

func TestSetContentUsesMarkers(t *testing.T) {
	e := newEditor(t, "")

	require.NoError(t, e.SetContent("a&nbsp;b"))
	assert.Equal(t, "a"+sanitize.NbspMarkup+"b", dom.InnerHTML(e.Visual()))
	assert.Equal(t, "a&nbsp;b", content(t, e))
}

func TestGetContentOfClearedEditor(t *testing.T) {
	e := newEditor(t, "<p><br></p>")
	assert.Equal(t, "", content(t, e))
}

func TestWrapInsideTagAndUndo(t *testing.T) {
	e := newEditor(t, "hello world")
	e.SelectText(0, 5)

	node := e.WrapInsideTag("b")
	require.NotNil(t, node)
	assert.Equal(t, "<b>hello</b> world", content(t, e))
	assert.Equal(t, 1, historyLen(e))

	require.NoError(t, e.Undo())
	assert.Equal(t, "hello world", content(t, e))

	require.NoError(t, e.Undo())
	assert.Equal(t, "hello world", content(t, e))
}

func TestWrapInsideTagWithoutSelection(t *testing.T) {
	e := newEditor(t, "hello")

	assert.Nil(t, e.WrapInsideTag("b"))
	assert.Equal(t, 0, historyLen(e))
	assert.Equal(t, "hello", content(t, e))
}

func TestToggleTwiceKeepsContent(t *testing.T) {
	e := newEditor(t, "abc")
	e.SelectText(3, 3)

	e.WrapInsideTag("b")
	e.WrapInsideTag("b")
	assert.Equal(t, "abc", content(t, e))
}

func TestToggleOffExistingTag(t *testing.T) {
	e := newEditor(t, "<b>x</b>")
	e.SelectText(0, 1)

	e.WrapInsideTag("b")
	assert.Equal(t, "x", content(t, e))
	assert.Equal(t, "x", e.SelectedText())
}

func TestClearStyle(t *testing.T) {
	e := newEditor(t, "<b>one</b> <i>two</i>")
	e.SelectText(0, 7)

	e.ClearStyle()
	assert.Equal(t, "one two", content(t, e))
}

func TestPaste(t *testing.T) {
	e := newEditor(t, "ab")
	e.SelectText(2, 2)

	require.NoError(t, e.Paste(edit.ClipboardData{edit.MIMEText: "c\nd"}))
	assert.Equal(t, "abc<br>d", content(t, e))
	assert.Equal(t, 1, historyLen(e))
}

func TestKeyboardShortcuts(t *testing.T) {
	e := newEditor(t, "ab")

	e.SelectText(1, 1)
	assert.True(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: "Enter"}))
	assert.Equal(t, "a<br>b", content(t, e))
	assert.True(t, e.HandleKey(KeyEvent{Type: KeyUp, Key: "Enter"}))
	assert.Equal(t, "a<br>b", content(t, e))

	assert.True(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: " ", Ctrl: true}))
	assert.Equal(t, "a<br>&nbsp;b", content(t, e))

	assert.True(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: "z", Meta: true}))
	assert.Equal(t, "a<br>b", content(t, e))

	e.SelectText(0, 1)
	assert.True(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: "B", Meta: true}))
	assert.True(t, e.HandleKey(KeyEvent{Type: KeyUp, Key: "B", Meta: true}))
	assert.Equal(t, "<b>a</b><br>b", content(t, e))

	assert.False(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: "x", Ctrl: true}))
}

func TestShortcutOnNestedTags(t *testing.T) {
	e := newEditor(t, "")
	require.NoError(t, e.SetContent("a<b><b>c</b></b>d"))
	e.SelectText(0, 3)

	assert.True(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: "b", Ctrl: true}))
	assert.Equal(t, "acd", content(t, e))
	assert.Equal(t, "c", e.SelectedText())
}

func TestTypingSnapshotIsThrottled(t *testing.T) {
	cfg := config.Default()
	cfg.SnapshotInterval = 10 * time.Millisecond
	e, err := New(dom.CreateElement("div"), cfg)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.False(t, e.HandleKey(KeyEvent{Type: KeyDown, Key: "a"}))
	}
	assert.Eventually(t, func() bool { return historyLen(e) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, historyLen(e))
}

func TestCodeView(t *testing.T) {
	var modes []Mode
	e := newEditor(t, "<b>x</b>")
	e.On(string(EventModeChanged), func(ev Event) { modes = append(modes, ev.Mode) })

	require.NoError(t, e.ToggleCodeView())
	assert.Equal(t, ModeCode, e.Mode())
	assert.True(t, dom.HasClass(e.Visual(), ClassHidden))
	assert.False(t, dom.HasClass(e.CodeElement(), ClassHidden))
	assert.Equal(t, "<b>x</b>", dom.TextContent(e.CodeElement()))

	assert.True(t, e.Button("bold").(*ToolButton).Disabled())

	require.NoError(t, e.SetContent("  <i>y</i>  \n  z"))
	assert.Equal(t, "<i>y</i>\nz", content(t, e))

	e.SelectText(0, 1)
	assert.Nil(t, e.WrapInsideTag("b"))

	require.NoError(t, e.ToggleCodeView())
	assert.Equal(t, ModeVisual, e.Mode())
	assert.Equal(t, "<i>y</i>\nz", dom.InnerHTML(e.Visual()))
	assert.Nil(t, e.CodeElement().FirstChild)
	assert.False(t, e.Button("bold").(*ToolButton).Disabled())

	assert.Equal(t, []Mode{ModeCode, ModeVisual}, modes)
}

func TestCodeViewButtonStaysEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Toolbar = config.Preset("full")
	e, err := New(dom.CreateElement("div"), cfg)
	require.NoError(t, err)

	e.Button("codeview").Click()
	assert.Equal(t, ModeCode, e.Mode())
	assert.True(t, e.Button("italic").(*ToolButton).Disabled())

	e.Button("codeview").Click()
	assert.Equal(t, ModeVisual, e.Mode())
}

func TestInsertLink(t *testing.T) {
	e := newEditor(t, "see docs")
	e.SelectText(4, 8)

	modal, err := e.InsertLink()
	require.NoError(t, err)
	require.NotNil(t, modal)
	assert.Equal(t, modal, e.Modal())
	assert.Equal(t, "docs", modal.values().String("text"))
	assert.True(t, modal.values().Bool("openInNewTab"))

	// the selection moves while the dialog is open
	e.SelectText(0, 0)

	require.NoError(t, modal.SetValue("href", "https://example.com"))
	modal.Submit()

	assert.Nil(t, e.Modal())
	assert.Nil(t, e.Modals().FirstChild)
	assert.Equal(t, `see <a href="https://example.com" target="_blank">docs</a>`, content(t, e))
}

func TestInsertLinkRefusesUnsafeHref(t *testing.T) {
	e := newEditor(t, "see docs")
	e.SelectText(4, 8)

	modal, err := e.InsertLink()
	require.NoError(t, err)
	require.NoError(t, modal.SetValue("href", "javascript:alert(1)"))
	require.NoError(t, modal.SetChecked("openInNewTab", false))
	modal.Submit()

	assert.Equal(t, "see docs", content(t, e))
	assert.Equal(t, 0, historyLen(e))
}

func TestInsertLinkCancel(t *testing.T) {
	e := newEditor(t, "see docs")
	e.SelectText(4, 8)

	modal, err := e.InsertLink()
	require.NoError(t, err)
	modal.Cancel()

	assert.Nil(t, e.Modal())
	assert.Equal(t, "see docs", content(t, e))
}

func TestInsertLinkWithoutSelection(t *testing.T) {
	e := newEditor(t, "see docs")

	modal, err := e.InsertLink()
	require.NoError(t, err)
	assert.Nil(t, modal)
}

func TestModalUnknownField(t *testing.T) {
	e := newEditor(t, "")

	err := e.NewModal("Broken", []Field{{Type: FieldType(42), Name: "x"}}, func(ModalValues) {}).Show()
	assert.ErrorContains(t, err, "unknown modal field type 42")
	assert.Nil(t, e.Modals().FirstChild)
}

func TestModalSetValueUnknownField(t *testing.T) {
	e := newEditor(t, "")

	modal := e.NewModal("Ask", []Field{InputField("Name", "name", "")}, func(ModalValues) {})
	require.NoError(t, modal.Show())
	assert.Error(t, modal.SetValue("age", "3"))
}

func TestCustomButton(t *testing.T) {
	cfg := config.Default()
	cfg.InitialContent = "hey"
	cfg.Toolbar = []config.ToolbarGroup{{Name: "extra", Buttons: []string{"shout"}}}
	e, err := New(dom.CreateElement("div"), cfg, WithButtons(map[string]ButtonFactory{
		"shout": func(e *Editor) Button {
			return NewToolButton(e, "icon-shout", "Shout", func(e *Editor) error {
				return e.ReplaceByHTML("<b>!</b>")
			}, false)
		},
	}))
	require.NoError(t, err)

	e.SelectText(3, 3)
	e.Button("shout").Click()
	assert.Equal(t, "hey<b>!</b>", content(t, e))
	assert.Nil(t, e.Button("bold"))
}

func TestOffByNamespace(t *testing.T) {
	e := newEditor(t, "")
	var ui, plain int
	e.On("mode-changed.ui", func(Event) { ui++ })
	id := e.On("mode-changed", func(Event) { plain++ })

	e.Off("*.ui", 0)
	require.NoError(t, e.ToggleCodeView())
	assert.Equal(t, 0, ui)
	assert.Equal(t, 1, plain)

	e.Off("mode-changed", id)
	require.NoError(t, e.ToggleCodeView())
	assert.Equal(t, 1, plain)
}

func TestDestroy(t *testing.T) {
	page := dom.CreateElement("body")
	host := dom.CreateElement("div")
	page.AppendChild(host)

	cfg := config.Default()
	cfg.InitialContent = "hello"
	e, err := New(host, cfg)
	require.NoError(t, err)
	var calls int
	e.On(string(EventModeChanged), func(Event) { calls++ })

	e.Destroy()
	e.Destroy()

	assert.Nil(t, page.FirstChild)
	assert.Nil(t, host.FirstChild)
	assert.False(t, dom.HasClass(host, ClassEditor))

	e.SelectText(0, 5)
	assert.Nil(t, e.WrapInsideTag("b"))
	require.NoError(t, e.ToggleCodeView())
	assert.Equal(t, 0, calls)
	assert.Equal(t, "", content(t, e))
}

func TestConcurrentUse(t *testing.T) {
	cfg := config.Default()
	cfg.SnapshotInterval = time.Millisecond
	e, err := New(dom.CreateElement("div"), cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.SetContent("<b>a</b>b")
				e.SelectText(0, 2)
				e.HandleKey(KeyEvent{Type: KeyDown, Key: "x"})
				e.WrapInsideTag("i")
				_, _ = e.GetContent()
			}
		}()
	}
	wg.Wait()
	e.Destroy()
}
