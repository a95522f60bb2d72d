package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContentsInsideText(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<b>hello</b>")
	text := body.FirstChild.FirstChild

	r := d.NewRange()
	r.SetStart(text, 1)
	r.SetEnd(text, 3)
	frag := r.ExtractContents()

	assert.Equal(t, "el", InnerHTML(frag))
	assert.Equal(t, "<b>hlo</b>", InnerHTML(body))
	assert.True(t, r.Collapsed())
	assert.Equal(t, Boundary{Node: text, Offset: 1}, r.Start())
}

func TestExtractContentsAcrossElements(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<i>ab</i>cd")
	ab := body.FirstChild.FirstChild
	cd := body.LastChild

	r := d.NewRange()
	r.SetStart(ab, 1)
	r.SetEnd(cd, 1)
	frag := r.ExtractContents()

	assert.Equal(t, "<i>b</i>c", InnerHTML(frag))
	assert.Equal(t, "<i>a</i>d", InnerHTML(body))
	assert.Equal(t, Boundary{Node: body, Offset: 1}, r.Start())
	assert.True(t, r.Collapsed())
}

func TestExtractContentsMovesContainedNodes(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "one<b>two</b><i>three</i>four")

	r := d.NewRange()
	r.SetStart(body, 1)
	r.SetEnd(body, 3)
	frag := r.ExtractContents()

	assert.Equal(t, "<b>two</b><i>three</i>", InnerHTML(frag))
	assert.Equal(t, "onefour", InnerHTML(body))
	assert.Equal(t, Boundary{Node: body, Offset: 1}, r.Start())
}

func TestDeleteContents(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<p>one</p><p>two</p>")
	one := body.FirstChild.FirstChild
	two := body.LastChild.FirstChild

	r := d.NewRange()
	r.SetStart(one, 1)
	r.SetEnd(two, 2)
	r.DeleteContents()

	assert.Equal(t, "<p>o</p><p>o</p>", InnerHTML(body))
	assert.Equal(t, Boundary{Node: body, Offset: 1}, r.Start())
}

func TestInsertNodeSplitsText(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "abc")
	text := body.FirstChild

	r := d.RangeAt(text, 1)
	r.InsertNode(CreateElement("b"))

	assert.Equal(t, "a<b></b>bc", InnerHTML(body))
	assert.Equal(t, Boundary{Node: text, Offset: 1}, r.Start())
	assert.Equal(t, Boundary{Node: body, Offset: 2}, r.End())
}

func TestInsertNodeFragment(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<b>x</b>")

	nodes, err := ParseFragment("1<i>2</i>")
	require.NoError(t, err)

	r := d.RangeAt(body, 1)
	r.InsertNode(FragmentOf(nodes))

	assert.Equal(t, "<b>x</b>1<i>2</i>", InnerHTML(body))
	assert.Equal(t, Boundary{Node: body, Offset: 3}, r.End())
}

func TestRangesFollowRemoval(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<b>x</b>y")
	b := body.FirstChild

	after := d.RangeAt(body, 2)
	inside := d.RangeAt(b.FirstChild, 1)
	d.Remove(b)

	assert.Equal(t, Boundary{Node: body, Offset: 1}, after.Start())
	assert.Equal(t, Boundary{Node: body, Offset: 0}, inside.Start())
}

func TestRangesFollowInsertion(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<b>x</b>y")

	r := d.RangeAt(body, 1)
	d.Prepend(body, CreateText("a"), CreateText("b"))

	assert.Equal(t, Boundary{Node: body, Offset: 3}, r.Start())
}

func TestRangesFollowSplitText(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "hello")
	text := body.FirstChild

	r := d.RangeAt(text, 4)
	tail := d.SplitText(text, 2)

	assert.Equal(t, "he", text.Data)
	assert.Equal(t, "llo", tail.Data)
	assert.Equal(t, Boundary{Node: tail, Offset: 2}, r.Start())
}

func TestRangesFollowUnwrap(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "a<b>x</b>c")
	b := body.FirstChild.NextSibling
	x := b.FirstChild

	r := d.NewRange()
	r.SetStart(x, 0)
	r.SetEnd(x, 1)
	d.Unwrap(b)

	assert.Equal(t, "axc", InnerHTML(body))
	assert.Equal(t, Boundary{Node: body, Offset: 1}, r.Start())
	assert.True(t, r.Collapsed())
}

func TestSetStartAfterEndCollapses(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "abcdef")
	text := body.FirstChild

	r := d.NewRange()
	r.SetStart(text, 1)
	r.SetEnd(text, 2)
	r.SetStart(text, 4)

	assert.True(t, r.Collapsed())
	assert.Equal(t, 4, r.EndOffset())
}

func TestRangeString(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<b>hello</b> world")

	r := d.NewRange()
	r.SetStart(body.FirstChild.FirstChild, 2)
	r.SetEnd(body.LastChild, 3)

	assert.Equal(t, "llo wo", r.String())
	assert.Equal(t, body, r.CommonAncestorContainer())
}

func TestComparePoints(t *testing.T) {
	body := mustContainer(t, "<b>x</b>yz")
	b, yz := body.FirstChild, body.LastChild

	assert.Equal(t, -1, ComparePoints(Boundary{Node: b, Offset: 1}, Boundary{Node: yz, Offset: 0}))
	assert.Equal(t, 1, ComparePoints(Boundary{Node: body, Offset: 1}, Boundary{Node: b, Offset: 1}))
	assert.Equal(t, 0, ComparePoints(Boundary{Node: yz, Offset: 1}, Boundary{Node: yz, Offset: 1}))
	assert.True(t, Precedes(b, yz))
	assert.False(t, Precedes(yz, b))
}

func TestSelectionContainsNode(t *testing.T) {
	d := NewDocument()
	body := mustContainer(t, "<b>x</b>yz")
	b, yz := body.FirstChild, body.LastChild

	sel := NewSelection()
	r := d.NewRange()
	r.SetStart(yz, 0)
	r.SetEnd(yz, 2)
	sel.AddRange(r)
	assert.False(t, sel.ContainsNode(b, true))
	assert.Equal(t, yz, sel.AnchorNode())

	sel.RemoveAllRanges()
	r = d.NewRange()
	r.SetStart(b.FirstChild, 1)
	r.SetEnd(yz, 1)
	sel.AddRange(r)
	assert.True(t, sel.ContainsNode(b, true))
	assert.False(t, sel.ContainsNode(b, false))

	sel.DeleteFromDocument()
	assert.Equal(t, "<b>x</b>z", InnerHTML(body))
}
