package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/board/internal/board"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
	"github.com/inamate/board/internal/render"
	"github.com/inamate/board/internal/selector"
)

const sceneJSON = `{
  "elements": [
    {"uuid": "a", "type": "rect", "x": 0, "y": 0, "w": 100, "h": 50, "detail": {"background": "#f00"}},
    {"uuid": "b", "type": "rect", "x": 200, "y": 200, "w": 50, "h": 50, "detail": {}},
    {"uuid": "g", "type": "group", "x": 400, "y": 100, "w": 100, "h": 100, "detail": {"children": [
      {"uuid": "c", "type": "circle", "x": 10, "y": 10, "w": 20, "h": 20, "detail": {}}
    ]}}
  ]
}`

type recorder struct {
	frames  []render.Frame
	changes []board.ChangeType
	selects [][]string
}

func newEditor(t *testing.T) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := New(Options{OnFrame: func(f render.Frame) { rec.frames = append(rec.frames, f) }})
	e.Resize(800, 600, 1)
	require.NoError(t, e.LoadScene([]byte(sceneJSON)))

	board.On(e.Events(), func(ev board.ChangeEvent) { rec.changes = append(rec.changes, ev.Type) })
	board.On(e.Events(), func(ev selector.SelectEvent) { rec.selects = append(rec.selects, ev.UUIDs) })
	return e, rec
}

func TestLoadSceneRejectsInvalidJSON(t *testing.T) {
	e := New(Options{})
	err := e.LoadScene([]byte(`{"elements": [{"uuid": "x", "type": "blob"}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrUnknownElementType)
}

func TestLoadSampleScene(t *testing.T) {
	e := New(Options{})
	e.LoadSampleScene()
	assert.NotEmpty(t, e.Scene().Elements)
	assert.NotEmpty(t, e.Frame().Scene)
}

func TestPointerDragEmitsChange(t *testing.T) {
	e, rec := newEditor(t)

	e.PointStart(50, 25)
	e.PointMove(60, 35)
	e.PointEnd(60, 35)

	a := e.Scene().Find("a")
	assert.Equal(t, 10.0, a.X)
	assert.Equal(t, 10.0, a.Y)
	assert.Equal(t, []board.ChangeType{board.ChangeDragElement}, rec.changes)
	assert.Equal(t, [][]string{{"a"}}, rec.selects)
	assert.Equal(t, []string{"a"}, e.Selection())

	frame := e.Frame()
	assert.Len(t, frame.Scene, 3)
	assert.NotEmpty(t, frame.Helper)
}

func TestSelectEntersGroup(t *testing.T) {
	e, _ := newEditor(t)

	e.Select([]string{"c"})
	assert.Equal(t, []string{"c"}, e.Selection())
	require.Len(t, e.State().GroupQueue, 1)
	assert.Equal(t, "g", e.State().GroupQueue[0].UUID)

	e.ClearSelection()
	assert.Empty(t, e.Selection())
	assert.Empty(t, e.State().GroupQueue)

	e.SelectPositions([]document.Position{{0}, {1}})
	assert.Equal(t, []string{"a", "b"}, e.Selection())
	assert.Equal(t, selector.ActionDragListEnd, e.State().ActionType)
}

func TestAddElementCentersInView(t *testing.T) {
	e, rec := newEditor(t)

	elem, err := e.AddElement(document.ElementTypeRect, document.Element{}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, elem.UUID)
	assert.Equal(t, geom.Size{X: 300, Y: 225, W: 200, H: 150}, elem.Size())
	assert.Equal(t, document.Position{3}, e.Scene().Position(elem.UUID))
	assert.Equal(t, []board.ChangeType{board.ChangeAddElement}, rec.changes)

	_, err = e.AddElement(document.ElementTypeRect, document.Element{}, document.Position{9})
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestDeleteElementDropsSelection(t *testing.T) {
	e, rec := newEditor(t)
	e.Select([]string{"a"})

	require.NoError(t, e.DeleteElement("a"))
	assert.Nil(t, e.Scene().Find("a"))
	assert.Empty(t, e.Selection())
	assert.Equal(t, []board.ChangeType{board.ChangeDeleteElement}, rec.changes)

	assert.ErrorIs(t, e.DeleteElement("a"), ErrElementNotFound)
}

func TestMoveElementIntoGroup(t *testing.T) {
	e, rec := newEditor(t)

	require.NoError(t, e.MoveElement(document.Position{0}, document.Position{2, 0}))
	assert.Equal(t, document.Position{1, 0}, e.Scene().Position("a"))
	assert.Equal(t, []board.ChangeType{board.ChangeMoveElement}, rec.changes)

	assert.ErrorIs(t, e.MoveElement(document.Position{7}, document.Position{0}), ErrElementNotFound)
	assert.ErrorIs(t, e.MoveElement(document.Position{0}, document.Position{5, 0}), ErrInvalidPosition)
}

func TestUpdateElementRefreshesSelection(t *testing.T) {
	e, rec := newEditor(t)
	e.Select([]string{"a"})

	w := 200.0
	elem, err := e.UpdateElement("a", document.ElementPatch{W: &w})
	require.NoError(t, err)
	assert.Equal(t, 200.0, elem.W)

	st := e.State()
	assert.Equal(t, []string{"a"}, e.Selection())
	require.Len(t, st.SelectedElementListVertexes, 1)
	assert.Equal(t, geom.Point{X: 200, Y: 0}, st.SelectedElementListVertexes[0][1])
	assert.Equal(t, []board.ChangeType{board.ChangeUpdateElement}, rec.changes)

	_, err = e.UpdateElement("missing", document.ElementPatch{W: &w})
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestScaleAndRender(t *testing.T) {
	e, _ := newEditor(t)

	vsi := e.Scale(2, 0, 0)
	assert.Equal(t, 2.0, vsi.Scale)
	assert.Equal(t, vsi, e.ViewScaleInfo())

	var frame render.Frame
	require.NoError(t, json.Unmarshal([]byte(e.Render()), &frame))
	require.NotEmpty(t, frame.Scene)
	assert.Equal(t, []float64{2, 0, 0, 2, 0, 0}, frame.Scene[0].Transform)
	assert.Equal(t, board.FrameComplete, e.Status())
}

func TestSceneJSONRoundTrip(t *testing.T) {
	e, _ := newEditor(t)

	other := New(Options{})
	require.NoError(t, other.LoadScene([]byte(e.SceneJSON())))
	assert.Equal(t, e.SceneJSON(), other.SceneJSON())
}
