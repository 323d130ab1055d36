package render

import (
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// Frame is one painted pass: scene content first, helper affordances on top.
type Frame struct {
	Scene  []DrawCommand `json:"scene"`
	Helper []DrawCommand `json:"helper"`
}

// SceneRenderer compiles scene elements into draw commands. Middlewares paint selection
// affordances onto Helper during the same pass; OnFrame receives the finished frame.
type SceneRenderer struct {
	scene  Layer
	helper Layer
	last   Frame

	OnFrame func(Frame)
}

func NewSceneRenderer(onFrame func(Frame)) *SceneRenderer {
	return &SceneRenderer{OnFrame: onFrame}
}

// Helper is the layer selection affordances are drawn on.
func (r *SceneRenderer) Helper() *Layer {
	return &r.helper
}

// BeginFrame clears both layers.
func (r *SceneRenderer) BeginFrame() {
	r.scene.Reset()
	r.helper.Reset()
}

// DrawData compiles the scene in painter's order (back to front).
func (r *SceneRenderer) DrawData(scene *document.Scene, vsi geom.ViewScaleInfo, _ geom.ViewSizeInfo) {
	base := vsi.Matrix()
	for _, elem := range scene.Data().Elements {
		compileElement(elem, base, &r.scene)
	}
}

// EndFrame publishes the frame.
func (r *SceneRenderer) EndFrame() {
	r.last = Frame{Scene: r.scene.Commands(), Helper: r.helper.Commands()}
	if r.OnFrame != nil {
		r.OnFrame(r.last)
	}
}

// LastFrame returns the most recently published frame.
func (r *SceneRenderer) LastFrame() Frame {
	return r.last
}

// ElementMatrix maps element-local coordinates (0..w, 0..h) into its parent frame: translate
// to the origin, then rotate about the element center.
func ElementMatrix(elem *document.Element) geom.Matrix2D {
	m := geom.Translate(elem.X, elem.Y)
	if elem.Angle != 0 {
		m = geom.RotateAbout(geom.ElementCenter(elem.Size()), geom.AngleToRadian(elem.Angle)).Multiply(m)
	}
	return m
}

// compileElement recursively generates draw commands for an element and its children.
func compileElement(elem *document.Element, parent geom.Matrix2D, commands *Layer) {
	if !elem.Visible() {
		return
	}
	world := parent.Multiply(ElementMatrix(elem))
	cmd := DrawCommand{
		ElementID: elem.UUID,
		Transform: world.ToSlice(),
		Width:     elem.W,
		Height:    elem.H,
	}

	switch d := elem.Detail.(type) {
	case *document.RectDetail:
		cmd.Op = "rect"
		cmd.Fill, cmd.Stroke, cmd.StrokeWidth, cmd.Radius = d.Background, d.BorderColor, d.BorderWidth, d.BorderRadius
	case *document.CircleDetail:
		cmd.Op = "circle"
		cmd.Fill, cmd.Stroke, cmd.StrokeWidth = d.Background, d.BorderColor, d.BorderWidth
	case *document.TextDetail:
		cmd.Op = "text"
		cmd.Fill, cmd.Text, cmd.FontSize, cmd.FontFamily, cmd.TextAlign = d.Color, d.Text, d.FontSize, d.FontFamily, d.TextAlign
	case *document.ImageDetail:
		cmd.Op = "image"
		cmd.Src = d.Src
	case *document.SVGDetail:
		cmd.Op = "svg"
		cmd.Src = d.SVG
	case *document.HTMLDetail:
		cmd.Op = "html"
		cmd.Src = d.HTML
	case *document.GroupDetail:
		compileGroup(elem, d, world, commands)
		return
	default:
		return
	}
	commands.Push(cmd)
}

func compileGroup(elem *document.Element, d *document.GroupDetail, world geom.Matrix2D, commands *Layer) {
	clip := d.Overflow == "hidden"
	if clip {
		commands.Push(DrawCommand{Op: "save"})
		commands.Push(DrawCommand{Op: "clip", ElementID: elem.UUID, Transform: world.ToSlice(), Width: elem.W, Height: elem.H})
	}
	if d.Background != "" {
		commands.Push(DrawCommand{
			Op:        "rect",
			ElementID: elem.UUID,
			Transform: world.ToSlice(),
			Width:     elem.W,
			Height:    elem.H,
			Fill:      d.Background,
		})
	}
	// Children are positioned relative to the group origin, which world already carries.
	for _, child := range d.Children {
		compileElement(child, world, commands)
	}
	if clip {
		commands.Push(DrawCommand{Op: "restore"})
	}
}
