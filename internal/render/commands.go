package render

import (
	"encoding/json"

	"github.com/inamate/board/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string       `json:"op"`                    // "rect", "circle", "text", "image", "svg", "html", "polygon", "save", "restore", "clip"
	ElementID   string       `json:"elementId,omitempty"`   // For hit correlation
	Transform   []float64    `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix, element-local to view
	Width       float64      `json:"width,omitempty"`       // Local width for shape ops
	Height      float64      `json:"height,omitempty"`      // Local height for shape ops
	Points      []geom.Point `json:"points,omitempty"`      // View-space points for "polygon"
	Fill        string       `json:"fill,omitempty"`        // Fill color
	Stroke      string       `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64      `json:"strokeWidth,omitempty"` // Stroke width
	Radius      float64      `json:"radius,omitempty"`      // Corner radius
	Dash        []float64    `json:"dash,omitempty"`        // Line dash pattern
	Text        string       `json:"text,omitempty"`        // Text content
	FontSize    float64      `json:"fontSize,omitempty"`    // Font size in model units
	FontFamily  string       `json:"fontFamily,omitempty"`  // Font family
	TextAlign   string       `json:"textAlign,omitempty"`   // Text alignment
	Src         string       `json:"src,omitempty"`         // Image source, SVG or HTML markup
}

// Style is the paint applied to helper shapes.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
}

// Layer is an ordered buffer of draw commands, painted back to front.
type Layer struct {
	commands []DrawCommand
}

func (l *Layer) Push(cmd DrawCommand) {
	l.commands = append(l.commands, cmd)
}

// Polygon draws closed view-space vertexes.
func (l *Layer) Polygon(v geom.Vertexes, style Style) {
	l.Push(DrawCommand{
		Op:          "polygon",
		Points:      v[:],
		Fill:        style.Fill,
		Stroke:      style.Stroke,
		StrokeWidth: style.StrokeWidth,
		Dash:        style.Dash,
	})
}

// Rect draws an axis-aligned view-space rectangle.
func (l *Layer) Rect(r geom.Rect, style Style) {
	l.Polygon(r.Vertexes(), style)
}

// Reset empties the layer, keeping its capacity.
func (l *Layer) Reset() {
	l.commands = l.commands[:0]
}

// Commands returns a copy of the buffered commands.
func (l *Layer) Commands() []DrawCommand {
	out := make([]DrawCommand, len(l.commands))
	copy(out, l.commands)
	return out
}

func (l *Layer) Len() int {
	return len(l.commands)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
