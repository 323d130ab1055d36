package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/board/internal/geom"
)

var ErrUnknownElementType = errors.New("unknown element type")

type ElementType string

const (
	ElementTypeRect   ElementType = "rect"
	ElementTypeCircle ElementType = "circle"
	ElementTypeText   ElementType = "text"
	ElementTypeImage  ElementType = "image"
	ElementTypeSVG    ElementType = "svg"
	ElementTypeHTML   ElementType = "html"
	ElementTypeGroup  ElementType = "group"
)

type Operations struct {
	Lock       bool `json:"lock,omitempty"`
	Invisible  bool `json:"invisible,omitempty"`
	DeepResize bool `json:"deepResize,omitempty"`
	LimitRatio bool `json:"limitRatio,omitempty"`
}

// Detail is the type-specific payload of an element. The set of implementations is closed:
// one struct per ElementType.
type Detail interface {
	elementType() ElementType
}

type RectDetail struct {
	Background   string  `json:"background,omitempty"`
	BorderColor  string  `json:"borderColor,omitempty"`
	BorderWidth  float64 `json:"borderWidth,omitempty"`
	BorderRadius float64 `json:"borderRadius,omitempty"`
}

type CircleDetail struct {
	Background  string  `json:"background,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`
	BorderWidth float64 `json:"borderWidth,omitempty"`
}

type TextDetail struct {
	Text       string  `json:"text"`
	Color      string  `json:"color,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`
	Background string  `json:"background,omitempty"`
}

type ImageDetail struct {
	Src string `json:"src"`
}

type SVGDetail struct {
	SVG string `json:"svg"`
}

type HTMLDetail struct {
	HTML string `json:"html"`
}

type GroupDetail struct {
	Children   []*Element `json:"children"`
	Background string     `json:"background,omitempty"`
	Overflow   string     `json:"overflow,omitempty"`
}

func (*RectDetail) elementType() ElementType   { return ElementTypeRect }
func (*CircleDetail) elementType() ElementType { return ElementTypeCircle }
func (*TextDetail) elementType() ElementType   { return ElementTypeText }
func (*ImageDetail) elementType() ElementType  { return ElementTypeImage }
func (*SVGDetail) elementType() ElementType    { return ElementTypeSVG }
func (*HTMLDetail) elementType() ElementType   { return ElementTypeHTML }
func (*GroupDetail) elementType() ElementType  { return ElementTypeGroup }

// NewDetail returns an empty detail for t.
func NewDetail(t ElementType) (Detail, error) {
	switch t {
	case ElementTypeRect:
		return &RectDetail{}, nil
	case ElementTypeCircle:
		return &CircleDetail{}, nil
	case ElementTypeText:
		return &TextDetail{}, nil
	case ElementTypeImage:
		return &ImageDetail{}, nil
	case ElementTypeSVG:
		return &SVGDetail{}, nil
	case ElementTypeHTML:
		return &HTMLDetail{}, nil
	case ElementTypeGroup:
		return &GroupDetail{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownElementType, t)
	}
}

// Element is a scene node. Its rectangle is axis aligned in its own frame; Angle rotates it
// clockwise about its center. Children of a group are positioned relative to the group origin.
type Element struct {
	UUID       string      `json:"uuid"`
	Name       string      `json:"name,omitempty"`
	Type       ElementType `json:"type"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	W          float64     `json:"w"`
	H          float64     `json:"h"`
	Angle      float64     `json:"angle,omitempty"`
	Operations Operations  `json:"operations"`
	Detail     Detail      `json:"detail"`
}

type elementJSON struct {
	UUID       string          `json:"uuid"`
	Name       string          `json:"name,omitempty"`
	Type       ElementType     `json:"type"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	W          float64         `json:"w"`
	H          float64         `json:"h"`
	Angle      float64         `json:"angle,omitempty"`
	Operations Operations      `json:"operations"`
	Detail     json.RawMessage `json:"detail"`
}

// UnmarshalJSON decodes the detail into the struct matching the element type.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	detail, err := NewDetail(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Detail) > 0 && string(raw.Detail) != "null" {
		if err := json.Unmarshal(raw.Detail, detail); err != nil {
			return fmt.Errorf("decode %s detail of %q: %w", raw.Type, raw.UUID, err)
		}
	}

	*e = Element{
		UUID:       raw.UUID,
		Name:       raw.Name,
		Type:       raw.Type,
		X:          raw.X,
		Y:          raw.Y,
		W:          raw.W,
		H:          raw.H,
		Angle:      raw.Angle,
		Operations: raw.Operations,
		Detail:     detail,
	}
	return nil
}

// Size returns the element rectangle with its rotation.
func (e *Element) Size() geom.Size {
	return geom.Size{X: e.X, Y: e.Y, W: e.W, H: e.H, Angle: e.Angle}
}

// SetSize writes a rectangle back into the element.
func (e *Element) SetSize(s geom.Size) {
	e.X, e.Y, e.W, e.H, e.Angle = s.X, s.Y, s.W, s.H, s.Angle
}

func (e *Element) IsGroup() bool {
	return e != nil && e.Type == ElementTypeGroup
}

func (e *Element) Locked() bool {
	return e != nil && e.Operations.Lock
}

func (e *Element) Visible() bool {
	return e != nil && !e.Operations.Invisible
}

// Children returns a group's children, or nil for any other element.
func (e *Element) Children() []*Element {
	if g, ok := e.Detail.(*GroupDetail); ok && e.IsGroup() {
		return g.Children
	}
	return nil
}

// Contains reports whether elem is a descendant of e.
func (e *Element) Contains(elem *Element) bool {
	if e == nil || elem == nil {
		return false
	}
	for _, child := range e.Children() {
		if child.UUID == elem.UUID || child.Contains(elem) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the element and its descendants.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	switch d := e.Detail.(type) {
	case *RectDetail:
		dd := *d
		c.Detail = &dd
	case *CircleDetail:
		dd := *d
		c.Detail = &dd
	case *TextDetail:
		dd := *d
		c.Detail = &dd
	case *ImageDetail:
		dd := *d
		c.Detail = &dd
	case *SVGDetail:
		dd := *d
		c.Detail = &dd
	case *HTMLDetail:
		dd := *d
		c.Detail = &dd
	case *GroupDetail:
		dd := *d
		dd.Children = make([]*Element, len(d.Children))
		for i, child := range d.Children {
			dd.Children[i] = child.Clone()
		}
		c.Detail = &dd
	}
	return &c
}

// Data is the serialized form of a scene.
type Data struct {
	Elements []*Element `json:"elements"`
}

// ParseData decodes scene JSON.
func ParseData(jsonData []byte) (*Data, error) {
	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("decode scene data: %w", err)
	}
	if data.Elements == nil {
		data.Elements = []*Element{}
	}
	return &data, nil
}
