package geom

// ViewScaleInfo maps model space to view (pixel) space: view = model*scale + offset.
type ViewScaleInfo struct {
	Scale        float64 `json:"scale"`
	OffsetLeft   float64 `json:"offsetLeft"`
	OffsetTop    float64 `json:"offsetTop"`
	OffsetRight  float64 `json:"offsetRight"`
	OffsetBottom float64 `json:"offsetBottom"`
}

// ViewSizeInfo describes the viewport and the scrollable content behind it.
type ViewSizeInfo struct {
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	ContextWidth     float64 `json:"contextWidth"`
	ContextHeight    float64 `json:"contextHeight"`
	DevicePixelRatio float64 `json:"devicePixelRatio"`
}

// DefaultViewScaleInfo is the identity mapping.
func DefaultViewScaleInfo() ViewScaleInfo {
	return ViewScaleInfo{Scale: 1}
}

// scale returns a usable scale factor; zero or negative scales fall back to 1.
func (v ViewScaleInfo) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// Matrix returns the model->view transform.
func (v ViewScaleInfo) Matrix() Matrix2D {
	return Translate(v.OffsetLeft, v.OffsetTop).Multiply(Scale(v.scale(), v.scale()))
}

// ViewPoint maps a model-space point into view space.
func (v ViewScaleInfo) ViewPoint(p Point) Point {
	s := v.scale()
	return Point{X: p.X*s + v.OffsetLeft, Y: p.Y*s + v.OffsetTop}
}

// ModelPoint maps a view-space point back into model space.
func (v ViewScaleInfo) ModelPoint(p Point) Point {
	s := v.scale()
	return Point{X: (p.X - v.OffsetLeft) / s, Y: (p.Y - v.OffsetTop) / s}
}

// ViewVertexes maps model-space vertexes into view space.
func (v ViewScaleInfo) ViewVertexes(vs Vertexes) Vertexes {
	for i := range vs {
		vs[i] = v.ViewPoint(vs[i])
	}
	return vs
}

// ViewSize maps an element rectangle into view space; the angle is unchanged.
func (v ViewScaleInfo) ViewSize(s Size) Size {
	sc := v.scale()
	return Size{
		X:     s.X*sc + v.OffsetLeft,
		Y:     s.Y*sc + v.OffsetTop,
		W:     s.W * sc,
		H:     s.H * sc,
		Angle: s.Angle,
	}
}

// ModelDelta converts a view-space movement into model units.
func (v ViewScaleInfo) ModelDelta(dx, dy float64) (float64, float64) {
	s := v.scale()
	return dx / s, dy / s
}
