package radar

import (
	"math"

	"github.com/pable/go-cs-replay/internal/model"
)

// DefaultMargin shrinks the fitted map slightly so edge players stay visible.
const DefaultMargin = 0.9

// Mapper converts between world and canvas coordinates for one map. The
// bounds it was built with never change; recalibration means building a new
// Mapper from a new Bounds value.
type Mapper struct {
	bounds  Bounds
	canvasW float64
	canvasH float64

	scale   float64
	offsetX float64
	offsetY float64
}

// NewMapper builds a mapper with the default margin.
func NewMapper(b Bounds, canvasW, canvasH int) *Mapper {
	return NewMapperMargin(b, canvasW, canvasH, DefaultMargin)
}

// NewMapperMargin builds a mapper with an explicit margin factor (<= 1.0).
func NewMapperMargin(b Bounds, canvasW, canvasH int, margin float64) *Mapper {
	m := &Mapper{bounds: b, canvasW: float64(canvasW), canvasH: float64(canvasH)}
	m.scale = math.Min(m.canvasW/b.Width(), m.canvasH/b.Height()) * margin
	m.offsetX = (m.canvasW - b.Width()*m.scale) / 2
	m.offsetY = (m.canvasH - b.Height()*m.scale) / 2
	return m
}

func (m *Mapper) Bounds() Bounds { return m.bounds }
func (m *Mapper) Scale() float64 { return m.scale }

// Forward converts a world coordinate to canvas pixels. Engine Y grows
// upward, canvas Y grows downward, so the Y axis is flipped.
func (m *Mapper) Forward(x, y float64) (screenX, screenY float64) {
	screenX = (x-m.bounds.MinX)*m.scale + m.offsetX
	screenY = m.canvasH - ((y-m.bounds.MinY)*m.scale + m.offsetY)
	return screenX, screenY
}

// Inverse undoes scale, offset, and the axis flip; used for hit-testing.
func (m *Mapper) Inverse(screenX, screenY float64) (x, y float64) {
	x = (screenX-m.offsetX)/m.scale + m.bounds.MinX
	y = (m.canvasH-screenY-m.offsetY)/m.scale + m.bounds.MinY
	return x, y
}

// Valid reports whether the position lies inside the calibrated rectangle.
// Invalid positions are excluded from rendering but stay in the data model.
func (m *Mapper) Valid(p model.Position) bool {
	return m.bounds.MinX <= p.X && p.X <= m.bounds.MaxX &&
		m.bounds.MinY <= p.Y && p.Y <= m.bounds.MaxY
}
