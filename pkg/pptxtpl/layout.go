package pptxtpl

import (
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// GroupShapes returns the top-level group shapes of slide i in z-order.
func (t *Template) GroupShapes(i int) ([]*drawing.GroupShape, error) {
	s, err := t.slide(i)
	if err != nil {
		return nil, NewSlideError(i, "groups", err)
	}
	var out []*drawing.GroupShape
	for _, sh := range s.shapes() {
		if g, ok := sh.(*drawing.GroupShape); ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// RepositionShapes applies positions[k] to shapes[k]. Nil fields of a
// position are left alone. Shapes or positions without a partner are
// ignored. It returns the number of shapes updated.
func (t *Template) RepositionShapes(shapes []drawing.Shape, positions []models.PositionSize) int {
	n := min(len(shapes), len(positions))
	if len(shapes) != len(positions) {
		t.log.Warn("shape and position counts differ",
			zap.Int("shapes", len(shapes)),
			zap.Int("positions", len(positions)))
	}
	for k := 0; k < n; k++ {
		p := positions[k]
		shapes[k].SetGeometry(drawing.GeometryUpdate{
			Left:   p.Left,
			Top:    p.Top,
			Width:  p.Width,
			Height: p.Height,
		})
		t.log.Debug("repositioned shape", zap.String("shape", shapes[k].Name()))
	}
	return n
}
