package pptxtpl

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/chart"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

// Scan returns the shapes of slide i whose text holds at least one label:
// text shapes, charts by their title and tables by their cells. Groups are
// entered one level deep.
func (t *Template) Scan(i int) ([]drawing.Shape, error) {
	s, err := t.slide(i)
	if err != nil {
		return nil, NewSlideError(i, "scan", err)
	}
	return t.scan(s), nil
}

// Labels returns the distinct labels left on slide i, in order of
// appearance, groups included at any depth.
func (t *Template) Labels(i int) ([]string, error) {
	s, err := t.slide(i)
	if err != nil {
		return nil, NewSlideError(i, "scan", err)
	}
	return t.slideLabels(s), nil
}

func (t *Template) scan(s *slide) []drawing.Shape {
	var out []drawing.Shape
	for _, sh := range drawing.Flatten(s.shapes()) {
		if _, nested := sh.(*drawing.GroupShape); nested {
			continue
		}
		if len(t.shapeLabels(s, sh)) > 0 {
			out = append(out, sh)
		}
	}
	return out
}

func (t *Template) slideLabels(s *slide) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sh := range s.shapes() {
		for _, l := range t.shapeLabels(s, sh) {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}

// shapeLabels returns the labels held by sh; for a group, by every
// descendant.
func (t *Template) shapeLabels(s *slide, sh drawing.Shape) []string {
	switch v := sh.(type) {
	case *drawing.TextShape:
		return t.format.Find(v.Text())
	case *drawing.TableShape:
		var out []string
		for _, row := range v.Table().Rows() {
			out = append(out, t.rowLabels(row)...)
		}
		return out
	case *drawing.ChartShape:
		c, _, err := t.chartOf(s, v)
		if err != nil {
			t.log.Warn("chart skipped", zap.Int("slide", s.index), zap.String("shape", v.Name()), zap.Error(err))
			return nil
		}
		return t.format.Find(c.Title())
	case *drawing.GroupShape:
		var out []string
		for _, child := range v.Shapes() {
			out = append(out, t.shapeLabels(s, child)...)
		}
		return out
	case *drawing.PictureShape, *drawing.OtherShape:
		return nil
	}
	return nil
}

func (t *Template) rowLabels(row *drawing.Row) []string {
	var out []string
	for _, cell := range row.Cells() {
		out = append(out, t.format.Find(cell.Text())...)
	}
	return out
}

// textBodies returns the text bodies of sh that labels are bound in.
func (t *Template) textBodies(s *slide, sh drawing.Shape) []*drawing.TextBody {
	switch v := sh.(type) {
	case *drawing.TextShape:
		if tb := v.TextBody(); tb != nil {
			return []*drawing.TextBody{tb}
		}
	case *drawing.TableShape:
		var out []*drawing.TextBody
		for _, row := range v.Table().Rows() {
			for _, cell := range row.Cells() {
				if cell.Text() != "" {
					out = append(out, cell.TextBody())
				}
			}
		}
		return out
	case *drawing.ChartShape:
		c, _, err := t.chartOf(s, v)
		if err != nil {
			return nil
		}
		if tb := c.TitleBody(); tb != nil {
			return []*drawing.TextBody{tb}
		}
	case *drawing.GroupShape, *drawing.PictureShape, *drawing.OtherShape:
	}
	return nil
}

// chartOf resolves the chart part behind a chart shape.
func (t *Template) chartOf(s *slide, cs *drawing.ChartShape) (*chart.Chart, *opc.Part, error) {
	part, _, err := t.pkg.Related(s.part, cs.RelID())
	if err != nil {
		return nil, nil, err
	}
	doc, err := part.XML()
	if err != nil {
		return nil, nil, err
	}
	c, err := chart.New(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, part.Name, err)
	}
	return c, part, nil
}
