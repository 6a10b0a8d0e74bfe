package pptxtpl

import (
	"strings"

	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

// Inspect summarises the deck: for every slide its marker, shapes, charts,
// remaining labels and notes text.
func (t *Template) Inspect() (*models.DeckData, error) {
	slides, err := t.slides()
	if err != nil {
		return nil, err
	}
	deck := &models.DeckData{Name: t.name, Slides: make([]models.SlideData, 0, len(slides))}
	for _, s := range slides {
		data := models.SlideData{
			Index:  s.index,
			Part:   s.part.Name,
			Labels: t.slideLabels(s),
			Notes:  t.notesText(s),
		}
		data.SlideID, _ = t.slideID(s)
		for _, sh := range s.shapes() {
			data.Shapes = append(data.Shapes, t.describeShape(sh))
			data.Charts = append(data.Charts, t.describeCharts(s, sh)...)
		}
		deck.Slides = append(deck.Slides, data)
	}
	return deck, nil
}

func (t *Template) describeShape(sh drawing.Shape) models.Shape {
	g := sh.Geometry()
	out := models.Shape{
		ID:   sh.ID(),
		Name: sh.Name(),
		Kind: sh.Kind().String(),
		Type: drawing.TypeLabel(sh),
		L:    drawing.EMUToPixels(g.Left),
		T:    drawing.EMUToPixels(g.Top),
		W:    drawing.EMUToPixels(g.Width),
		H:    drawing.EMUToPixels(g.Height),
	}
	if g.Rotation != 0 {
		rot := g.Rotation
		out.Rotation = &rot
	}
	switch v := sh.(type) {
	case *drawing.TextShape:
		out.Text = strings.TrimSpace(v.Text())
		out.Labels = t.format.Find(out.Text)
	case *drawing.TableShape:
		var rows []string
		for _, row := range v.Table().Rows() {
			var cells []string
			for _, c := range row.Cells() {
				cells = append(cells, c.Text())
			}
			rows = append(rows, strings.Join(cells, "\t"))
		}
		out.Text = strings.Join(rows, "\n")
		out.Labels = t.format.Find(out.Text)
	case *drawing.GroupShape:
		for _, child := range v.Shapes() {
			out.Children = append(out.Children, t.describeShape(child))
		}
	case *drawing.ChartShape, *drawing.PictureShape, *drawing.OtherShape:
	}
	return out
}

// describeCharts summarises the charts of sh, descending into groups.
func (t *Template) describeCharts(s *slide, sh drawing.Shape) []models.Chart {
	switch v := sh.(type) {
	case *drawing.ChartShape:
		c, _, err := t.chartOf(s, v)
		if err != nil {
			t.log.Warn("chart skipped", zap.Int("slide", s.index), zap.String("shape", v.Name()), zap.Error(err))
			return nil
		}
		g := v.Geometry()
		return []models.Chart{{
			Name:       v.Name(),
			ChartType:  c.Type(),
			Title:      c.Title(),
			Labels:     t.format.Find(c.Title()),
			Series:     c.SeriesNames(),
			Categories: c.CategoryCount(),
			L:          drawing.EMUToPixels(g.Left),
			T:          drawing.EMUToPixels(g.Top),
			W:          drawing.EMUToPixels(g.Width),
			H:          drawing.EMUToPixels(g.Height),
		}}
	case *drawing.GroupShape:
		var out []models.Chart
		for _, child := range v.Shapes() {
			out = append(out, t.describeCharts(s, child)...)
		}
		return out
	}
	return nil
}

// notesText returns the text of the body placeholder of the slide notes.
func (t *Template) notesText(s *slide) string {
	part, _, err := t.pkg.RelatedByType(s.part, opc.RelTypeNotesSlide)
	if err != nil || part == nil {
		return ""
	}
	notes, err := loadSlide(part)
	if err != nil {
		t.log.Warn("notes skipped", zap.Int("slide", s.index), zap.Error(err))
		return ""
	}
	var texts []string
	for _, sh := range notes.shapes() {
		ts, ok := sh.(*drawing.TextShape)
		if !ok {
			continue
		}
		ph := drawing.Path(ts.Element(), drawing.NsP, "nvSpPr", "nvPr", "ph")
		if ph == nil || ph.SelectAttrValue("type", "") != "body" {
			continue
		}
		texts = append(texts, ts.Text())
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
