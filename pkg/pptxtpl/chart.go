package pptxtpl

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/chart"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

type boundChart struct {
	shape *drawing.ChartShape
	chart *chart.Chart
	part  *opc.Part
	key   string
	data  models.ChartData
}

// RebindChart replaces the data of every chart on slide i (groups entered
// one level deep) whose title is a key of data, then sets its title to
// titles[key] (empty when absent). Every data block is validated before
// any chart changes. The embedded workbook of each chart is rewritten to
// match, or created when the chart has none.
func (t *Template) RebindChart(i int, data map[string]models.ChartData, titles map[string]string) error {
	s, err := t.slide(i)
	if err != nil {
		return NewSlideError(i, "chart", err)
	}

	var targets []boundChart
	for _, sh := range drawing.Flatten(s.shapes()) {
		cs, ok := sh.(*drawing.ChartShape)
		if !ok {
			continue
		}
		c, part, err := t.chartOf(s, cs)
		if err != nil {
			return NewSlideError(i, "chart", err)
		}
		key := strings.TrimSpace(c.Title())
		d, ok := data[key]
		if !ok {
			continue
		}
		if err := d.Validate(); err != nil {
			return NewSlideError(i, "chart", fmt.Errorf("%w: chart %q: %v", ErrSeriesLength, key, err))
		}
		if len(d.Series) == 0 {
			return NewSlideError(i, "chart", fmt.Errorf("chart %q: no series", key))
		}
		if err := c.CheckSupported(); err != nil {
			return NewSlideError(i, "chart", fmt.Errorf("chart %q: %w", key, err))
		}
		if len(c.Series()) == 0 {
			return NewSlideError(i, "chart", fmt.Errorf("%w: chart %q has no series", ErrUnsupportedChart, key))
		}
		// the validated copy is the one written
		snapshot, err := d.Clone()
		if err != nil {
			return NewSlideError(i, "chart", fmt.Errorf("chart %q: %w", key, err))
		}
		targets = append(targets, boundChart{shape: cs, chart: c, part: part, key: key, data: snapshot})
	}

	for _, b := range targets {
		if err := t.rebind(b, titles[b.key]); err != nil {
			return NewSlideError(i, "chart", err)
		}
		t.log.Debug("rebound chart",
			zap.Int("slide", i),
			zap.String("shape", b.shape.Name()),
			zap.String("title", b.key),
			zap.Int("series", len(b.data.Series)),
			zap.Int("categories", len(b.data.Categories)))
	}
	return nil
}

func (t *Template) rebind(b boundChart, title string) error {
	data := b.data
	sheet := b.chart.SheetName()
	if sheet == "" {
		sheet = chart.DefaultSheet
	}

	wbPart, err := t.workbookOf(b.chart, b.part)
	if err != nil {
		return err
	}
	var src []byte
	if wbPart != nil {
		if src, err = wbPart.Blob(); err != nil {
			return err
		}
	}
	blob, err := chart.WriteWorkbook(src, sheet, data)
	if err != nil {
		return fmt.Errorf("chart %q: %w", b.key, err)
	}

	if err := b.chart.ReplaceData(data, sheet); err != nil {
		return fmt.Errorf("chart %q: %w", b.key, err)
	}
	if wbPart != nil {
		wbPart.SetBlob(blob)
	} else if err := t.embedWorkbook(b.chart, b.part, blob); err != nil {
		return err
	}
	b.chart.SetTitle(title)
	return nil
}

// workbookOf returns the embedded workbook part of a chart, or nil when the
// chart has none or links to an external file.
func (t *Template) workbookOf(c *chart.Chart, part *opc.Part) (*opc.Part, error) {
	relID := c.ExternalDataRelID()
	if relID == "" {
		return nil, nil
	}
	rel := part.Rels().Get(relID)
	if rel == nil || rel.External || rel.Type != opc.RelTypePackage {
		return nil, nil
	}
	wb, _, err := t.pkg.Related(part, relID)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

func (t *Template) embedWorkbook(c *chart.Chart, part *opc.Part, blob []byte) error {
	name := t.pkg.NextPartName(opc.EmbeddedXlsxTemplate)
	t.pkg.EnsureDefault("xlsx", opc.ContentTypeXlsx)
	if _, err := t.pkg.AddPart(name, opc.ContentTypeXlsx, blob); err != nil {
		return err
	}
	if old := c.ExternalDataRelID(); old != "" {
		part.Rels().Remove(old)
	}
	rel := part.Rels().AddPart(opc.RelTypePackage, name)
	c.SetExternalData(rel.ID)
	return nil
}

// SetChartTitle sets the title of every chart on slide i whose current
// title is a key of titles.
func (t *Template) SetChartTitle(i int, titles map[string]string) error {
	s, err := t.slide(i)
	if err != nil {
		return NewSlideError(i, "chart", err)
	}
	for _, sh := range drawing.Flatten(s.shapes()) {
		cs, ok := sh.(*drawing.ChartShape)
		if !ok {
			continue
		}
		c, _, err := t.chartOf(s, cs)
		if err != nil {
			return NewSlideError(i, "chart", err)
		}
		if title, ok := titles[strings.TrimSpace(c.Title())]; ok {
			c.SetTitle(title)
		}
	}
	return nil
}

// ChartData reads back the embedded workbooks of the charts on slide i,
// keyed by chart title like RebindChart. Charts without a workbook are
// left out.
func (t *Template) ChartData(i int) (map[string]models.ChartData, error) {
	s, err := t.slide(i)
	if err != nil {
		return nil, NewSlideError(i, "chart", err)
	}
	out := make(map[string]models.ChartData)
	for _, sh := range drawing.Flatten(s.shapes()) {
		cs, ok := sh.(*drawing.ChartShape)
		if !ok {
			continue
		}
		c, part, err := t.chartOf(s, cs)
		if err != nil {
			return nil, NewSlideError(i, "chart", err)
		}
		data, ok, err := t.workbookData(c, part)
		if err != nil {
			return nil, NewSlideError(i, "chart", fmt.Errorf("chart %q: %w", cs.Name(), err))
		}
		if ok {
			out[strings.TrimSpace(c.Title())] = data
		}
	}
	return out, nil
}

func (t *Template) workbookData(c *chart.Chart, part *opc.Part) (models.ChartData, bool, error) {
	wb, err := t.workbookOf(c, part)
	if err != nil || wb == nil {
		return models.ChartData{}, false, err
	}
	blob, err := wb.Blob()
	if err != nil {
		return models.ChartData{}, false, err
	}
	data, err := chart.ReadWorkbook(blob, c.SheetName())
	if err != nil {
		return models.ChartData{}, false, err
	}
	return data, true, nil
}
