// Package chart edits DrawingML chart parts: title, plot series and the
// embedded workbook that backs them.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
)

// ErrUnsupportedChart is returned for plot types whose series are not
// category based (scatter, bubble).
var ErrUnsupportedChart = errors.New("unsupported chart type")

// TypeMap maps OOXML plot element tags to chart type names.
var TypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// Chart wraps the XML tree of a chart part.
type Chart struct {
	doc   *etree.Document
	chart *etree.Element
}

// New wraps doc, which must hold a c:chartSpace with a c:chart child.
func New(doc *etree.Document) (*Chart, error) {
	root := doc.Root()
	if !drawing.Is(root, drawing.NsC, "chartSpace") {
		return nil, fmt.Errorf("root element is not c:chartSpace")
	}
	chart := drawing.Child(root, drawing.NsC, "chart")
	if chart == nil {
		return nil, fmt.Errorf("c:chartSpace has no c:chart")
	}
	return &Chart{doc: doc, chart: chart}, nil
}

// Document returns the underlying XML document.
func (c *Chart) Document() *etree.Document { return c.doc }

// Title returns the title text. Rich text paragraphs are joined with
// newlines; a title bound to a cell returns its cached value.
func (c *Chart) Title() string {
	tx := drawing.Path(c.chart, drawing.NsC, "title", "tx")
	if tx == nil {
		return ""
	}
	if rich := drawing.Child(tx, drawing.NsC, "rich"); rich != nil {
		return drawing.NewTextBody(rich).Text()
	}
	if v := drawing.Path(tx, drawing.NsC, "strRef", "strCache", "pt", "v"); v != nil {
		return v.Text()
	}
	return ""
}

// TitleBody returns the rich text of the title, or nil.
func (c *Chart) TitleBody() *drawing.TextBody {
	if rich := drawing.Path(c.chart, drawing.NsC, "title", "tx", "rich"); rich != nil {
		return drawing.NewTextBody(rich)
	}
	return nil
}

// HasTitle reports whether the chart shows a title.
func (c *Chart) HasTitle() bool {
	return drawing.Child(c.chart, drawing.NsC, "title") != nil
}

// SetTitle replaces the title text, keeping the formatting of the first
// run. A chart without a title gets one.
func (c *Chart) SetTitle(text string) {
	title := drawing.EnsureChild(c.chart, drawing.NsC, "title",
		"autoTitleDeleted", "pivotFmts", "view3D", "floor", "sideWall", "backWall", "plotArea")
	tx := drawing.EnsureChild(title, drawing.NsC, "tx",
		"layout", "overlay", "spPr", "txPr", "extLst")
	rich := drawing.Child(tx, drawing.NsC, "rich")
	if rich == nil {
		for _, el := range tx.ChildElements() {
			tx.RemoveChild(el)
		}
		rich = drawing.NewChild(tx, drawing.NsC, "rich")
		drawing.NewChild(rich, drawing.NsA, "bodyPr")
		drawing.NewChild(rich, drawing.NsA, "lstStyle")
	}
	drawing.NewTextBody(rich).SetText(text)

	if atd := drawing.Child(c.chart, drawing.NsC, "autoTitleDeleted"); atd != nil {
		atd.CreateAttr("val", "0")
	}
}

// PlotArea returns the c:plotArea element.
func (c *Chart) PlotArea() *etree.Element {
	return drawing.Child(c.chart, drawing.NsC, "plotArea")
}

// Plots returns the plot elements (c:barChart, c:lineChart, ...) in order.
func (c *Chart) Plots() []*etree.Element {
	area := c.PlotArea()
	if area == nil {
		return nil
	}
	var out []*etree.Element
	for _, el := range area.ChildElements() {
		if _, ok := TypeMap[el.Tag]; ok {
			out = append(out, el)
		}
	}
	return out
}

// Plot returns the first plot element, or nil.
func (c *Chart) Plot() *etree.Element {
	if plots := c.Plots(); len(plots) > 0 {
		return plots[0]
	}
	return nil
}

// Type returns the chart type name of the first plot, "unknown" when the
// chart has none.
func (c *Chart) Type() string {
	if p := c.Plot(); p != nil {
		return TypeMap[p.Tag]
	}
	return "unknown"
}

// Series returns the c:ser elements of every plot, in document order.
func (c *Chart) Series() []*etree.Element {
	var out []*etree.Element
	for _, p := range c.Plots() {
		out = append(out, drawing.Children(p, drawing.NsC, "ser")...)
	}
	return out
}

// SeriesNames returns the cached names of the series of every plot.
func (c *Chart) SeriesNames() []string {
	var out []string
	for _, ser := range c.Series() {
		out = append(out, seriesName(ser))
	}
	return out
}

// CategoryCount returns the number of categories of the first series.
func (c *Chart) CategoryCount() int {
	series := c.Series()
	if len(series) == 0 {
		return 0
	}
	cat := drawing.Child(series[0], drawing.NsC, "cat")
	if cat == nil {
		cat = drawing.Child(series[0], drawing.NsC, "val")
	}
	for _, ptCount := range drawing.Descendants(cat, drawing.NsC, "ptCount") {
		if n, ok := attrInt(ptCount, "val"); ok {
			return n
		}
	}
	return 0
}

// ExternalDataRelID returns the relationship id of the embedded workbook.
func (c *Chart) ExternalDataRelID() string {
	ext := drawing.Child(c.doc.Root(), drawing.NsC, "externalData")
	if ext == nil {
		return ""
	}
	for _, a := range drawing.RelAttrs(ext) {
		if a.Key == "id" {
			return a.Value
		}
	}
	return ""
}

// SetExternalData links the chart to the embedded workbook relID.
func (c *Chart) SetExternalData(relID string) {
	root := c.doc.Root()
	ext := drawing.EnsureChild(root, drawing.NsC, "externalData", "printSettings", "userShapes", "extLst")
	ext.CreateAttr(drawing.PrefixFor(root, drawing.NsR)+":id", relID)
	auto := drawing.EnsureChild(ext, drawing.NsC, "autoUpdate")
	auto.CreateAttr("val", "0")
}

// SheetName returns the worksheet the series formulas point at, or "" when
// the chart holds no formula.
func (c *Chart) SheetName() string {
	for _, ser := range c.Series() {
		for _, f := range drawing.Descendants(ser, drawing.NsC, "f") {
			if name := SheetFromFormula(f.Text()); name != "" {
				return name
			}
		}
	}
	return ""
}

// CheckSupported returns ErrUnsupportedChart when the chart has no plot or
// one of its plots does not take category data.
func (c *Chart) CheckSupported() error {
	plots := c.Plots()
	if len(plots) == 0 {
		return fmt.Errorf("%w: chart has no plot", ErrUnsupportedChart)
	}
	for _, p := range plots {
		switch p.Tag {
		case "scatterChart", "bubbleChart":
			return fmt.Errorf("%w: %s", ErrUnsupportedChart, TypeMap[p.Tag])
		}
	}
	return nil
}

func seriesName(ser *etree.Element) string {
	tx := drawing.Child(ser, drawing.NsC, "tx")
	if tx == nil {
		return ""
	}
	if v := drawing.Path(tx, drawing.NsC, "strRef", "strCache", "pt", "v"); v != nil {
		return strings.TrimSpace(v.Text())
	}
	if v := drawing.Child(tx, drawing.NsC, "v"); v != nil {
		return strings.TrimSpace(v.Text())
	}
	return ""
}
