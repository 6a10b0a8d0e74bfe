package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// elements that may follow c:tx in a series, across plot types
var serAfterTx = []string{
	"spPr", "invertIfNegative", "pictureOptions", "marker", "explosion", "dPt",
	"dLbls", "trendline", "errBars", "cat", "val", "smooth", "shape", "extLst",
}

var serAfterCat = []string{"val", "smooth", "shape", "extLst"}

var serAfterVal = []string{"smooth", "shape", "extLst"}

// ReplaceData rewrites the series of every plot with data. Plots keep
// their share of series in document order: extra series are cloned from
// the last one into the last plot, surplus series are trimmed from the
// end and plots left without series are dropped. Every series is then
// numbered across the whole chart and gets fresh name, category and value
// references with caches pointing at sheet. Nothing is changed when data
// is invalid.
func (c *Chart) ReplaceData(data models.ChartData, sheet string) error {
	if err := c.CheckSupported(); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if len(data.Series) == 0 {
		return fmt.Errorf("chart data has no series")
	}
	series := c.Series()
	if len(series) == 0 {
		return fmt.Errorf("%w: chart has no series to copy", ErrUnsupportedChart)
	}
	if sheet == "" {
		sheet = DefaultSheet
	}

	for len(series) < len(data.Series) {
		last := series[len(series)-1]
		cp := last.Copy()
		last.Parent().InsertChildAt(last.Index()+1, cp)
		series = append(series, cp)
	}
	for _, extra := range series[len(data.Series):] {
		drawing.Remove(extra)
	}
	series = series[:len(data.Series)]
	c.dropEmptyPlots()

	format := data.NumberFormat
	if format == "" {
		format = "General"
	}
	n := len(data.Categories)
	for i, ser := range series {
		s := data.Series[i]
		setVal(drawing.EnsureChild(ser, drawing.NsC, "idx"), strconv.Itoa(i))
		setVal(drawing.EnsureChild(ser, drawing.NsC, "order", serAfterTx...), strconv.Itoa(i))
		ensureOrder(ser)

		tx := resetChild(ser, "tx", serAfterTx)
		writeStrRef(tx, CellRef(sheet, i+2, 1), []string{s.Name})

		cat := resetChild(ser, "cat", serAfterCat)
		writeStrRef(cat, ColumnRef(sheet, 1, 2, n+1), data.Categories)

		val := resetChild(ser, "val", serAfterVal)
		writeNumRef(val, ColumnRef(sheet, i+2, 2, n+1), format, s.Values)

		dropStalePoints(ser, n)
	}
	return nil
}

// dropEmptyPlots removes plots without series, then the axes no remaining
// plot refers to.
func (c *Chart) dropEmptyPlots() {
	area := c.PlotArea()
	used := make(map[string]bool)
	for _, p := range c.Plots() {
		if len(drawing.Children(p, drawing.NsC, "ser")) == 0 {
			area.RemoveChild(p)
			continue
		}
		for _, ax := range drawing.Children(p, drawing.NsC, "axId") {
			used[ax.SelectAttrValue("val", "")] = true
		}
	}
	for _, el := range area.ChildElements() {
		switch el.Tag {
		case "catAx", "valAx", "dateAx", "serAx":
		default:
			continue
		}
		if id := drawing.Child(el, drawing.NsC, "axId"); id != nil && !used[id.SelectAttrValue("val", "")] {
			area.RemoveChild(el)
		}
	}
}

// ensureOrder keeps c:idx and c:order at the head of the series.
func ensureOrder(ser *etree.Element) {
	idx := drawing.Child(ser, drawing.NsC, "idx")
	order := drawing.Child(ser, drawing.NsC, "order")
	ser.RemoveChild(idx)
	ser.RemoveChild(order)
	ser.InsertChildAt(0, order)
	ser.InsertChildAt(0, idx)
}

// resetChild returns an empty series child local, replacing any existing
// content.
func resetChild(ser *etree.Element, local string, followers []string) *etree.Element {
	el := drawing.Child(ser, drawing.NsC, local)
	if el == nil {
		return drawing.NewChild(ser, drawing.NsC, local, followers...)
	}
	for _, c := range el.ChildElements() {
		el.RemoveChild(c)
	}
	return el
}

func writeStrRef(parent *etree.Element, ref string, values []string) {
	strRef := drawing.NewChild(parent, drawing.NsC, "strRef")
	drawing.NewChild(strRef, drawing.NsC, "f").SetText(ref)
	cache := drawing.NewChild(strRef, drawing.NsC, "strCache")
	setVal(drawing.NewChild(cache, drawing.NsC, "ptCount"), strconv.Itoa(len(values)))
	for i, v := range values {
		pt := drawing.NewChild(cache, drawing.NsC, "pt")
		pt.CreateAttr("idx", strconv.Itoa(i))
		drawing.NewChild(pt, drawing.NsC, "v").SetText(v)
	}
}

func writeNumRef(parent *etree.Element, ref, format string, values []float64) {
	numRef := drawing.NewChild(parent, drawing.NsC, "numRef")
	drawing.NewChild(numRef, drawing.NsC, "f").SetText(ref)
	cache := drawing.NewChild(numRef, drawing.NsC, "numCache")
	drawing.NewChild(cache, drawing.NsC, "formatCode").SetText(format)
	setVal(drawing.NewChild(cache, drawing.NsC, "ptCount"), strconv.Itoa(len(values)))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pt := drawing.NewChild(cache, drawing.NsC, "pt")
		pt.CreateAttr("idx", strconv.Itoa(i))
		drawing.NewChild(pt, drawing.NsC, "v").SetText(FormatNumber(v))
	}
}

// dropStalePoints removes data point overrides and labels addressing
// categories that no longer exist.
func dropStalePoints(ser *etree.Element, n int) {
	for _, dPt := range drawing.Children(ser, drawing.NsC, "dPt") {
		if idx, ok := attrInt(drawing.Child(dPt, drawing.NsC, "idx"), "val"); ok && idx >= n {
			ser.RemoveChild(dPt)
		}
	}
	dLbls := drawing.Child(ser, drawing.NsC, "dLbls")
	for _, dLbl := range drawing.Children(dLbls, drawing.NsC, "dLbl") {
		if idx, ok := attrInt(drawing.Child(dLbl, drawing.NsC, "idx"), "val"); ok && idx >= n {
			dLbls.RemoveChild(dLbl)
		}
	}
}

// FormatNumber renders a cached point value.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func setVal(el *etree.Element, v string) {
	el.CreateAttr("val", v)
}
