package drawing

import "github.com/beevik/etree"

// Table is an a:tbl element.
type Table struct {
	el *etree.Element
}

// Element returns the underlying XML element.
func (t *Table) Element() *etree.Element { return t.el }

// Rows returns the a:tr children.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, tr := range Children(t.el, NsA, "tr") {
		out = append(out, &Row{el: tr})
	}
	return out
}

// RemoveRow deletes r from the table.
func (t *Table) RemoveRow(r *Row) {
	t.el.RemoveChild(r.el)
}

// Columns returns the number of grid columns.
func (t *Table) Columns() int {
	return len(Children(Child(t.el, NsA, "tblGrid"), NsA, "gridCol"))
}

// Row is an a:tr element.
type Row struct {
	el *etree.Element
}

// Element returns the underlying XML element.
func (r *Row) Element() *etree.Element { return r.el }

// Cells returns the a:tc children.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, tc := range Children(r.el, NsA, "tc") {
		out = append(out, &Cell{el: tc})
	}
	return out
}

// Cell is an a:tc element.
type Cell struct {
	el *etree.Element
}

// Element returns the underlying XML element.
func (c *Cell) Element() *etree.Element { return c.el }

// TextBody returns the cell text, creating an empty body when absent.
func (c *Cell) TextBody() *TextBody {
	tb := Child(c.el, NsA, "txBody")
	if tb == nil {
		tb = NewChild(c.el, NsA, "txBody", "tcPr", "extLst")
		NewChild(tb, NsA, "bodyPr")
		NewChild(tb, NsA, "lstStyle")
		NewChild(tb, NsA, "p")
	}
	return &TextBody{el: tb}
}

// Text returns the cell text.
func (c *Cell) Text() string {
	if tb := Child(c.el, NsA, "txBody"); tb != nil {
		return (&TextBody{el: tb}).Text()
	}
	return ""
}
