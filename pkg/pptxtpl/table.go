package pptxtpl

import (
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// AddTableData fills the last table of slide i with rows. The first table
// row is a header and is kept; data row k fills table row k+1 and cells
// past the end of a data row keep their text. Table rows left over are
// deleted; rows are never added, so surplus data is dropped.
//
// With a font each filled cell is reset to one run in that font; without
// one the first run of the cell takes the value and later runs are
// emptied, keeping the template formatting.
func (t *Template) AddTableData(i int, rows [][]any, font *models.CellFont) error {
	s, err := t.slide(i)
	if err != nil {
		return NewSlideError(i, "table", err)
	}

	var target *drawing.TableShape
	for _, sh := range drawing.Flatten(s.shapes()) {
		if ts, ok := sh.(*drawing.TableShape); ok {
			target = ts
		}
	}
	if target == nil {
		return NewSlideError(i, "table", ErrNoTable)
	}

	tbl := target.Table()
	tableRows := tbl.Rows()
	if len(tableRows) == 0 {
		return NewSlideError(i, "table", ErrNoTable)
	}
	body := tableRows[1:]

	for k, values := range rows {
		if k >= len(body) {
			t.log.Warn("table data truncated",
				zap.Int("slide", i),
				zap.String("shape", target.Name()),
				zap.Int("rows", len(rows)),
				zap.Int("capacity", len(body)))
			break
		}
		cells := body[k].Cells()
		for j, v := range values {
			if j >= len(cells) {
				break
			}
			setCell(cells[j], models.Stringify(v), font)
		}
	}

	removed := 0
	for _, row := range body[min(len(rows), len(body)):] {
		tbl.RemoveRow(row)
		removed++
	}
	t.log.Debug("filled table",
		zap.Int("slide", i),
		zap.String("shape", target.Name()),
		zap.Int("rows", min(len(rows), len(body))),
		zap.Int("removed", removed))
	return nil
}

func setCell(cell *drawing.Cell, text string, font *models.CellFont) {
	tb := cell.TextBody()
	if font != nil {
		tb.SetText(text)
		run := tb.Paragraphs()[0].Runs()[0]
		drawing.SetFont(run.RPr(), font.Name, font.Size)
		return
	}

	paras := tb.Paragraphs()
	if len(paras) == 0 {
		tb.SetText(text)
		return
	}
	first := true
	for _, p := range paras {
		for _, r := range p.Runs() {
			if first {
				r.SetText(text)
				first = false
				continue
			}
			r.SetText("")
		}
	}
	if first {
		paras[0].AddRun(text)
	}
}
