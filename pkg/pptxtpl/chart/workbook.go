package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// WriteWorkbook stores data in the workbook src on sheet and returns the new
// xlsx bytes. Series names go in row 1 from column B, categories in column
// A from row 2 and each series' values below its name. Other sheets are
// kept. A nil src creates a fresh workbook.
func WriteWorkbook(src []byte, sheet string, data models.ChartData) ([]byte, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	var f *excelize.File
	if len(src) > 0 {
		var err error
		f, err = excelize.OpenReader(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("open embedded workbook: %w", err)
		}
	} else {
		f = excelize.NewFile()
	}
	defer f.Close()

	if err := prepareSheet(f, sheet, len(src) == 0); err != nil {
		return nil, err
	}

	for i, s := range data.Series {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := f.SetCellValue(sheet, cell, s.Name); err != nil {
			return nil, err
		}
		for j, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+2, j+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	for j, c := range data.Categories {
		cell, _ := excelize.CoordinatesToCellName(1, j+2)
		if err := f.SetCellValue(sheet, cell, c); err != nil {
			return nil, err
		}
	}

	if err := resizeTables(f, sheet, len(data.Series)+1, len(data.Categories)+1); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write embedded workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadWorkbook returns the chart data stored on sheet in the layout written
// by WriteWorkbook. Non-numeric value cells read as NaN.
func ReadWorkbook(src []byte, sheet string) (models.ChartData, error) {
	var data models.ChartData
	f, err := excelize.OpenReader(bytes.NewReader(src))
	if err != nil {
		return data, fmt.Errorf("open embedded workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return data, err
	}
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return data, nil
	}

	header := rows[0]
	for len(header) > 1 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	for _, name := range header[min(1, len(header)):] {
		data.Series = append(data.Series, models.ChartSeries{Name: name})
	}
	for _, row := range rows[1:] {
		cat := ""
		if len(row) > 0 {
			cat = row[0]
		}
		data.Categories = append(data.Categories, cat)
		for i := range data.Series {
			data.Series[i].Values = append(data.Series[i].Values, parseCell(row, i+1))
		}
	}
	return data, nil
}

// prepareSheet makes sure sheet exists and is empty.
func prepareSheet(f *excelize.File, sheet string, fresh bool) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx == -1 {
		if fresh {
			return f.SetSheetName(f.GetSheetName(0), sheet)
		}
		_, err := f.NewSheet(sheet)
		return err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	for r, row := range rows {
		for c := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// resizeTables stretches the tables of sheet (chart workbooks saved by
// Office carry one) over the new data range.
func resizeTables(f *excelize.File, sheet string, cols, rows int) error {
	tables, err := f.GetTables(sheet)
	if err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(cols, max(rows, 2))
	for _, t := range tables {
		if err := f.DeleteTable(t.Name); err != nil {
			return err
		}
		t.Range = "A1:" + end
		if err := f.AddTable(sheet, &t); err != nil {
			return fmt.Errorf("resize table %s: %w", t.Name, err)
		}
	}
	return nil
}

func parseCell(row []string, col int) float64 {
	if col >= len(row) || row[col] == "" {
		return math.NaN()
	}
	switch v := models.ParseValue(row[col]).(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return math.NaN()
}

func blankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
