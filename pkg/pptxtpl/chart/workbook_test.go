package chart

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

func TestWriteWorkbookCreates(t *testing.T) {
	data := models.ChartData{
		Categories: []string{"Q1", "Q2"},
		Series: []models.ChartSeries{
			{Name: "North", Values: []float64{1, 2.5}},
			{Name: "South", Values: []float64{3, math.NaN()}},
		},
	}

	blob, err := WriteWorkbook(nil, "Data", data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Data"}, f.GetSheetList())
	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"", "North", "South"},
		{"Q1", "1", "3"},
		{"Q2", "2.5"},
	}, rows)

	back, err := ReadWorkbook(blob, "Data")
	require.NoError(t, err)
	assert.Equal(t, data.Categories, back.Categories)
	require.Len(t, back.Series, 2)
	assert.Equal(t, []float64{1, 2.5}, back.Series[0].Values)
	assert.Equal(t, 3.0, back.Series[1].Values[0])
	assert.True(t, math.IsNaN(back.Series[1].Values[1]))
}

func TestWriteWorkbookRewritesExisting(t *testing.T) {
	src := excelize.NewFile()
	require.NoError(t, src.SetSheetRow("Sheet1", "A1", &[]any{"", "Old1", "Old2", "Old3"}))
	require.NoError(t, src.SetSheetRow("Sheet1", "A2", &[]any{"x", 1, 2, 3}))
	require.NoError(t, src.SetSheetRow("Sheet1", "A3", &[]any{"y", 4, 5, 6}))
	_, err := src.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, src.SetCellValue("Notes", "A1", "keep me"))
	buf, err := src.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, src.Close())

	blob, err := WriteWorkbook(buf.Bytes(), "Sheet1", models.ChartData{
		Categories: []string{"a"},
		Series:     []models.ChartSeries{{Name: "New", Values: []float64{9}}},
	})
	require.NoError(t, err)

	back, err := ReadWorkbook(blob, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, back.Categories)
	require.Len(t, back.Series, 1)
	assert.Equal(t, "New", back.Series[0].Name)
	assert.Equal(t, []float64{9}, back.Series[0].Values)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "keep me", v)
}

func TestWriteWorkbookAddsMissingSheet(t *testing.T) {
	src := excelize.NewFile()
	buf, err := src.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, src.Close())

	blob, err := WriteWorkbook(buf.Bytes(), "Chart data", models.ChartData{
		Categories: []string{"a"},
		Series:     []models.ChartSeries{{Name: "s", Values: []float64{1}}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Chart data")
	assert.Contains(t, f.GetSheetList(), "Sheet1")
}
