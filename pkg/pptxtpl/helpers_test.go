package pptxtpl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zzhzhao/pptxtpl/internal/testdeck"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/chart"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

func openDeck(t *testing.T, b *testdeck.Builder) *Template {
	t.Helper()
	r, size := b.Reader()
	tpl, err := OpenReader(r, size, DefaultOptions())
	require.NoError(t, err)
	return tpl
}

// roundTrip writes tpl out and opens the result again.
func roundTrip(t *testing.T, tpl *Template) *Template {
	t.Helper()
	var buf bytes.Buffer
	_, err := tpl.WriteTo(&buf)
	require.NoError(t, err)
	out, err := OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), DefaultOptions())
	require.NoError(t, err)
	return out
}

// texts returns the text of the text shapes of slide i, groups entered one
// level deep.
func texts(t *testing.T, tpl *Template, i int) []string {
	t.Helper()
	s, err := tpl.slide(i)
	require.NoError(t, err)
	var out []string
	for _, sh := range drawing.Flatten(s.shapes()) {
		if ts, ok := sh.(*drawing.TextShape); ok {
			out = append(out, ts.Text())
		}
	}
	return out
}

// charts returns the charts of slide i with their parts.
func charts(t *testing.T, tpl *Template, i int) ([]*chart.Chart, []*opc.Part) {
	t.Helper()
	s, err := tpl.slide(i)
	require.NoError(t, err)
	var cs []*chart.Chart
	var parts []*opc.Part
	for _, sh := range drawing.Flatten(s.shapes()) {
		if f, ok := sh.(*drawing.ChartShape); ok {
			c, p, err := tpl.chartOf(s, f)
			require.NoError(t, err)
			cs = append(cs, c)
			parts = append(parts, p)
		}
	}
	return cs, parts
}

func partNames(tpl *Template) []string {
	var out []string
	for _, p := range tpl.pkg.Parts() {
		out = append(out, p.Name)
	}
	return out
}

var salesData = models.ChartData{
	Categories: []string{"Q1", "Q2", "Q3"},
	Series: []models.ChartSeries{
		{Name: "North", Values: []float64{10, 20, 30}},
		{Name: "South", Values: []float64{5, 15, 25}},
	},
}
