package pptxtpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzhzhao/pptxtpl/internal/testdeck"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

func TestBindSplitRuns(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().
		Runs("person", "{name0", "} is {", "age0}").
		Text("untouched", "no labels here")
	tpl := openDeck(t, b)

	err := tpl.Bind(0, models.Bindings{"{name0}": "zzz", "{age0}": 90})
	require.NoError(t, err)
	assert.Equal(t, []string{"zzz is 90", "no labels here"}, texts(t, tpl, 0))

	// every run keeps its own properties
	s, err := tpl.slide(0)
	require.NoError(t, err)
	ts := s.shapes()[0].(*drawing.TextShape)
	runs := ts.TextBody().Paragraphs()[0].Runs()
	require.Len(t, runs, 3)
	for _, r := range runs {
		assert.Equal(t, "en-US", r.RPr().SelectAttrValue("lang", ""))
	}
}

func TestBindIsIdempotent(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().Text("title", "Dear {name}, {missing}")
	tpl := openDeck(t, b)

	bindings := models.Bindings{"{name}": "Ann"}
	require.NoError(t, tpl.Bind(0, bindings))
	first := texts(t, tpl, 0)
	require.NoError(t, tpl.Bind(0, bindings))
	assert.Equal(t, first, texts(t, tpl, 0))
	assert.Equal(t, []string{"Dear Ann, {missing}"}, first)

	labels, err := tpl.Labels(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"{missing}"}, labels)
}

func TestBindTablesGroupsAndChartTitles(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().
		Group("card", func(g *testdeck.Slide) {
			g.Text("caption", "{caption}")
		}).
		Table("people", [][]string{{"Name", "Age"}, {"{name0}", "{age0}"}}).
		Chart(testdeck.Chart{Name: "sales", Title: "Sales {year}", Data: salesData})
	tpl := openDeck(t, b)

	require.NoError(t, tpl.BindAll(models.Bindings{
		"{caption}": "Team",
		"{name0}":   "Ann",
		"{age0}":    31.0,
		"{year}":    2024,
	}))

	assert.Equal(t, []string{"Team"}, texts(t, tpl, 0))

	s, err := tpl.slide(0)
	require.NoError(t, err)
	var table *drawing.TableShape
	for _, sh := range s.shapes() {
		if ts, ok := sh.(*drawing.TableShape); ok {
			table = ts
		}
	}
	require.NotNil(t, table)
	row := table.Table().Rows()[1].Cells()
	assert.Equal(t, "Ann", row[0].Text())
	assert.Equal(t, "31", row[1].Text())

	cs, _ := charts(t, tpl, 0)
	require.Len(t, cs, 1)
	assert.Equal(t, "Sales 2024", cs[0].Title())
}

func TestScan(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().
		Text("plain", "nothing").
		Text("labelled", "{a}").
		Group("outer", func(g *testdeck.Slide) {
			g.Text("inner", "{b}")
			g.Group("nested", func(n *testdeck.Slide) {
				n.Text("deep", "{c}")
			})
		}).
		Picture("logo")
	tpl := openDeck(t, b)

	found, err := tpl.Scan(0)
	require.NoError(t, err)
	var names []string
	for _, sh := range found {
		names = append(names, sh.Name())
	}
	assert.Equal(t, []string{"labelled", "inner"}, names)

	labels, err := tpl.Labels(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"{a}", "{b}", "{c}"}, labels)
}
