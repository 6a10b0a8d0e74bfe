package pptxtpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzhzhao/pptxtpl/internal/testdeck"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

func TestRepositionGroups(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().
		Group("left", func(g *testdeck.Slide) { g.Text("a", "a") }).
		Text("title", "t").
		Group("right", func(g *testdeck.Slide) { g.Text("b", "b") })
	tpl := openDeck(t, b)

	groups, err := tpl.GroupShapes(0)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "left", groups[0].Name())
	assert.Equal(t, "right", groups[1].Name())

	shapes := []drawing.Shape{groups[0], groups[1]}
	n := tpl.RepositionShapes(shapes, []models.PositionSize{
		{Left: models.EMU(models.Cm(1)), Top: models.EMU(models.Cm(2))},
		{Width: models.EMU(models.Inches(2)), Height: models.EMU(models.Pt(72))},
		{Left: models.EMU(0)},
	})
	assert.Equal(t, 2, n)

	out := roundTrip(t, tpl)
	groups, err = out.GroupShapes(0)
	require.NoError(t, err)

	g0 := groups[0].Geometry()
	assert.Equal(t, int64(360000), g0.Left)
	assert.Equal(t, int64(720000), g0.Top)
	assert.Equal(t, int64(3657600), g0.Width)

	g1 := groups[1].Geometry()
	assert.Equal(t, int64(1828800), g1.Width)
	assert.Equal(t, int64(914400), g1.Height)
}

func TestApplyFillColors(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().
		Shape("alert", "rect", "red").
		Shape("calm", "ellipse", " blue ").
		Shape("word", "rect", "redder")
	tpl := openDeck(t, b)

	n, err := tpl.ApplyFillColors(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	s, err := tpl.slide(0)
	require.NoError(t, err)
	shapes := s.shapes()
	want := []struct {
		rgb  string
		text string
	}{{"FF0000", ""}, {"0000FF", ""}, {"", "redder"}}
	for k, sh := range shapes {
		ts := sh.(*drawing.TextShape)
		rgb, _ := drawing.SolidFill(ts.SpPr())
		assert.Equal(t, want[k].rgb, rgb, ts.Name())
		assert.Equal(t, want[k].text, ts.Text(), ts.Name())
	}
}

func TestApplyFillColorsBadPalette(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().Shape("alert", "rect", "red")
	tpl := openDeck(t, b)

	_, err := tpl.ApplyFillColors(0, map[string]string{"red": "crimson"})
	assert.Error(t, err)
}

func TestSetTextColor(t *testing.T) {
	b := testdeck.New(t)
	b.Slide().Runs("title", "one ", "two").Picture("logo")
	tpl := openDeck(t, b)
	s, err := tpl.slide(0)
	require.NoError(t, err)
	shapes := s.shapes()

	require.NoError(t, SetTextColor(shapes[0], "#00ff00"))
	for _, r := range shapes[0].(*drawing.TextShape).TextBody().Paragraphs()[0].Runs() {
		rgb, ok := drawing.SolidFill(r.RPr())
		assert.True(t, ok)
		assert.Equal(t, "00FF00", rgb)
	}

	assert.Error(t, SetTextColor(shapes[1], "00FF00"))
	assert.Error(t, SetTextColor(shapes[0], "green"))
}
