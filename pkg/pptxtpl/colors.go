package pptxtpl

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
)

// DefaultPalette maps marker words to RGB fills.
var DefaultPalette = map[string]string{
	"red":  "FF0000",
	"blue": "0000FF",
}

// ApplyFillColors gives every text shape of slide i (groups entered one
// level deep) whose whole text is a key of palette a solid fill of that
// colour, then clears its text. A nil palette means DefaultPalette. It
// returns the number of shapes coloured.
func (t *Template) ApplyFillColors(i int, palette map[string]string) (int, error) {
	if palette == nil {
		palette = DefaultPalette
	}
	for key, hex := range palette {
		if !drawing.ValidHex(hex) {
			return 0, NewSlideError(i, "fill", fmt.Errorf("colour %q for %q is not an RGB value", hex, key))
		}
	}
	s, err := t.slide(i)
	if err != nil {
		return 0, NewSlideError(i, "fill", err)
	}

	n := 0
	for _, sh := range drawing.Flatten(s.shapes()) {
		ts, ok := sh.(*drawing.TextShape)
		if !ok || ts.TextBody() == nil {
			continue
		}
		hex, ok := palette[strings.TrimSpace(ts.Text())]
		if !ok {
			continue
		}
		drawing.SetSolidFill(ts.SpPr(), hex)
		ts.TextBody().SetText("")
		n++
		t.log.Debug("filled shape", zap.Int("slide", i), zap.String("shape", ts.Name()), zap.String("rgb", hex))
	}
	return n, nil
}

// SetTextColor sets the colour of every run of a text shape.
func SetTextColor(sh drawing.Shape, rgb string) error {
	if !drawing.ValidHex(rgb) {
		return fmt.Errorf("colour %q is not an RGB value", rgb)
	}
	ts, ok := sh.(*drawing.TextShape)
	if !ok {
		return fmt.Errorf("shape %q is a %s shape, not a text shape", sh.Name(), sh.Kind())
	}
	tb := ts.TextBody()
	if tb == nil {
		return nil
	}
	for _, p := range tb.Paragraphs() {
		for _, r := range p.Runs() {
			drawing.SetTextColor(r.RPr(), rgb)
		}
	}
	return nil
}
