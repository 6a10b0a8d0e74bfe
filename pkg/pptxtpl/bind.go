package pptxtpl

import (
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

// Bind replaces the labels of slide i found in bindings with their
// values. Labels without a binding are left for Prune; bindings without a
// label are ignored. Formatting of each run is kept.
func (t *Template) Bind(i int, bindings models.Bindings) error {
	s, err := t.slide(i)
	if err != nil {
		return NewSlideError(i, "bind", err)
	}
	values := bindings.Strings()

	replaced := 0
	for _, sh := range t.scan(s) {
		for _, tb := range t.textBodies(s, sh) {
			replaced += t.bindBody(tb, values)
		}
	}
	t.log.Debug("bound labels", zap.Int("slide", i), zap.Int("runs", replaced))
	return nil
}

// BindAll applies bindings to every slide.
func (t *Template) BindAll(bindings models.Bindings) error {
	for i := 0; i < t.SlideCount(); i++ {
		if err := t.Bind(i, bindings); err != nil {
			return err
		}
	}
	return nil
}

// bindBody splices split labels back together and substitutes values,
// paragraph by paragraph. It returns the number of runs changed.
func (t *Template) bindBody(tb *drawing.TextBody, values map[string]string) int {
	changed := 0
	for _, p := range tb.Paragraphs() {
		runs := p.Runs()
		texts := t.format.Splice(drawing.RunTexts(p))
		for j, r := range runs {
			text, ok := t.format.Replace(texts[j], values)
			if ok || text != r.Text() {
				r.SetText(text)
				changed++
			}
		}
	}
	return changed
}
