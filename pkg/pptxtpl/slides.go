package pptxtpl

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
)

// MoveSlide moves slide from so that it ends up at index to.
func (t *Template) MoveSlide(from, to int) error {
	entries := t.slideEntries()
	n := len(entries)
	if from < 0 || from >= n {
		return NewSlideError(from, "move", fmt.Errorf("%w: %d (deck has %d slides)", ErrSlideIndex, from, n))
	}
	if to < 0 || to >= n {
		return NewSlideError(from, "move", fmt.Errorf("%w: target %d (deck has %d slides)", ErrSlideIndex, to, n))
	}
	if from == to {
		return nil
	}
	t.moveEntry(entries[from], to)
	if el := t.sectionEntry(entries[from].SelectAttrValue("id", "")); el != nil {
		drawing.Remove(el)
		t.addToSection(to)
	}
	t.log.Debug("moved slide", zap.Int("from", from), zap.Int("to", to))
	return nil
}

// moveEntry places a p:sldId at index among the other entries.
func (t *Template) moveEntry(el *etree.Element, index int) {
	lst := t.slideList(false)
	lst.RemoveChild(el)
	rest := drawing.Children(lst, drawing.NsP, "sldId")
	if index < len(rest) {
		lst.InsertChildAt(rest[index].Index(), el)
		return
	}
	drawing.InsertBefore(lst, el, "extLst")
}

// DeleteSlide removes slide i from the deck. Its parts are dropped on save
// unless another part still refers to them.
func (t *Template) DeleteSlide(i int) error {
	entries := t.slideEntries()
	if i < 0 || i >= len(entries) {
		return NewSlideError(i, "delete", fmt.Errorf("%w: %d (deck has %d slides)", ErrSlideIndex, i, len(entries)))
	}
	entry := entries[i]
	t.pres.Rels().Remove(drawing.RelAttr(entry, "id"))
	t.slideList(false).RemoveChild(entry)
	t.removeFromSection(entry.SelectAttrValue("id", ""))
	t.log.Debug("deleted slide", zap.Int("slide", i))
	return nil
}

// DeleteSlides removes several slides given by their current indexes.
// Duplicates are ignored. Nothing is removed if an index is out of range.
func (t *Template) DeleteSlides(indexes []int) error {
	n := t.SlideCount()
	uniq := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= n {
			return NewSlideError(i, "delete", fmt.Errorf("%w: %d (deck has %d slides)", ErrSlideIndex, i, n))
		}
		uniq[i] = true
	}
	sorted := make([]int, 0, len(uniq))
	for i := range uniq {
		sorted = append(sorted, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, i := range sorted {
		if err := t.DeleteSlide(i); err != nil {
			return err
		}
	}
	return nil
}

// SlideIDIndex maps the identifier of every slide marker
// ("{slide_id=intro}") to the indexes of the slides carrying it. Only the
// first marker of a slide counts.
func (t *Template) SlideIDIndex() (map[string][]int, error) {
	slides, err := t.slides()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]int)
	for _, s := range slides {
		if id, ok := t.slideID(s); ok {
			out[id] = append(out[id], s.index)
		}
	}
	return out, nil
}

func (t *Template) slideID(s *slide) (string, bool) {
	for _, sh := range drawing.Flatten(s.shapes()) {
		ts, ok := sh.(*drawing.TextShape)
		if !ok {
			continue
		}
		if id, ok := t.format.SlideID(ts.Text()); ok {
			return id, true
		}
	}
	return "", false
}
