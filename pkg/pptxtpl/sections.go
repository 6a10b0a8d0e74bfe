package pptxtpl

import (
	"github.com/beevik/etree"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
)

// sectionEntries returns the p14:sldId elements of every section of the
// presentation, in section order.
func (t *Template) sectionEntries() []*etree.Element {
	var out []*etree.Element
	ext := drawing.Child(t.presRoot(), drawing.NsP, "extLst")
	for _, e := range drawing.Children(ext, drawing.NsP, "ext") {
		for _, section := range drawing.Children(drawing.Child(e, drawing.NsP14, "sectionLst"), drawing.NsP14, "section") {
			out = append(out, drawing.Children(drawing.Child(section, drawing.NsP14, "sldIdLst"), drawing.NsP14, "sldId")...)
		}
	}
	return out
}

func (t *Template) sectionEntry(id string) *etree.Element {
	for _, el := range t.sectionEntries() {
		if el.SelectAttrValue("id", "") == id {
			return el
		}
	}
	return nil
}

// removeFromSection drops the slide id from its section. The section
// itself stays, even when it is left empty.
func (t *Template) removeFromSection(id string) {
	drawing.Remove(t.sectionEntry(id))
}

// addToSection lists the slide entry at index i of the slide list in the
// section of its predecessor, or of its successor when it comes first.
// It returns the new element, nil when the deck has no sections.
func (t *Template) addToSection(i int) *etree.Element {
	entries := t.slideEntries()
	if i < 0 || i >= len(entries) {
		return nil
	}
	id := entries[i].SelectAttrValue("id", "")
	if i > 0 {
		if prev := t.sectionEntry(entries[i-1].SelectAttrValue("id", "")); prev != nil {
			el := prev.Copy()
			el.CreateAttr("id", id)
			prev.Parent().InsertChildAt(prev.Index()+1, el)
			return el
		}
	}
	if i+1 < len(entries) {
		if next := t.sectionEntry(entries[i+1].SelectAttrValue("id", "")); next != nil {
			el := next.Copy()
			el.CreateAttr("id", id)
			next.Parent().InsertChildAt(next.Index(), el)
			return el
		}
	}
	return nil
}
