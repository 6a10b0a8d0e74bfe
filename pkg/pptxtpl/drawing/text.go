package drawing

import (
	"strings"

	"github.com/beevik/etree"
)

// TextBody is a p:txBody, a:txBody or c:rich element.
type TextBody struct {
	el *etree.Element
}

// NewTextBody wraps an existing text body element.
func NewTextBody(el *etree.Element) *TextBody {
	return &TextBody{el: el}
}

// Element returns the underlying XML element.
func (tb *TextBody) Element() *etree.Element { return tb.el }

// Paragraphs returns the a:p children.
func (tb *TextBody) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range Children(tb.el, NsA, "p") {
		out = append(out, &Paragraph{el: p})
	}
	return out
}

// Text joins paragraph texts with newlines.
func (tb *TextBody) Text() string {
	var parts []string
	for _, p := range tb.Paragraphs() {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the content with a single paragraph holding one run.
// Paragraph and run properties of the first paragraph are kept.
func (tb *TextBody) SetText(text string) {
	paras := tb.Paragraphs()
	if len(paras) == 0 {
		p := NewChild(tb.el, NsA, "p", "extLst")
		paras = []*Paragraph{{el: p}}
	}
	for _, p := range paras[1:] {
		Remove(p.el)
	}
	paras[0].SetText(text)
}

// Paragraph is an a:p element.
type Paragraph struct {
	el *etree.Element
}

// Element returns the underlying XML element.
func (p *Paragraph) Element() *etree.Element { return p.el }

// Runs returns the text-carrying children (a:r and a:fld) in order.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, c := range p.el.ChildElements() {
		if Is(c, NsA, "r") || Is(c, NsA, "fld") {
			out = append(out, &Run{el: c})
		}
	}
	return out
}

// Text concatenates the runs. Line breaks (a:br) become a vertical tab.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, c := range p.el.ChildElements() {
		switch {
		case Is(c, NsA, "r"), Is(c, NsA, "fld"):
			sb.WriteString((&Run{el: c}).Text())
		case Is(c, NsA, "br"):
			sb.WriteString("\v")
		}
	}
	return sb.String()
}

// SetText replaces the runs with a single run carrying text. The run
// properties of the first existing run are kept.
func (p *Paragraph) SetText(text string) {
	var rPr *etree.Element
	if runs := p.Runs(); len(runs) > 0 {
		if r := Child(runs[0].el, NsA, "rPr"); r != nil {
			rPr = r.Copy()
		}
	}
	for _, c := range p.el.ChildElements() {
		if Is(c, NsA, "r") || Is(c, NsA, "fld") || Is(c, NsA, "br") {
			p.el.RemoveChild(c)
		}
	}
	r := p.AddRun(text)
	if rPr != nil {
		r.el.InsertChildAt(0, rPr)
	}
}

// AddRun appends a run before the end-of-paragraph properties.
func (p *Paragraph) AddRun(text string) *Run {
	r := NewChild(p.el, NsA, "r", "endParaRPr")
	run := &Run{el: r}
	run.SetText(text)
	return run
}

// Run is an a:r or a:fld element.
type Run struct {
	el *etree.Element
}

// Element returns the underlying XML element.
func (r *Run) Element() *etree.Element { return r.el }

// Text returns the content of a:t.
func (r *Run) Text() string {
	if t := Child(r.el, NsA, "t"); t != nil {
		return t.Text()
	}
	return ""
}

// SetText replaces the content of a:t, creating it when absent.
func (r *Run) SetText(text string) {
	EnsureChild(r.el, NsA, "t").SetText(text)
}

// RPr returns the run properties, creating them when absent.
func (r *Run) RPr() *etree.Element {
	if c := Child(r.el, NsA, "rPr"); c != nil {
		return c
	}
	c := etree.NewElement(qualify(PrefixFor(r.el, NsA), "rPr"))
	r.el.InsertChildAt(0, c)
	return c
}

// RunTexts returns the text of every run in p.
func RunTexts(p *Paragraph) []string {
	runs := p.Runs()
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.Text()
	}
	return out
}
