package drawing

import (
	"strconv"

	"github.com/beevik/etree"
)

// Kind identifies the variant of a Shape.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindTable
	KindChart
	KindPicture
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTable:
		return "table"
	case KindChart:
		return "chart"
	case KindPicture:
		return "picture"
	case KindGroup:
		return "group"
	default:
		return "other"
	}
}

// Shape is one entry of a shape tree. The concrete type is one of
// *TextShape, *TableShape, *ChartShape, *PictureShape, *GroupShape or
// *OtherShape.
type Shape interface {
	Element() *etree.Element
	Kind() Kind
	ID() int
	Name() string
	Geometry() Geometry
	SetGeometry(g GeometryUpdate)
}

type base struct {
	el *etree.Element
}

// Element returns the underlying XML element.
func (b *base) Element() *etree.Element { return b.el }

// ID returns the cNvPr id of the shape.
func (b *base) ID() int {
	id, _ := strconv.Atoi(b.cNvPr().SelectAttrValue("id", "0"))
	return id
}

// Name returns the cNvPr name of the shape.
func (b *base) Name() string {
	if c := b.cNvPr(); c != nil {
		return c.SelectAttrValue("name", "")
	}
	return ""
}

// cNvPr finds the non-visual drawing properties, which sit in the first
// child (nvSpPr, nvPicPr, nvGrpSpPr, ...).
func (b *base) cNvPr() *etree.Element {
	for _, nv := range b.el.ChildElements() {
		if c := Child(nv, NsP, "cNvPr"); c != nil {
			return c
		}
	}
	return etree.NewElement("p:cNvPr")
}

// Geometry returns the position and size of the shape.
func (b *base) Geometry() Geometry {
	return readXfrm(xfrmOf(b.el, false))
}

// SetGeometry updates the non-nil fields of g.
func (b *base) SetGeometry(g GeometryUpdate) {
	writeXfrm(xfrmOf(b.el, true), g)
}

// TextShape is an auto shape, text box or placeholder (p:sp).
type TextShape struct{ base }

func (*TextShape) Kind() Kind { return KindText }

// TextBody returns the text body, or nil when the shape has none.
func (s *TextShape) TextBody() *TextBody {
	if tb := Child(s.el, NsP, "txBody"); tb != nil {
		return &TextBody{el: tb}
	}
	return nil
}

// Text returns the text of the shape.
func (s *TextShape) Text() string {
	if tb := s.TextBody(); tb != nil {
		return tb.Text()
	}
	return ""
}

// PresetGeometry returns the preset geometry name (e.g. "rect").
func (s *TextShape) PresetGeometry() string {
	if pg := Child(Child(s.el, NsP, "spPr"), NsA, "prstGeom"); pg != nil {
		return pg.SelectAttrValue("prst", "")
	}
	return ""
}

// IsPlaceholder reports whether the shape inherits from a layout placeholder.
func (s *TextShape) IsPlaceholder() bool {
	return Path(s.el, NsP, "nvSpPr", "nvPr", "ph") != nil
}

// IsTextBox reports whether the shape is a text box.
func (s *TextShape) IsTextBox() bool {
	c := Path(s.el, NsP, "nvSpPr", "cNvSpPr")
	return c != nil && c.SelectAttrValue("txBox", "") == "1"
}

// SpPr returns the shape properties element, creating it when absent.
func (s *TextShape) SpPr() *etree.Element {
	return EnsureChild(s.el, NsP, "spPr", "style", "txBody", "extLst")
}

// TableShape is a graphic frame holding a table.
type TableShape struct{ base }

func (*TableShape) Kind() Kind { return KindTable }

// Table returns the table content.
func (s *TableShape) Table() *Table {
	return &Table{el: Child(graphicData(s.el), NsA, "tbl")}
}

// ChartShape is a graphic frame referencing a chart part.
type ChartShape struct{ base }

func (*ChartShape) Kind() Kind { return KindChart }

// RelID returns the relationship id of the chart part.
func (s *ChartShape) RelID() string {
	if c := Child(graphicData(s.el), NsC, "chart"); c != nil {
		return RelAttr(c, "id")
	}
	return ""
}

// PictureShape is a picture (p:pic).
type PictureShape struct{ base }

func (*PictureShape) Kind() Kind { return KindPicture }

// EmbedID returns the relationship id of the embedded image.
func (s *PictureShape) EmbedID() string {
	if blip := Path(s.el, NsP, "blipFill"); blip != nil {
		if b := Child(blip, NsA, "blip"); b != nil {
			return RelAttr(b, "embed")
		}
	}
	return ""
}

// GroupShape is a group of shapes positioned as one unit (p:grpSp).
type GroupShape struct{ base }

func (*GroupShape) Kind() Kind { return KindGroup }

// Shapes returns the direct children of the group.
func (s *GroupShape) Shapes() []Shape {
	return Shapes(s.el)
}

// OtherShape is any shape without dedicated handling: connectors, OLE
// frames, content parts, alternate content.
type OtherShape struct{ base }

func (*OtherShape) Kind() Kind { return KindOther }

// Wrap classifies el as a shape variant.
func Wrap(el *etree.Element) Shape {
	b := base{el: el}
	switch {
	case Is(el, NsP, "sp"):
		return &TextShape{b}
	case Is(el, NsP, "grpSp"):
		return &GroupShape{b}
	case Is(el, NsP, "pic"):
		return &PictureShape{b}
	case Is(el, NsP, "graphicFrame"):
		switch graphicData(el).SelectAttrValue("uri", "") {
		case URIChrt:
			return &ChartShape{b}
		case URITbl:
			return &TableShape{b}
		}
	}
	return &OtherShape{b}
}

// Shapes lists the shapes held by a shape tree (p:spTree) or group
// (p:grpSp), in z-order.
func Shapes(container *etree.Element) []Shape {
	var out []Shape
	for _, el := range container.ChildElements() {
		if !IsShapeElement(el) {
			continue
		}
		out = append(out, Wrap(el))
	}
	return out
}

// IsShapeElement reports whether a child of a shape tree is a shape rather
// than the tree's own properties.
func IsShapeElement(el *etree.Element) bool {
	switch el.Tag {
	case "nvGrpSpPr", "grpSpPr", "extLst":
		return false
	}
	return true
}

// Flatten returns the shapes of a tree with the children of top-level
// groups inlined, one level deep. Nested groups are returned as is.
func Flatten(shapes []Shape) []Shape {
	var out []Shape
	for _, s := range shapes {
		if g, ok := s.(*GroupShape); ok {
			out = append(out, g.Shapes()...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// RemoveShape detaches a shape from its tree.
func RemoveShape(s Shape) {
	Remove(s.Element())
}

func graphicData(frame *etree.Element) *etree.Element {
	if gd := Path(frame, NsA, "graphic", "graphicData"); gd != nil {
		return gd
	}
	return etree.NewElement("a:graphicData")
}

// RelAttr returns the value of the relationships-namespace attribute key
// (r:id, r:embed, ...) of el, or "".
func RelAttr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == key && (a.Space == "r" || a.NamespaceURI() == NsR) {
			return a.Value
		}
	}
	return ""
}
