package drawing

import (
	"strconv"

	"github.com/beevik/etree"
)

// Geometry is the position, size and rotation of a shape, in EMU and
// degrees.
type Geometry struct {
	Left, Top     int64
	Width, Height int64
	Rotation      float64
	// Set is false when the shape carries no transform of its own
	// (typically a placeholder inheriting from its layout).
	Set bool
}

// GeometryUpdate holds the fields to change. Nil fields keep their value.
type GeometryUpdate struct {
	Left, Top     *int64
	Width, Height *int64
	Rotation      *float64
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// xfrmOf locates the transform element of a shape. Graphic frames carry
// p:xfrm directly, groups carry it in p:grpSpPr and the others in p:spPr.
func xfrmOf(el *etree.Element, create bool) *etree.Element {
	switch {
	case Is(el, NsP, "graphicFrame"):
		if x := Child(el, NsP, "xfrm"); x != nil || !create {
			return x
		}
		return NewChild(el, NsP, "xfrm", "graphic")
	case Is(el, NsP, "grpSp"):
		pr := Child(el, NsP, "grpSpPr")
		if pr == nil {
			if !create {
				return nil
			}
			pr = NewChild(el, NsP, "grpSpPr",
				"sp", "grpSp", "graphicFrame", "cxnSp", "pic", "contentPart", "extLst")
		}
		return xfrmIn(pr, create)
	case Is(el, NsP, "sp"), Is(el, NsP, "pic"), Is(el, NsP, "cxnSp"):
		pr := Child(el, NsP, "spPr")
		if pr == nil {
			if !create {
				return nil
			}
			pr = NewChild(el, NsP, "spPr", "style", "txBody", "extLst")
		}
		return xfrmIn(pr, create)
	}
	return nil
}

func xfrmIn(pr *etree.Element, create bool) *etree.Element {
	if x := Child(pr, NsA, "xfrm"); x != nil || !create {
		return x
	}
	x := etree.NewElement(qualify(PrefixFor(pr, NsA), "xfrm"))
	pr.InsertChildAt(0, x)
	return x
}

func readXfrm(x *etree.Element) Geometry {
	var g Geometry
	if x == nil {
		return g
	}
	off := Child(x, NsA, "off")
	ext := Child(x, NsA, "ext")
	g.Set = off != nil || ext != nil
	g.Left, _ = attrInt(off, "x")
	g.Top, _ = attrInt(off, "y")
	g.Width, _ = attrInt(ext, "cx")
	g.Height, _ = attrInt(ext, "cy")
	if rot, ok := attrInt(x, "rot"); ok {
		g.Rotation = float64(rot) / RotationUnit
	}
	return g
}

func writeXfrm(x *etree.Element, u GeometryUpdate) {
	if x == nil {
		return
	}
	if u.Left != nil || u.Top != nil {
		off := ensureFirst(x, "off")
		setInt(off, "x", u.Left)
		setInt(off, "y", u.Top)
	}
	if u.Width != nil || u.Height != nil {
		ext := Child(x, NsA, "ext")
		if ext == nil {
			ext = NewChild(x, NsA, "ext", "chOff", "chExt")
		}
		setInt(ext, "cx", u.Width)
		setInt(ext, "cy", u.Height)
	}
	if u.Rotation != nil {
		if *u.Rotation == 0 {
			x.RemoveAttr("rot")
		} else {
			x.CreateAttr("rot", strconv.FormatInt(int64(*u.Rotation*RotationUnit), 10))
		}
	}
}

func ensureFirst(x *etree.Element, local string) *etree.Element {
	if c := Child(x, NsA, local); c != nil {
		return c
	}
	c := etree.NewElement(qualify(PrefixFor(x, NsA), local))
	x.InsertChildAt(0, c)
	return c
}

// setInt writes v to key. Missing attributes default to 0 so that the
// element stays schema-valid.
func setInt(el *etree.Element, key string, v *int64) {
	switch {
	case v != nil:
		el.CreateAttr(key, strconv.FormatInt(*v, 10))
	case el.SelectAttr(key) == nil:
		el.CreateAttr(key, "0")
	}
}
