package drawing

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var fillTags = []string{"noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill"}

// elements that follow the fill in a:spPr
var spPrAfterFill = []string{"ln", "effectLst", "effectDag", "scene3d", "sp3d", "extLst"}

// elements that follow the fill in a:rPr
var rPrAfterFill = []string{
	"effectLst", "effectDag", "highlight", "uLnTx", "uLn", "uFillTx", "uFill",
	"latin", "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst",
}

// elements that follow a:latin in a:rPr
var rPrAfterLatin = []string{"ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst"}

// SetSolidFill replaces any fill of spPr with a solid RGB fill. hex is
// six hex digits, with or without a leading '#'.
func SetSolidFill(spPr *etree.Element, hex string) {
	setFill(spPr, hex, spPrAfterFill)
}

// SetTextColor sets a solid RGB fill on run properties.
func SetTextColor(rPr *etree.Element, hex string) {
	setFill(rPr, hex, rPrAfterFill)
}

func setFill(parent *etree.Element, hex string, followers []string) {
	for _, tag := range fillTags {
		for _, c := range Children(parent, NsA, tag) {
			parent.RemoveChild(c)
		}
	}
	fill := NewChild(parent, NsA, "solidFill", followers...)
	clr := NewChild(fill, NsA, "srgbClr")
	clr.CreateAttr("val", NormalizeHex(hex))
}

// SolidFill returns the RGB value of a solid fill on el, if any.
func SolidFill(el *etree.Element) (string, bool) {
	if clr := Path(el, NsA, "solidFill", "srgbClr"); clr != nil {
		return clr.SelectAttrValue("val", ""), true
	}
	return "", false
}

// SetFont sets the typeface and size (points) on run properties. An empty
// name or non-positive size leaves that property alone.
func SetFont(rPr *etree.Element, name string, size float64) {
	if size > 0 {
		rPr.CreateAttr("sz", strconv.Itoa(int(size*100+0.5)))
	}
	if name != "" {
		latin := EnsureChild(rPr, NsA, "latin", rPrAfterLatin...)
		latin.CreateAttr("typeface", name)
	}
}

// NormalizeHex upper-cases an RGB value and drops a leading '#'.
func NormalizeHex(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// ValidHex reports whether hex is a six-digit RGB value.
func ValidHex(hex string) bool {
	h := NormalizeHex(hex)
	if len(h) != 6 {
		return false
	}
	_, err := strconv.ParseUint(h, 16, 32)
	return err == nil
}
