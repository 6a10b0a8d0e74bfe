package drawing

import (
	"testing"
)

func TestSetSolidFill(t *testing.T) {
	text := Shapes(loadTree(t))[0].(*TextShape)
	spPr := text.SpPr()

	SetSolidFill(spPr, "#ff0000")
	SetSolidFill(spPr, "0000ff")

	if n := len(Children(spPr, NsA, "solidFill")); n != 1 {
		t.Fatalf("got %d solidFill elements, expected 1", n)
	}
	if got, ok := SolidFill(spPr); !ok || got != "0000FF" {
		t.Errorf("SolidFill() = %q, %v", got, ok)
	}

	var tags []string
	for _, c := range spPr.ChildElements() {
		tags = append(tags, c.Tag)
	}
	expected := []string{"xfrm", "prstGeom", "solidFill"}
	if len(tags) != len(expected) {
		t.Fatalf("spPr children = %q, expected %q", tags, expected)
	}
	for i := range expected {
		if tags[i] != expected[i] {
			t.Errorf("spPr children = %q, expected %q", tags, expected)
			break
		}
	}
}

func TestSetFont(t *testing.T) {
	text := Shapes(loadTree(t))[0].(*TextShape)
	run := text.TextBody().Paragraphs()[0].Runs()[1]
	rPr := run.RPr()

	SetFont(rPr, "Arial", 10.5)
	SetTextColor(rPr, "00ff00")

	if got := rPr.SelectAttrValue("sz", ""); got != "1050" {
		t.Errorf("sz = %q", got)
	}
	latin := Child(rPr, NsA, "latin")
	if latin == nil || latin.SelectAttrValue("typeface", "") != "Arial" {
		t.Fatal("latin typeface not set")
	}
	children := rPr.ChildElements()
	if children[0].Tag != "solidFill" || children[1].Tag != "latin" {
		t.Errorf("solidFill must precede latin")
	}
}

func TestValidHex(t *testing.T) {
	tests := []struct {
		hex      string
		expected bool
	}{
		{"FF0000", true},
		{"#00ff00", true},
		{"abc", false},
		{"GGGGGG", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidHex(tt.hex); got != tt.expected {
			t.Errorf("ValidHex(%q) = %v, expected %v", tt.hex, got, tt.expected)
		}
	}
}
