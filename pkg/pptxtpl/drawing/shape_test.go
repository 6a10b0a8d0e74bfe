package drawing

import (
	"testing"

	"github.com/beevik/etree"
)

const slideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
<p:grpSpPr/>
<p:sp>
 <p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>
 <p:spPr><a:xfrm rot="5400000"><a:off x="100" y="200"/><a:ext cx="300" cy="400"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>
 <p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="en-US" b="1"/><a:t>{name0}</a:t></a:r><a:r><a:t> is {age0}</a:t></a:r></a:p><a:p><a:r><a:t>second</a:t></a:r></a:p></p:txBody>
</p:sp>
<p:grpSp>
 <p:nvGrpSpPr><p:cNvPr id="3" name="Group 2"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
 <p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="10" cy="10"/><a:chOff x="0" y="0"/><a:chExt cx="10" cy="10"/></a:xfrm></p:grpSpPr>
 <p:sp><p:nvSpPr><p:cNvPr id="4" name="Inner"/><p:cNvSpPr/><p:nvPr><p:ph idx="1"/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>inner</a:t></a:r></a:p></p:txBody></p:sp>
 <p:pic><p:nvPicPr><p:cNvPr id="5" name="Picture 4"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="rId3"/></p:blipFill><p:spPr/></p:pic>
</p:grpSp>
<p:graphicFrame>
 <p:nvGraphicFramePr><p:cNvPr id="6" name="Chart 5"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>
 <p:xfrm><a:off x="1" y="2"/><a:ext cx="3" cy="4"/></p:xfrm>
 <a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" r:id="rId2"/></a:graphicData></a:graphic>
</p:graphicFrame>
<p:graphicFrame>
 <p:nvGraphicFramePr><p:cNvPr id="7" name="Table 6"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>
 <p:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/></p:xfrm>
 <a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>
  <a:tblGrid><a:gridCol w="100"/><a:gridCol w="100"/></a:tblGrid>
  <a:tr h="10"><a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Name</a:t></a:r></a:p></a:txBody></a:tc><a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Age</a:t></a:r></a:p></a:txBody></a:tc></a:tr>
  <a:tr h="10"><a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>{n}</a:t></a:r></a:p></a:txBody></a:tc><a:tc/></a:tr>
 </a:tbl></a:graphicData></a:graphic>
</p:graphicFrame>
<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="8" name="Connector 7"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr><p:spPr/></p:cxnSp>
</p:spTree></p:cSld>
</p:sld>`

func loadTree(t *testing.T) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(slideXML); err != nil {
		t.Fatalf("parse: %v", err)
	}
	tree := Path(doc.Root(), NsP, "cSld", "spTree")
	if tree == nil {
		t.Fatal("spTree not found")
	}
	return tree
}

func TestShapesClassification(t *testing.T) {
	shapes := Shapes(loadTree(t))

	expected := []struct {
		kind Kind
		id   int
		name string
	}{
		{KindText, 2, "Title 1"},
		{KindGroup, 3, "Group 2"},
		{KindChart, 6, "Chart 5"},
		{KindTable, 7, "Table 6"},
		{KindOther, 8, "Connector 7"},
	}
	if len(shapes) != len(expected) {
		t.Fatalf("Shapes() returned %d shapes, expected %d", len(shapes), len(expected))
	}
	for i, tt := range expected {
		s := shapes[i]
		if s.Kind() != tt.kind || s.ID() != tt.id || s.Name() != tt.name {
			t.Errorf("shape %d = (%s, %d, %q), expected (%s, %d, %q)",
				i, s.Kind(), s.ID(), s.Name(), tt.kind, tt.id, tt.name)
		}
	}
}

func TestVariantAccessors(t *testing.T) {
	shapes := Shapes(loadTree(t))

	text := shapes[0].(*TextShape)
	if got := text.Text(); got != "{name0} is {age0}\nsecond" {
		t.Errorf("Text() = %q", got)
	}
	if !text.IsTextBox() || text.IsPlaceholder() {
		t.Errorf("IsTextBox/IsPlaceholder = %v/%v", text.IsTextBox(), text.IsPlaceholder())
	}
	if got := text.PresetGeometry(); got != "rect" {
		t.Errorf("PresetGeometry() = %q", got)
	}

	group := shapes[1].(*GroupShape)
	children := group.Shapes()
	if len(children) != 2 {
		t.Fatalf("group has %d children, expected 2", len(children))
	}
	if !children[0].(*TextShape).IsPlaceholder() {
		t.Error("inner shape should be a placeholder")
	}
	if got := children[1].(*PictureShape).EmbedID(); got != "rId3" {
		t.Errorf("EmbedID() = %q", got)
	}

	if got := shapes[2].(*ChartShape).RelID(); got != "rId2" {
		t.Errorf("RelID() = %q", got)
	}

	tbl := shapes[3].(*TableShape).Table()
	if tbl.Columns() != 2 || len(tbl.Rows()) != 2 {
		t.Errorf("table is %dx%d, expected 2x2", len(tbl.Rows()), tbl.Columns())
	}
}

func TestFlatten(t *testing.T) {
	flat := Flatten(Shapes(loadTree(t)))
	var names []string
	for _, s := range flat {
		names = append(names, s.Name())
	}
	expected := []string{"Title 1", "Inner", "Picture 4", "Chart 5", "Table 6", "Connector 7"}
	if len(names) != len(expected) {
		t.Fatalf("Flatten() = %q, expected %q", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Flatten()[%d] = %q, expected %q", i, names[i], expected[i])
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindText, "text"},
		{KindTable, "table"},
		{KindChart, "chart"},
		{KindPicture, "picture"},
		{KindGroup, "group"},
		{KindOther, "other"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

func TestRemoveShape(t *testing.T) {
	tree := loadTree(t)
	RemoveShape(Shapes(tree)[0])
	if got := Shapes(tree)[0].Name(); got != "Group 2" {
		t.Errorf("first shape after removal = %q", got)
	}
}
