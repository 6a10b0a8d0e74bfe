package drawing

import (
	"reflect"
	"testing"
)

func TestRunTexts(t *testing.T) {
	text := Shapes(loadTree(t))[0].(*TextShape)
	paras := text.TextBody().Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, expected 2", len(paras))
	}
	if got := RunTexts(paras[0]); !reflect.DeepEqual(got, []string{"{name0}", " is {age0}"}) {
		t.Errorf("RunTexts = %q", got)
	}
}

func TestParagraphSetTextKeepsRunProperties(t *testing.T) {
	text := Shapes(loadTree(t))[0].(*TextShape)
	p := text.TextBody().Paragraphs()[0]

	p.SetText("zzz is 90")

	runs := p.Runs()
	if len(runs) != 1 {
		t.Fatalf("got %d runs, expected 1", len(runs))
	}
	if runs[0].Text() != "zzz is 90" {
		t.Errorf("Text() = %q", runs[0].Text())
	}
	rPr := Child(runs[0].Element(), NsA, "rPr")
	if rPr == nil || rPr.SelectAttrValue("b", "") != "1" {
		t.Error("run properties of the first run were not kept")
	}
	if runs[0].Element().ChildElements()[0] != rPr {
		t.Error("rPr must be the first child of the run")
	}
}

func TestTextBodySetText(t *testing.T) {
	text := Shapes(loadTree(t))[0].(*TextShape)
	tb := text.TextBody()

	tb.SetText("")

	if n := len(tb.Paragraphs()); n != 1 {
		t.Errorf("got %d paragraphs, expected 1", n)
	}
	if got := tb.Text(); got != "" {
		t.Errorf("Text() = %q", got)
	}
}

func TestLineBreak(t *testing.T) {
	text := Shapes(loadTree(t))[0].(*TextShape)
	p := text.TextBody().Paragraphs()[1]
	NewChild(p.Element(), NsA, "br")
	p.AddRun("third")
	if got := p.Text(); got != "second\vthird" {
		t.Errorf("Text() = %q", got)
	}
}

func TestCellTextBody(t *testing.T) {
	tbl := Shapes(loadTree(t))[3].(*TableShape).Table()
	row := tbl.Rows()[1]
	cells := row.Cells()
	if got := cells[0].Text(); got != "{n}" {
		t.Errorf("cell 0 Text() = %q", got)
	}
	if got := cells[1].Text(); got != "" {
		t.Errorf("cell 1 Text() = %q", got)
	}
	cells[1].TextBody().SetText("x")
	if got := cells[1].Text(); got != "x" {
		t.Errorf("cell 1 Text() after SetText = %q", got)
	}

	tbl.RemoveRow(row)
	if n := len(tbl.Rows()); n != 1 {
		t.Errorf("got %d rows after RemoveRow, expected 1", n)
	}
}
