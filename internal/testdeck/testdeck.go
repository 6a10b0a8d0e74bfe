// Package testdeck builds small pptx decks in memory for tests: a master,
// a layout, slides with text, tables, groups, pictures, charts backed by
// embedded workbooks, and notes.
package testdeck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/models"
)

const (
	nsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsC   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsA16 = "http://schemas.microsoft.com/office/drawing/2014/main"
	nsCS  = "http://schemas.microsoft.com/office/drawing/2012/chartStyle"

	relBase   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relStyle  = "http://schemas.microsoft.com/office/2011/relationships/chartStyle"
	relColors = "http://schemas.microsoft.com/office/2011/relationships/chartColorStyle"

	ctBase = "application/vnd.openxmlformats-officedocument."

	// PNG is the content of the picture part.
	PNG = "\x89PNG\r\n\x1a\n"
)

// Builder accumulates slides. Build it with New.
type Builder struct {
	t        testing.TB
	slides   []*Slide
	parts    map[string][]byte
	types    map[string]string
	charts   int
	image    bool
	sections []section
}

type section struct {
	name  string
	count int
}

// New returns an empty deck builder.
func New(t testing.TB) *Builder {
	t.Helper()
	return &Builder{
		t:     t,
		parts: make(map[string][]byte),
		types: make(map[string]string),
	}
}

type rel struct {
	id, typ, target string
	external        bool
}

// Slide is a slide under construction. Shapes are added in z-order.
type Slide struct {
	b        *Builder
	num      int
	buf      *strings.Builder
	rels     *[]rel
	nextID   *int
	notes    *string
	noMaster *bool
}

// Section groups the next count slides, in slide order, under a
// PowerPoint section called name.
func (b *Builder) Section(name string, count int) *Builder {
	b.sections = append(b.sections, section{name: name, count: count})
	return b
}

// Slide appends a new slide.
func (b *Builder) Slide() *Slide {
	id := 2
	notes := ""
	noMaster := false
	s := &Slide{
		b:        b,
		num:      len(b.slides) + 1,
		buf:      &strings.Builder{},
		rels:     &[]rel{{id: "rId1", typ: relBase + "slideLayout", target: "../slideLayouts/slideLayout1.xml"}},
		nextID:   &id,
		notes:    &notes,
		noMaster: &noMaster,
	}
	b.slides = append(b.slides, s)
	return s
}

func (s *Slide) id() int {
	id := *s.nextID
	*s.nextID++
	return id
}

func (s *Slide) addRel(typ, target string, external bool) string {
	id := fmt.Sprintf("rId%d", len(*s.rels)+1)
	*s.rels = append(*s.rels, rel{id: id, typ: typ, target: target, external: external})
	return id
}

func xfrm(tag string, id int) string {
	return fmt.Sprintf(`<%s><a:off x="%d" y="%d"/><a:ext cx="1828800" cy="457200"/></%s>`,
		tag, 457200*id, 228600*id, tag)
}

func creationID(id int) string {
	return fmt.Sprintf(`<a:extLst><a:ext uri="{FF2B5EF4-FFF2-40B4-BE49-F238E27FC236}">`+
		`<a16:creationId xmlns:a16="%s" id="{00000000-0000-0000-0000-%012d}"/></a:ext></a:extLst>`, nsA16, id)
}

func runXML(text string) string {
	return `<a:r><a:rPr lang="en-US" dirty="0"/><a:t>` + html.EscapeString(text) + `</a:t></a:r>`
}

func paragraphXML(runs ...string) string {
	if len(runs) == 0 {
		return `<a:p><a:endParaRPr lang="en-US"/></a:p>`
	}
	var sb strings.Builder
	sb.WriteString("<a:p>")
	for _, r := range runs {
		sb.WriteString(runXML(r))
	}
	sb.WriteString("</a:p>")
	return sb.String()
}

func (s *Slide) sp(name, prst string, txBox bool, body string) int {
	id := s.id()
	box := ""
	if txBox {
		box = ` txBox="1"`
	}
	fmt.Fprintf(s.buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s">%s</p:cNvPr><p:cNvSpPr%s/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr>%s<a:prstGeom prst="%s"><a:avLst/></a:prstGeom></p:spPr>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, html.EscapeString(name), creationID(id), box, xfrm("a:xfrm", id), prst, body)
	return id
}

// Text adds a text box with one single-run paragraph per entry.
func (s *Slide) Text(name string, paragraphs ...string) *Slide {
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(paragraphXML(p))
	}
	if len(paragraphs) == 0 {
		body.WriteString(paragraphXML())
	}
	s.sp(name, "rect", true, body.String())
	return s
}

// Runs adds a text box holding one paragraph split into the given runs.
func (s *Slide) Runs(name string, runs ...string) *Slide {
	s.sp(name, "rect", true, paragraphXML(runs...))
	return s
}

// Shape adds an auto shape with preset geometry prst and text.
func (s *Slide) Shape(name, prst, text string) *Slide {
	s.sp(name, prst, false, paragraphXML(text))
	return s
}

// Link adds a text box whose run links to url.
func (s *Slide) Link(name, text, url string) *Slide {
	rid := s.addRel(relBase+"hyperlink", url, true)
	body := `<a:p><a:r><a:rPr lang="en-US"><a:hlinkClick r:id="` + rid + `"/></a:rPr><a:t>` +
		html.EscapeString(text) + `</a:t></a:r></a:p>`
	s.sp(name, "rect", true, body)
	return s
}

// Table adds a table; the first row is the header.
func (s *Slide) Table(name string, rows [][]string) *Slide {
	id := s.id()
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	fmt.Fprintf(s.buf, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/>`+
		`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>%s`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`+
		`<a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`,
		id, html.EscapeString(name), xfrm("p:xfrm", id))
	for c := 0; c < cols; c++ {
		s.buf.WriteString(`<a:gridCol w="1219200"/>`)
	}
	s.buf.WriteString(`</a:tblGrid>`)
	for _, r := range rows {
		s.buf.WriteString(`<a:tr h="370840">`)
		for c := 0; c < cols; c++ {
			var p string
			if c < len(r) && r[c] != "" {
				p = paragraphXML(r[c])
			} else {
				p = paragraphXML()
			}
			s.buf.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>` + p + `</a:txBody><a:tcPr/></a:tc>`)
		}
		s.buf.WriteString(`</a:tr>`)
	}
	s.buf.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return s
}

// Group adds a group shape whose children are added by fill.
func (s *Slide) Group(name string, fill func(g *Slide)) *Slide {
	id := s.id()
	child := *s
	child.buf = &strings.Builder{}
	fill(&child)
	fmt.Fprintf(s.buf, `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="%s"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`+
		`<p:grpSpPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="3657600" cy="914400"/>`+
		`<a:chOff x="%d" y="%d"/><a:chExt cx="3657600" cy="914400"/></a:xfrm></p:grpSpPr>%s</p:grpSp>`,
		id, html.EscapeString(name), 457200*id, 228600*id, 457200*id, 228600*id, child.buf.String())
	return s
}

// Picture adds a picture shape. Every picture of the deck shares one
// image part.
func (s *Slide) Picture(name string) *Slide {
	s.b.image = true
	rid := s.addRel(relBase+"image", "../media/image1.png", false)
	id := s.id()
	fmt.Fprintf(s.buf, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, html.EscapeString(name), rid, xfrm("a:xfrm", id))
	return s
}

// Raw appends shape XML as is. Prefixes p, a and r are bound.
func (s *Slide) Raw(xml string) *Slide {
	s.buf.WriteString(xml)
	return s
}

// NextID reserves a shape id, for use with Raw.
func (s *Slide) NextID() int { return s.id() }

// Notes gives the slide a notes page holding text.
func (s *Slide) Notes(text string) *Slide {
	*s.notes = text
	return s
}

// NotesWithoutMaster gives the slide a notes page that is not related to
// the notes master.
func (s *Slide) NotesWithoutMaster(text string) *Slide {
	*s.notes = text
	*s.noMaster = true
	return s
}

// Chart describes a chart to add with Slide.Chart.
type Chart struct {
	// Name is the graphic frame name.
	Name string
	// Title is the chart title text; empty means no title.
	Title string
	// Plot is the plot element, "barChart" by default.
	Plot string
	// Data is written to the series caches and the embedded workbook.
	Data models.ChartData
	// NoWorkbook leaves the chart without embedded data.
	NoWorkbook bool
	// Legacy embeds the data as an .xls OLE object instead of an .xlsx
	// package.
	Legacy bool
}

// Chart adds a chart frame and its chart, workbook, style and colour
// parts.
func (s *Slide) Chart(c Chart) *Slide {
	b := s.b
	b.charts++
	n := b.charts
	chartName := fmt.Sprintf("/ppt/charts/chart%d.xml", n)
	rid := s.addRel(relBase+"chart", fmt.Sprintf("../charts/chart%d.xml", n), false)

	var rels []rel
	ext := ""
	switch {
	case c.NoWorkbook:
	case c.Legacy:
		wb := fmt.Sprintf("/ppt/embeddings/Microsoft_Excel_97-2003_Worksheet%d.xls", n)
		b.put(wb, "application/vnd.ms-excel", "legacy workbook")
		rels = append(rels, rel{id: "rId1", typ: relBase + "oleObject", target: "../embeddings/" + wb[len("/ppt/embeddings/"):]})
		ext = `<c:externalData r:id="rId1"><c:autoUpdate val="0"/></c:externalData>`
	default:
		wb := fmt.Sprintf("/ppt/embeddings/Microsoft_Excel_Sheet%d.xlsx", n)
		b.parts[wb] = b.workbook(c.Data)
		rels = append(rels, rel{id: "rId1", typ: relBase + "package", target: "../embeddings/" + wb[len("/ppt/embeddings/"):]})
		ext = `<c:externalData r:id="rId1"><c:autoUpdate val="0"/></c:externalData>`
	}
	style := fmt.Sprintf("/ppt/charts/style%d.xml", n)
	colors := fmt.Sprintf("/ppt/charts/colors%d.xml", n)
	b.put(style, "application/vnd.ms-office.chartstyle+xml",
		fmt.Sprintf(`<cs:chartStyle xmlns:cs="%s" xmlns:a="%s" id="201"><cs:axisTitle/></cs:chartStyle>`, nsCS, nsA))
	b.put(colors, "application/vnd.ms-office.chartcolorstyle+xml",
		fmt.Sprintf(`<cs:colorStyle xmlns:cs="%s" xmlns:a="%s" meth="cycle" id="10"><a:schemeClr val="accent1"/></cs:colorStyle>`, nsCS, nsA))
	rels = append(rels,
		rel{id: "rId2", typ: relStyle, target: fmt.Sprintf("style%d.xml", n)},
		rel{id: "rId3", typ: relColors, target: fmt.Sprintf("colors%d.xml", n)})

	b.put(chartName, ctBase+"drawingml.chart+xml", chartXML(c, ext))
	b.parts[relsName(chartName)] = relsXML(rels)

	id := s.id()
	fmt.Fprintf(s.buf, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>%s`+
		`<a:graphic><a:graphicData uri="%s"><c:chart xmlns:c="%s" r:id="%s"/></a:graphicData></a:graphic></p:graphicFrame>`,
		id, html.EscapeString(c.Name), xfrm("p:xfrm", id), nsC, nsC, rid)
	return s
}

func (b *Builder) workbook(data models.ChartData) []byte {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	set := func(col, row int, v any) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err == nil {
			err = f.SetCellValue(sheet, cell, v)
		}
		if err != nil {
			b.t.Fatalf("testdeck: workbook: %v", err)
		}
	}
	for j, s := range data.Series {
		set(j+2, 1, s.Name)
		for i, v := range s.Values {
			set(j+2, i+2, v)
		}
	}
	for i, c := range data.Categories {
		set(1, i+2, c)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		b.t.Fatalf("testdeck: workbook: %v", err)
	}
	return buf.Bytes()
}

func chartXML(c Chart, externalData string) string {
	plot := c.Plot
	if plot == "" {
		plot = "barChart"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s"><c:roundedCorners val="0"/><c:chart>`, nsC, nsA, nsR)
	if c.Title != "" {
		sb.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/>` + paragraphXML(c.Title) +
			`</c:rich></c:tx><c:overlay val="0"/></c:title><c:autoTitleDeleted val="0"/>`)
	} else {
		sb.WriteString(`<c:autoTitleDeleted val="1"/>`)
	}
	sb.WriteString(`<c:plotArea><c:layout/><c:` + plot + `>`)
	switch plot {
	case "barChart":
		sb.WriteString(`<c:barDir val="col"/><c:grouping val="clustered"/>`)
	case "lineChart":
		sb.WriteString(`<c:grouping val="standard"/>`)
	}
	sb.WriteString(`<c:varyColors val="0"/>`)

	last := len(c.Data.Categories) + 1
	for j, s := range c.Data.Series {
		col := string(rune('B' + j))
		fmt.Fprintf(&sb, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`+
			`<c:tx><c:strRef><c:f>Sheet1!$%s$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>%s</c:v></c:pt></c:strCache></c:strRef></c:tx>`,
			j, j, col, html.EscapeString(s.Name))
		fmt.Fprintf(&sb, `<c:cat><c:strRef><c:f>Sheet1!$A$2:$A$%d</c:f><c:strCache><c:ptCount val="%d"/>`, last, len(c.Data.Categories))
		for i, cat := range c.Data.Categories {
			fmt.Fprintf(&sb, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, html.EscapeString(cat))
		}
		fmt.Fprintf(&sb, `</c:strCache></c:strRef></c:cat><c:val><c:numRef><c:f>Sheet1!$%s$2:$%s$%d</c:f>`+
			`<c:numCache><c:formatCode>General</c:formatCode><c:ptCount val="%d"/>`, col, col, last, len(s.Values))
		for i, v := range s.Values {
			fmt.Fprintf(&sb, `<c:pt idx="%d"><c:v>%v</c:v></c:pt>`, i, v)
		}
		sb.WriteString(`</c:numCache></c:numRef></c:val></c:ser>`)
	}
	if plot != "pieChart" {
		sb.WriteString(`<c:axId val="1001"/><c:axId val="1002"/>`)
	}
	sb.WriteString(`</c:` + plot + `></c:plotArea><c:plotVisOnly val="1"/></c:chart>` + externalData + `</c:chartSpace>`)
	return sb.String()
}

func (b *Builder) put(name, contentType, xml string) {
	b.parts[name] = []byte(xml)
	b.types[name] = contentType
}

func relsName(part string) string {
	i := strings.LastIndex(part, "/")
	return part[:i] + "/_rels/" + part[i+1:] + ".rels"
}

func relsXML(rels []rel) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		mode := ""
		if r.external {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.id, r.typ, html.EscapeString(r.target), mode)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

func emptyTree() string {
	return `<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/></p:spTree></p:cSld>`
}

func (b *Builder) sectionsXML() string {
	if len(b.sections) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<p:extLst><p:ext uri="{521415D9-36F7-43E2-AB2F-B90AF26B5E84}">` +
		`<p14:sectionLst xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main">`)
	next := 256
	for i, sec := range b.sections {
		fmt.Fprintf(&sb, `<p14:section name="%s" id="{00000000-0000-0000-0000-%012d}"><p14:sldIdLst>`, html.EscapeString(sec.name), i+1)
		for k := 0; k < sec.count; k++ {
			fmt.Fprintf(&sb, `<p14:sldId id="%d"/>`, next)
			next++
		}
		sb.WriteString(`</p14:sldIdLst></p14:section>`)
	}
	sb.WriteString(`</p14:sectionLst></p:ext></p:extLst>`)
	return sb.String()
}

func root(tag, inner string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<p:%s xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">%s</p:%s>`, tag, nsA, nsR, nsP, inner, tag)
}

// Bytes assembles the deck as a pptx archive.
func (b *Builder) Bytes() []byte {
	b.t.Helper()
	parts := make(map[string][]byte, len(b.parts)+16)
	types := make(map[string]string, len(b.types)+16)
	for k, v := range b.parts {
		parts[k] = v
	}
	for k, v := range b.types {
		types[k] = v
	}
	put := func(name, contentType, xml string) {
		parts[name] = []byte(xml)
		if contentType != "" {
			types[name] = contentType
		}
	}

	put("/_rels/.rels", "", string(relsXML([]rel{
		{id: "rId1", typ: relBase + "officeDocument", target: "ppt/presentation.xml"},
	})))

	presRels := []rel{
		{id: "rId1", typ: relBase + "slideMaster", target: "slideMasters/slideMaster1.xml"},
		{id: "rId2", typ: relBase + "theme", target: "theme/theme1.xml"},
		{id: "rId3", typ: relBase + "notesMaster", target: "notesMasters/notesMaster1.xml"},
	}
	var sldIDs strings.Builder
	for _, s := range b.slides {
		rid := fmt.Sprintf("rId%d", 9+s.num)
		presRels = append(presRels, rel{id: rid, typ: relBase + "slide", target: fmt.Sprintf("slides/slide%d.xml", s.num)})
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="%s"/>`, 255+s.num, rid)
	}
	put("/ppt/presentation.xml", ctBase+"presentationml.presentation.main+xml", root("presentation",
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`+
			`<p:notesMasterIdLst><p:notesMasterId r:id="rId3"/></p:notesMasterIdLst>`+
			`<p:sldIdLst>`+sldIDs.String()+`</p:sldIdLst>`+
			`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>`+
			b.sectionsXML()))
	parts["/ppt/_rels/presentation.xml.rels"] = relsXML(presRels)

	put("/ppt/theme/theme1.xml", ctBase+"theme+xml",
		fmt.Sprintf(`<a:theme xmlns:a="%s" name="Office Theme"><a:themeElements/></a:theme>`, nsA))
	put("/ppt/slideMasters/slideMaster1.xml", ctBase+"presentationml.slideMaster+xml", root("sldMaster",
		emptyTree()+`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>`))
	parts["/ppt/slideMasters/_rels/slideMaster1.xml.rels"] = relsXML([]rel{
		{id: "rId1", typ: relBase + "slideLayout", target: "../slideLayouts/slideLayout1.xml"},
		{id: "rId2", typ: relBase + "theme", target: "../theme/theme1.xml"},
	})
	put("/ppt/slideLayouts/slideLayout1.xml", ctBase+"presentationml.slideLayout+xml", root("sldLayout", emptyTree()))
	parts["/ppt/slideLayouts/_rels/slideLayout1.xml.rels"] = relsXML([]rel{
		{id: "rId1", typ: relBase + "slideMaster", target: "../slideMasters/slideMaster1.xml"},
	})
	put("/ppt/notesMasters/notesMaster1.xml", ctBase+"presentationml.notesMaster+xml", root("notesMaster", emptyTree()))
	parts["/ppt/notesMasters/_rels/notesMaster1.xml.rels"] = relsXML([]rel{
		{id: "rId1", typ: relBase + "theme", target: "../theme/theme1.xml"},
	})
	if b.image {
		parts["/ppt/media/image1.png"] = []byte(PNG)
	}

	for _, s := range b.slides {
		name := fmt.Sprintf("/ppt/slides/slide%d.xml", s.num)
		rels := append([]rel(nil), *s.rels...)
		if *s.notes != "" {
			notes := fmt.Sprintf("/ppt/notesSlides/notesSlide%d.xml", s.num)
			rels = append(rels, rel{id: fmt.Sprintf("rId%d", len(rels)+1), typ: relBase + "notesSlide",
				target: fmt.Sprintf("../notesSlides/notesSlide%d.xml", s.num)})
			put(notes, ctBase+"presentationml.notesSlide+xml", root("notes", notesTree(*s.notes)))
			var notesRels []rel
			if !*s.noMaster {
				notesRels = append(notesRels, rel{id: "rId1", typ: relBase + "notesMaster", target: "../notesMasters/notesMaster1.xml"})
			}
			notesRels = append(notesRels, rel{id: "rId2", typ: relBase + "slide", target: fmt.Sprintf("../slides/slide%d.xml", s.num)})
			parts[relsName(notes)] = relsXML(notesRels)
		}
		tree := strings.Replace(emptyTree(), "</p:spTree>", s.buf.String()+"</p:spTree>", 1)
		put(name, ctBase+"presentationml.slide+xml", root("sld", tree+`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`))
		parts[relsName(name)] = relsXML(rels)
	}

	var ct strings.Builder
	ct.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Default Extension="xlsx" ContentType="` + ctBase + `spreadsheetml.sheet"/>`)
	names := make([]string, 0, len(types))
	for n := range types {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&ct, `<Override PartName="%s" ContentType="%s"/>`, n, types[n])
	}
	ct.WriteString(`</Types>`)
	parts["/[Content_Types].xml"] = []byte(ct.String())

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names = names[:0]
	for n := range parts {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		w, err := zw.Create(strings.TrimPrefix(n, "/"))
		if err == nil {
			_, err = w.Write(parts[n])
		}
		if err != nil {
			b.t.Fatalf("testdeck: write %s: %v", n, err)
		}
	}
	if err := zw.Close(); err != nil {
		b.t.Fatalf("testdeck: %v", err)
	}
	return buf.Bytes()
}

// Reader returns the assembled deck and its size, as taken by
// pptxtpl.OpenReader.
func (b *Builder) Reader() (*bytes.Reader, int64) {
	b.t.Helper()
	data := b.Bytes()
	return bytes.NewReader(data), int64(len(data))
}

func notesTree(text string) string {
	return strings.Replace(emptyTree(), "</p:spTree>",
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder 1"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>`+
			`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`+paragraphXML(text)+`</p:txBody></p:sp></p:spTree>`, 1)
}
