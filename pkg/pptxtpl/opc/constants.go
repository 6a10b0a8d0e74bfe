// Package opc implements the Open Packaging Conventions container used by
// PPTX files: zip parts, content types and relationships.
package opc

// Relationship types.
const (
	RelTypeOfficeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeSlide           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeSlideLayout     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTypeNotesSlide      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeNotesMaster     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	RelTypeChart           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	RelTypeChartUserShapes = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chartUserShapes"
	RelTypeImage           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeHyperlink       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelTypePackage         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
	RelTypeOleObject       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/oleObject"
	RelTypeChartStyle      = "http://schemas.microsoft.com/office/2011/relationships/chartStyle"
	RelTypeChartColorStyle = "http://schemas.microsoft.com/office/2011/relationships/chartColorStyle"
)

// Content types.
const (
	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypeSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ContentTypeNotesSlide    = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ContentTypeChart         = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ContentTypeChartShapes   = "application/vnd.openxmlformats-officedocument.drawingml.chartshapes+xml"
	ContentTypeChartStyle    = "application/vnd.ms-office.chartstyle+xml"
	ContentTypeChartColors   = "application/vnd.ms-office.chartcolorstyle+xml"
	ContentTypeXlsx          = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Part name templates for parts created while editing a deck.
const (
	SlidePartTemplate      = "/ppt/slides/slide%d.xml"
	NotesSlidePartTemplate = "/ppt/notesSlides/notesSlide%d.xml"
	ChartPartTemplate      = "/ppt/charts/chart%d.xml"
	ChartStylePartTemplate = "/ppt/charts/style%d.xml"
	ChartColorPartTemplate = "/ppt/charts/colors%d.xml"
	ChartShapesTemplate    = "/ppt/drawings/drawing%d.xml"
	EmbeddedXlsxTemplate   = "/ppt/embeddings/Microsoft_Excel_Sheet%d.xlsx"
)

const (
	contentTypesName = "/[Content_Types].xml"
	packageRelsName  = "/_rels/.rels"
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	targetModeExt    = "External"
)
